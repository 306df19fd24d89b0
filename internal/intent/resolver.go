package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// DefaultHelpText is shown when no operation could be resolved
const DefaultHelpText = "I can help you with file operations! Try asking me to:\n" +
	"• Find files by extension (e.g., 'find all .py files')\n" +
	"• Get largest files (e.g., 'show me the largest files')\n" +
	"• Create a folder (e.g., 'create folder my_project')\n" +
	"• List directory contents (e.g., 'list current directory')"

// Resolution is the outcome of resolving one query. Either Action is set,
// or Response carries the model's free-text reply.
type Resolution struct {
	Action   types.OperationName    `json:"action,omitempty"`
	Params   map[string]interface{} `json:"params"`
	Response string                 `json:"response,omitempty"`
}

// IsCall reports whether the resolver picked an operation
func (r *Resolution) IsCall() bool {
	return r != nil && r.Action != ""
}

// Resolver maps a natural-language query onto an operation from catalog.
// Implementations never execute anything.
type Resolver interface {
	Resolve(ctx context.Context, query string, rctx types.Context, catalog []types.Tool) (*Resolution, error)
}

// StaticResolver never picks an operation. It backs the agent when the
// language model is disabled.
type StaticResolver struct {
	HelpText string
}

// Resolve returns the configured help text
func (s StaticResolver) Resolve(_ context.Context, _ string, _ types.Context, _ []types.Tool) (*Resolution, error) {
	text := s.HelpText
	if text == "" {
		text = DefaultHelpText
	}
	return &Resolution{Params: map[string]interface{}{}, Response: text}, nil
}

// SystemPrompt builds the instruction sent ahead of the user's query
func SystemPrompt(directory string) string {
	return "You are a helpful file system assistant.\n" +
		"The user's current directory is: " + directory + "\n" +
		"When a directory is not specified by the user, use this current directory.\n" +
		"Always use function calling to respond to file operation requests.\n" +
		"Be helpful and interpret user requests intelligently."
}

// aliases maps function names models commonly produce onto catalog IDs
var aliases = map[string]types.OperationName{
	"find_files_by_extension": types.OpFindByExtension,
	"get_largest_files":       types.OpLargestFiles,
	"largest":                 types.OpLargestFiles,
	"make_folder":             types.OpCreateFolder,
	"list_files":              types.OpListDirectory,
	"move":                    types.OpMoveFiles,
}

// UnknownFunctionError is returned when the model calls a function that
// is not in the catalog.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("Unknown function: %s", e.Name)
}

// CanonicalAction maps a model-produced function name onto a catalog operation
func CanonicalAction(name string, catalog []types.Tool) (types.OperationName, error) {
	name = strings.TrimSpace(name)
	for _, tool := range catalog {
		if string(tool.ID) == name {
			return tool.ID, nil
		}
	}

	if op, ok := aliases[name]; ok {
		for _, tool := range catalog {
			if tool.ID == op {
				return op, nil
			}
		}
	}

	return "", &UnknownFunctionError{Name: name}
}
