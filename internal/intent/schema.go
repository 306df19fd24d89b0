package intent

import (
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// FunctionTool is a tool definition in the function-calling format
type FunctionTool struct {
	Type     string         `json:"type"`
	Function FunctionSchema `json:"function"`
}

// FunctionSchema describes one callable function
type FunctionSchema struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Parameters  ObjectSchema `json:"parameters"`
}

// ObjectSchema is the JSON schema of a function's arguments
type ObjectSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required"`
}

// PropertySchema is the JSON schema of one argument
type PropertySchema struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// BuildTools converts catalog entries into function definitions
func BuildTools(catalog []types.Tool) []FunctionTool {
	tools := make([]FunctionTool, 0, len(catalog))
	for _, tool := range catalog {
		schema := ObjectSchema{
			Type:       "object",
			Properties: make(map[string]PropertySchema, len(tool.Parameters)),
			Required:   []string{},
		}
		for _, p := range tool.Parameters {
			schema.Properties[p.Name] = PropertySchema{
				Type:        p.Type.SchemaType(),
				Description: p.Description,
				Default:     p.Default,
			}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}

		tools = append(tools, FunctionTool{
			Type: "function",
			Function: FunctionSchema{
				Name:        string(tool.ID),
				Description: tool.Description,
				Parameters:  schema,
			},
		})
	}
	return tools
}
