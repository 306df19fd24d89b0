package filesystem

import (
	"context"
	"fmt"

	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// Provider exposes the engine's operations as a catalog service
type Provider struct {
	engine *Engine
}

// NewProvider creates a filesystem provider
func NewProvider(engine *Engine) *Provider {
	if engine == nil {
		engine = NewEngine()
	}
	return &Provider{engine: engine}
}

// Engine returns the underlying operation engine
func (p *Provider) Engine() *Engine {
	return p.engine
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.engine.SearchOps.GetTools()...)
	tools = append(tools, p.engine.DirectoryOps.GetTools()...)
	tools = append(tools, p.engine.TransferOps.GetTools()...)

	return types.Service{
		ID:          "filesystem",
		Name:        "File Operations",
		Description: "Find, list, create and move files and folders on the local filesystem",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"find",
			"largest",
			"create",
			"list",
			"move",
		},
		Tools: tools,
	}
}

// Execute runs one operation with coerced arguments. Failures are returned
// as errors; expected negative outcomes come back as unsuccessful results.
func (p *Provider) Execute(ctx context.Context, op types.OperationName, args types.Arguments) (*types.Result, error) {
	switch op {
	case types.OpFindByExtension:
		files, err := p.engine.FindByExtension(ctx, args.String("directory"), args.String("extension"), args.Int("limit"))
		if err != nil {
			return nil, err
		}
		return types.Succeeded(files, fmt.Sprintf("Found %d files", len(files))), nil

	case types.OpLargestFiles:
		files, err := p.engine.GetLargestFiles(ctx, args.String("directory"), args.Int("limit"))
		if err != nil {
			return nil, err
		}
		return types.Succeeded(files, fmt.Sprintf("Found %d largest files", len(files))), nil

	case types.OpCreateFolder:
		res, err := p.engine.CreateFolder(ctx, args.String("directory"), args.String("folder_name"))
		if err != nil {
			return nil, err
		}
		if !res.Success {
			return types.Reported(res, res.Message), nil
		}
		return types.Succeeded(res, res.Message), nil

	case types.OpListDirectory:
		listing, err := p.engine.ListDirectory(ctx, args.String("directory"))
		if err != nil {
			return nil, err
		}
		return types.Succeeded(listing, fmt.Sprintf("Listed %d items", len(listing.Items))), nil

	case types.OpMoveFiles:
		res, err := p.engine.MoveFiles(ctx, args.String("source_directory"), args.String("destination_directory"), args.String("pattern"))
		if err != nil {
			return nil, err
		}
		return types.Succeeded(res, res.Message), nil

	default:
		return nil, &fserrors.UnknownOperationError{Name: op.String()}
	}
}
