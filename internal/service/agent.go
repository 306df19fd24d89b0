package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/intent"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// Description is a resolved query, described but not executed.
// Exactly one of Action and HelpText is set.
type Description struct {
	Action   *types.ActionInfo
	HelpText string
	// Error carries the resolver failure behind a degraded help reply
	Error string
}

// IsHelp reports whether the query resolved to help text
func (d *Description) IsHelp() bool {
	return d.Action == nil
}

// Agent ties the resolver to the dispatcher
type Agent struct {
	registry *Registry
	resolver intent.Resolver
	basePath string
	logger   *logging.Logger
}

// NewAgent creates an agent. A nil resolver falls back to static help text.
func NewAgent(registry *Registry, resolver intent.Resolver, basePath string, logger *logging.Logger) *Agent {
	if resolver == nil {
		resolver = intent.StaticResolver{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Agent{
		registry: registry,
		resolver: resolver,
		basePath: basePath,
		logger:   logger,
	}
}

// Registry returns the dispatcher behind the agent
func (a *Agent) Registry() *Registry {
	return a.registry
}

// BasePath returns the directory used when a request names none
func (a *Agent) BasePath() string {
	return a.basePath
}

// Directory returns the effective default directory for a request context
func (a *Agent) Directory(rctx *types.Context) string {
	if rctx == nil || rctx.Directory == "" {
		return a.basePath
	}
	return rctx.Directory
}

// ResolveAndDescribe maps query onto an operation call without running it.
// Resolver failures degrade to the default help text with Error set.
func (a *Agent) ResolveAndDescribe(ctx context.Context, query string, rctx types.Context) *Description {
	rctx.Directory = a.Directory(&rctx)

	res, err := a.resolver.Resolve(ctx, query, rctx, a.registry.Catalog())
	if err != nil {
		a.logger.Warn("Falling back to help text", zap.Error(err))
		return &Description{HelpText: intent.DefaultHelpText, Error: err.Error()}
	}
	if !res.IsCall() {
		text := res.Response
		if text == "" {
			text = intent.DefaultHelpText
		}
		return &Description{HelpText: text}
	}

	params := res.Params
	if params == nil {
		params = map[string]interface{}{}
	}
	if tool, ok := a.registry.Lookup(res.Action); ok {
		fillDirectories(tool, params, rctx.Directory)
	}

	return &Description{Action: &types.ActionInfo{Action: res.Action, Params: params}}
}

// Execute runs an operation; see Registry.Execute
func (a *Agent) Execute(ctx context.Context, operation string, params map[string]interface{}, rctx *types.Context) (*types.Result, error) {
	return a.registry.Execute(ctx, operation, params, a.Directory(rctx))
}

// Reply renders a description the way the chat endpoint reports it
func (d *Description) Reply() string {
	if d.IsHelp() {
		return d.HelpText
	}
	return fmt.Sprintf("I'll execute: %s", d.Action.Action)
}

func fillDirectories(tool types.Tool, params map[string]interface{}, directory string) {
	for _, p := range tool.Parameters {
		if p.Type != types.ParamDirectory {
			continue
		}
		if isBlank(params[p.Name]) {
			params[p.Name] = directory
		}
	}
}
