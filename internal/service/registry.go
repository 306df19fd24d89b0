package service

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/monitoring"
	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/paths"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/utils"
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, op types.OperationName, args types.Arguments) (*types.Result, error)
}

type route struct {
	provider Provider
	tool     types.Tool
}

// Registry owns the operation catalog and dispatches calls to providers
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider
	routes   map[types.OperationName]route

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the dispatch logger
func WithLogger(logger *logging.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records operation metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

// NewRegistry creates a new service registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		services: make(map[string]Provider),
		routes:   make(map[types.OperationName]route),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a service provider and its tools to the catalog
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	for _, tool := range def.Tools {
		if existing, ok := r.routes[tool.ID]; ok {
			return fmt.Errorf("operation %s already provided by %s", tool.ID, existing.provider.Definition().ID)
		}
	}

	r.services[def.ID] = provider
	for _, tool := range def.Tools {
		r.routes[tool.ID] = route{provider: provider, tool: tool}
	}
	return nil
}

// Unregister removes a service provider and its tools
func (r *Registry) Unregister(serviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.services[serviceID]
	if !ok {
		return
	}
	delete(r.services, serviceID)
	for _, tool := range provider.Definition().Tools {
		delete(r.routes, tool.ID)
	}
}

// Lookup returns the catalog entry for an operation name
func (r *Registry) Lookup(name types.OperationName) (types.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.routes[name]
	return rt.tool, ok
}

// List returns registered services ordered by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, provider := range r.services {
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Catalog returns every tool in service order, then declaration order
func (r *Registry) Catalog() []types.Tool {
	var tools []types.Tool
	for _, svc := range r.List(nil) {
		tools = append(tools, svc.Tools...)
	}
	return tools
}

// Dispatch runs an operation and always returns an envelope
func (r *Registry) Dispatch(ctx context.Context, name string, raw map[string]interface{}, defaultDirectory string) *types.Result {
	result, _ := r.Execute(ctx, name, raw, defaultDirectory)
	return result
}

// Execute runs an operation by name. The returned envelope is never nil;
// the error, when present, is the cause behind a failure envelope so
// transports can pick a status code.
func (r *Registry) Execute(ctx context.Context, name string, raw map[string]interface{}, defaultDirectory string) (*types.Result, error) {
	op := types.OperationName(name)
	log := r.logger.With(logging.Operation(name))

	r.mu.RLock()
	rt, ok := r.routes[op]
	r.mu.RUnlock()
	if !ok {
		err := &fserrors.UnknownOperationError{Name: name}
		r.recordFailure(log, name, err)
		return types.Failed(err), err
	}

	args, err := Coerce(rt.tool, raw, defaultDirectory)
	if err != nil {
		r.recordFailure(log, name, err)
		return types.Failed(err), err
	}

	log.Debug("Dispatching operation", zap.Any("args", args.Map()))

	timer := monitoring.NewTimer(r.metrics, name)
	result, err := r.call(ctx, rt.provider, op, args)
	if err != nil {
		timer.Stop("error")
		r.recordFailure(log, name, err)
		return types.Failed(err), err
	}
	if result == nil {
		err = fmt.Errorf("operation %s returned no result", name)
		timer.Stop("error")
		r.recordFailure(log, name, err)
		return types.Failed(err), err
	}

	status := "success"
	if !result.Success {
		status = "reported"
	}
	timer.Stop(status)
	r.recordMove(result)

	return result, nil
}

// call runs the provider behind a panic guard
func (r *Registry) call(ctx context.Context, provider Provider, op types.OperationName, args types.Arguments) (result *types.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Operation panicked",
				logging.Operation(op.String()),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			result = nil
			err = fmt.Errorf("internal error in %s: %v", op, rec)
		}
	}()
	return provider.Execute(ctx, op, args)
}

func (r *Registry) recordFailure(log *logging.Logger, name string, err error) {
	kind := fserrors.Kind(err)
	log.Warn("Operation failed", zap.String("kind", kind), zap.Error(err))
	if r.metrics != nil {
		r.metrics.RecordOperationError(name, kind)
	}
}

func (r *Registry) recordMove(result *types.Result) {
	if r.metrics == nil {
		return
	}
	if moved, ok := result.Data.(interface{ Counts() (int, int) }); ok {
		r.metrics.RecordMove(moved.Counts())
	}
}

// Coerce converts a raw argument bag into typed arguments for tool.
// Unknown keys are ignored.
func Coerce(tool types.Tool, raw map[string]interface{}, defaultDirectory string) (types.Arguments, error) {
	args := make(types.Arguments, len(tool.Parameters))

	for _, param := range tool.Parameters {
		value, present := raw[param.Name]
		if present && isBlank(value) {
			present = false
		}

		if !present {
			switch {
			case param.Type == types.ParamDirectory:
				value = defaultDirectory
			case param.Default != nil:
				value = param.Default
			case param.Required:
				return nil, fserrors.InvalidArgument(param.Name, "missing required parameter")
			default:
				continue
			}
		}

		coerced, err := coerceValue(param, value, defaultDirectory)
		if err != nil {
			return nil, err
		}
		args[param.Name] = coerced
	}

	return args, nil
}

func coerceValue(param types.Parameter, value interface{}, defaultDirectory string) (types.Value, error) {
	if param.Type.IsPath() {
		return coercePath(param, value, defaultDirectory)
	}

	switch param.Type {
	case types.ParamInteger:
		n, err := toInt(value)
		if err != nil {
			return types.Value{}, fserrors.InvalidArgument(param.Name, "%v", err)
		}
		if n <= 0 {
			return types.Value{}, fserrors.InvalidArgument(param.Name, "must be a positive integer, got %d", n)
		}
		return types.IntValue(n), nil

	default:
		switch v := value.(type) {
		case string:
			return types.StringValue(v), nil
		case float64, int, int64, bool:
			return types.StringValue(fmt.Sprint(v)), nil
		default:
			return types.Value{}, fserrors.InvalidArgument(param.Name, "expected a string, got %T", value)
		}
	}
}

// coercePath validates a path argument and resolves it against defaultDirectory
func coercePath(param types.Parameter, value interface{}, defaultDirectory string) (types.Value, error) {
	s, ok := value.(string)
	if !ok {
		return types.Value{}, fserrors.InvalidArgument(param.Name, "expected a path string, got %T", value)
	}
	if err := utils.ValidatePath(s, param.Name); err != nil {
		return types.Value{}, fserrors.InvalidArgument(param.Name, "%v", err)
	}
	resolved := paths.Resolve(s, defaultDirectory)
	if param.Type == types.ParamDirectory {
		return types.DirectoryValue(resolved), nil
	}
	return types.PathValue(resolved), nil
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
		return 0, fmt.Errorf("not an integer: %q", v)
	default:
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("integer out of range: %v", f)
	}
	return int(f), nil
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Discover ranks catalog tools by keyword relevance to query
func (r *Registry) Discover(query string, limit int) []types.Tool {
	type scoredTool struct {
		tool  types.Tool
		score float64
		order int
	}

	queryLower := strings.ToLower(query)
	var results []scoredTool

	for i, tool := range r.Catalog() {
		score := calculateRelevance(queryLower, tool)
		if score > 0 {
			results = append(results, scoredTool{tool: tool, score: score, order: i})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	output := make([]types.Tool, 0, limit)
	for i := 0; i < limit; i++ {
		output = append(output, results[i].tool)
	}
	return output
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string]int)
	for _, provider := range r.services {
		categories[string(provider.Definition().Category)]++
	}

	return map[string]interface{}{
		"total_services": len(r.services),
		"total_tools":    len(r.routes),
		"categories":     categories,
	}
}

func calculateRelevance(query string, tool types.Tool) float64 {
	score := 0.0
	words := strings.FieldsFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '.')
	})
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	// Check operation ID and name
	if strings.Contains(query, string(tool.ID)) || strings.Contains(query, strings.ToLower(tool.Name)) {
		score += 10.0
	}

	// Check keywords
	for _, kw := range tool.Keywords {
		if wordSet[kw] {
			score += 5.0
		}
	}

	// Check description words
	for _, word := range strings.Fields(strings.ToLower(tool.Description)) {
		if len(word) > 3 && wordSet[word] {
			score += 1.0
		}
	}

	return score
}
