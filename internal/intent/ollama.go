package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// ErrUpstream marks a failed or malformed response from the model server
var ErrUpstream = errors.New("intent: upstream error")

// OllamaConfig configures the Ollama resolver
type OllamaConfig struct {
	BaseURL         string
	Model           string
	Timeout         time.Duration
	Retries         int
	RetryWait       time.Duration
	BreakerFailures int
	BreakerCooldown time.Duration
}

// DefaultOllamaConfig returns settings for a local Ollama server
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL:         "http://localhost:11434",
		Model:           "llama3.1:8b",
		Timeout:         60 * time.Second,
		Retries:         2,
		RetryWait:       500 * time.Millisecond,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// OllamaResolver resolves queries with a local model through Ollama's
// tool-calling chat API.
type OllamaResolver struct {
	cfg     OllamaConfig
	client  *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// OllamaOption configures an OllamaResolver
type OllamaOption func(*OllamaResolver)

// WithLogger sets the resolver logger
func WithLogger(logger *logging.Logger) OllamaOption {
	return func(o *OllamaResolver) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records resolver outcomes
func WithMetrics(metrics *monitoring.Metrics) OllamaOption {
	return func(o *OllamaResolver) {
		o.metrics = metrics
	}
}

// NewOllamaResolver creates a resolver for the given server
func NewOllamaResolver(cfg OllamaConfig, opts ...OllamaOption) *OllamaResolver {
	def := DefaultOllamaConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = def.RetryWait
	}

	o := &OllamaResolver{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	// pooled transport; retries are driven by resty
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	o.client = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(4*cfg.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("User-Agent", "FileAgent/1.0").
		SetTransport(retryClient.HTTPClient.Transport)
	o.client.JSONMarshal = sonic.Marshal
	o.client.JSONUnmarshal = sonic.Unmarshal

	o.breaker = resilience.New("ollama", resilience.Settings{
		MaxFailures: uint32(max(cfg.BreakerFailures, 1)),
		Cooldown:    cfg.BreakerCooldown,
		IsFailure: func(err error) bool {
			var unknown *UnknownFunctionError
			return !errors.As(err, &unknown)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			o.logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return o
}

// Model returns the configured model name
func (o *OllamaResolver) Model() string {
	return o.cfg.Model
}

// BreakerState exposes the circuit breaker state for health reporting
func (o *OllamaResolver) BreakerState() resilience.State {
	return o.breaker.State()
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Tools    []FunctionTool `json:"tools,omitempty"`
	Stream   bool           `json:"stream"`
}

type chatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

type toolCall struct {
	Function struct {
		Name      string      `json:"name"`
		Arguments interface{} `json:"arguments"`
	} `json:"function"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error,omitempty"`
}

// Resolve asks the model to pick one operation for query
func (o *OllamaResolver) Resolve(ctx context.Context, query string, rctx types.Context, catalog []types.Tool) (*Resolution, error) {
	start := time.Now()
	res, err := o.resolve(ctx, query, rctx, catalog)

	outcome := "call"
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		outcome = "circuit_open"
	case err != nil:
		outcome = "error"
	case !res.IsCall():
		outcome = "help"
	}
	if o.metrics != nil {
		o.metrics.RecordResolution(outcome, time.Since(start))
	}

	if err != nil {
		o.logger.Warn("Intent resolution failed", logging.Outcome(outcome), zap.Error(err))
		return nil, err
	}
	o.logger.Debug("Intent resolved",
		logging.Outcome(outcome),
		zap.String("action", string(res.Action)),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (o *OllamaResolver) resolve(ctx context.Context, query string, rctx types.Context, catalog []types.Tool) (*Resolution, error) {
	req := chatRequest{
		Model: o.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(rctx.Directory)},
			{Role: "user", Content: query},
		},
		Tools:  BuildTools(catalog),
		Stream: false,
	}

	var resolution *Resolution
	err := o.breaker.Do(ctx, func(ctx context.Context) error {
		var resp chatResponse
		httpResp, err := o.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&resp).
			Post("/api/chat")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		if httpResp.IsError() {
			return fmt.Errorf("%w: %s: %s", ErrUpstream, httpResp.Status(), strings.TrimSpace(httpResp.String()))
		}
		if resp.Error != "" {
			return fmt.Errorf("%w: %s", ErrUpstream, resp.Error)
		}

		resolution, err = parseMessage(resp.Message, catalog)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resolution, nil
}

func parseMessage(msg chatMessage, catalog []types.Tool) (*Resolution, error) {
	if len(msg.ToolCalls) == 0 {
		text := strings.TrimSpace(msg.Content)
		if text == "" {
			text = "I can help you with file operations!"
		}
		return &Resolution{Params: map[string]interface{}{}, Response: text}, nil
	}

	call := msg.ToolCalls[0].Function
	action, err := CanonicalAction(call.Name, catalog)
	if err != nil {
		return nil, err
	}

	params, err := decodeArguments(call.Arguments)
	if err != nil {
		return nil, fmt.Errorf("%w: arguments for %s: %v", ErrUpstream, call.Name, err)
	}
	return &Resolution{Action: action, Params: params}, nil
}

// decodeArguments accepts both an object and a JSON-encoded string
func decodeArguments(raw interface{}) (map[string]interface{}, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	case string:
		params := map[string]interface{}{}
		if strings.TrimSpace(v) == "" {
			return params, nil
		}
		if err := sonic.UnmarshalString(v, &params); err != nil {
			return nil, err
		}
		return params, nil
	default:
		return nil, fmt.Errorf("unexpected type %T", raw)
	}
}
