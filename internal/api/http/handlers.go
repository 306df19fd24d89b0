package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/service"
	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/utils"
)

// Version is reported by the root and health endpoints
const Version = "1.0.0"

const defaultDiscoverLimit = 5

// Handlers contains all HTTP handlers
type Handlers struct {
	agent  *service.Agent
	intent IntentInfo
	logger *logging.Logger
}

// IntentInfo describes the configured resolver for health reporting
type IntentInfo struct {
	Enabled bool   `json:"enabled"`
	Model   string `json:"model,omitempty"`
	// State reports the resolver circuit breaker, when there is one
	State func() string `json:"-"`
}

// NewHandlers creates a new handler set
func NewHandlers(agent *service.Agent, intent IntentInfo, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{agent: agent, intent: intent, logger: logger}
}

// Root lists the API surface
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Local File Manager Agent API",
		"version": Version,
		"endpoints": gin.H{
			"/api/chat":                "POST - Natural language chat interface",
			"/api/execute":             "POST - Execute file operations",
			"/api/health":              "GET - Health check",
			"/api/operations":          "GET - Operation catalog",
			"/api/operations/discover": "POST - Rank operations for a query",
			"/api/stream":              "GET - WebSocket chat and execute",
			"/metrics":                 "GET - Prometheus metrics",
		},
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	intent := gin.H{"enabled": h.intent.Enabled}
	if h.intent.Model != "" {
		intent["model"] = h.intent.Model
	}
	if h.intent.State != nil {
		intent["circuit"] = h.intent.State()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"version":          Version,
		"base_path":        h.agent.BasePath(),
		"operations":       len(h.agent.Registry().Catalog()),
		"service_registry": h.agent.Registry().Stats(),
		"intent":           intent,
	})
}

// Chat resolves a natural-language message into an operation call without running it
func (h *Handlers) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message in request body"})
		return
	}
	if err := utils.ValidateMessage(req.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	desc := h.agent.ResolveAndDescribe(c.Request.Context(), req.Message, req.Context)
	c.JSON(http.StatusOK, ChatResponse(desc))
}

// ChatResponse renders a description in the chat endpoint's shape
func ChatResponse(desc *service.Description) gin.H {
	if desc.IsHelp() {
		var errValue interface{}
		if desc.Error != "" {
			errValue = desc.Error
		}
		return gin.H{
			"response": desc.Reply(),
			"action":   "help",
			"error":    errValue,
		}
	}
	return gin.H{
		"response":    desc.Reply(),
		"action_info": desc.Action,
	}
}

// Execute runs one operation and returns its envelope
func (h *Handlers) Execute(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil && req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing action in request body"})
		return
	}
	if err := utils.ValidateOperationName(req.Action); err != nil {
		c.JSON(http.StatusBadRequest, types.Failed(err))
		return
	}

	result, err := h.agent.Execute(c.Request.Context(), req.Action, req.Params, req.Context)
	c.JSON(StatusFor(err), result)
}

// StatusFor maps a dispatch error onto an HTTP status code
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case fserrors.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListOperations returns the operation catalog
func (h *Handlers) ListOperations(c *gin.Context) {
	registry := h.agent.Registry()
	c.JSON(http.StatusOK, gin.H{
		"operations": registry.Catalog(),
		"services":   registry.List(nil),
		"stats":      registry.Stats(),
	})
}

// DiscoverOperations ranks operations by relevance to a message
func (h *Handlers) DiscoverOperations(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateMessage(req.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultDiscoverLimit
	}

	tools := h.agent.Registry().Discover(req.Message, limit)
	h.logger.Debug("Discovered operations", zap.String("query", req.Message), zap.Int("count", len(tools)))

	c.JSON(http.StatusOK, gin.H{
		"operations": tools,
		"count":      len(tools),
	})
}
