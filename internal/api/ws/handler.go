package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/FileAgent/backend/internal/api/http"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileAgent/backend/internal/service"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/id"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/utils"
)

const (
	maxMessageBytes = 2 * utils.MaxMessageSize
	chatTimeout     = 2 * time.Minute
	executeTimeout  = 10 * time.Minute
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// jsonWriter is the write half of a connection
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// Handler manages WebSocket connections
type Handler struct {
	agent   *service.Agent
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(agent *service.Agent, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{agent: agent, metrics: metrics, logger: logger}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	connID := id.NewConnectionID()
	log := h.logger.With(logging.ConnID(connID.String()))
	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	log.Debug("WebSocket connected")

	reqCtx := c.Request.Context()

	if err := h.send(conn, map[string]interface{}{
		"type":          "system",
		"message":       "Connected to Local File Manager Agent",
		"connection_id": connID,
	}); err != nil {
		log.Warn("WebSocket write failed", zap.Error(err))
		return
	}

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}
		h.record("in", msg.Type)

		var err error
		switch msg.Type {
		case "chat":
			err = h.handleChat(reqCtx, conn, msg)
		case "execute":
			err = h.handleExecute(reqCtx, conn, msg)
		case "ping":
			err = h.send(conn, map[string]interface{}{"type": "pong"})
		default:
			err = h.sendError(conn, "unknown message type")
		}
		if err != nil {
			log.Warn("WebSocket write failed", zap.String("type", msg.Type), zap.Error(err))
			break
		}
	}

	log.Debug("WebSocket disconnected")
}

func (h *Handler) handleChat(reqCtx context.Context, conn jsonWriter, msg types.WSMessage) error {
	if err := utils.ValidateMessage(msg.Message); err != nil {
		return h.sendError(conn, "Missing message")
	}

	// Derive from parent context to respect cancellations
	ctx, cancel := context.WithTimeout(reqCtx, chatTimeout)
	defer cancel()

	desc := h.agent.ResolveAndDescribe(ctx, msg.Message, msg.Context)

	reply := apihttp.ChatResponse(desc)
	reply["type"] = "chat"
	reply["timestamp"] = time.Now().Unix()
	return h.send(conn, reply)
}

func (h *Handler) handleExecute(reqCtx context.Context, conn jsonWriter, msg types.WSMessage) error {
	if msg.Action == "" {
		return h.sendError(conn, "Missing action")
	}
	if err := utils.ValidateOperationName(msg.Action); err != nil {
		return h.sendResult(conn, msg.Action, http.StatusBadRequest, types.Failed(err))
	}

	ctx, cancel := context.WithTimeout(reqCtx, executeTimeout)
	defer cancel()

	rctx := msg.Context
	result, err := h.agent.Execute(ctx, msg.Action, msg.Params, &rctx)
	return h.sendResult(conn, msg.Action, apihttp.StatusFor(err), result)
}

func (h *Handler) sendResult(conn jsonWriter, action string, status int, result *types.Result) error {
	return h.send(conn, map[string]interface{}{
		"type":      "result",
		"action":    action,
		"status":    status,
		"result":    result,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

func (h *Handler) send(conn jsonWriter, data map[string]interface{}) error {
	if t, ok := data["type"].(string); ok {
		h.record("out", t)
	}
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn jsonWriter, msg string) error {
	return h.send(conn, map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
