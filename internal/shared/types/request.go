package types

// ChatRequest represents a natural-language request
type ChatRequest struct {
	Message string  `json:"message" binding:"required"`
	Context Context `json:"context"`
}

// ExecuteRequest represents an operation execution request
type ExecuteRequest struct {
	Action  string                 `json:"action" binding:"required"`
	Params  map[string]interface{} `json:"params"`
	Context *Context               `json:"context,omitempty"`
}

// DiscoverRequest asks for the operations most relevant to a query
type DiscoverRequest struct {
	Message string `json:"message" binding:"required"`
	Limit   int    `json:"limit"`
}

// ActionInfo is a resolved call, described but not executed
type ActionInfo struct {
	Action OperationName          `json:"action"`
	Params map[string]interface{} `json:"params"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message,omitempty"`
	Action  string                 `json:"action,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Context Context                `json:"context,omitempty"`
}
