package logging

import "go.uber.org/zap"

// Field keys shared across packages so log lines can be joined on them
const (
	KeyOperation = "operation"
	KeyRequestID = "request_id"
	KeyConnID    = "conn_id"
	KeyOutcome   = "outcome"
)

// Operation tags a log line with the operation being dispatched
func Operation(name string) zap.Field {
	return zap.String(KeyOperation, name)
}

// RequestID tags a log line with the HTTP request ID
func RequestID(id string) zap.Field {
	return zap.String(KeyRequestID, id)
}

// ConnID tags a log line with a WebSocket connection ID
func ConnID(id string) zap.Field {
	return zap.String(KeyConnID, id)
}

// Outcome tags a log line with a resolution outcome
func Outcome(outcome string) zap.Field {
	return zap.String(KeyOutcome, outcome)
}
