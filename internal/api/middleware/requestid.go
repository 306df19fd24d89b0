package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/id"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/utils"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses a well-formed incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > utils.MaxIDLength {
			rid = id.NewRequestID().String()
		}

		c.Set(requestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
