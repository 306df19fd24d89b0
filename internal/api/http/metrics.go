package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/monitoring"
)

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	Timestamp        time.Time                  `json:"timestamp"`
	Backend          monitoring.MetricsSnapshot `json:"backend"`
	ErrorRate        float64                    `json:"error_rate"`
	OperationErrRate float64                    `json:"operation_error_rate"`
}

// MetricsHandlers serves metrics in Prometheus and JSON form
type MetricsHandlers struct {
	metrics *monitoring.Metrics
}

// NewMetricsHandlers creates metrics handlers
func NewMetricsHandlers(metrics *monitoring.Metrics) *MetricsHandlers {
	return &MetricsHandlers{metrics: metrics}
}

// Prometheus serves the exposition format
func (m *MetricsHandlers) Prometheus(c *gin.Context) {
	m.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// JSON returns a summary of request and operation counters
func (m *MetricsHandlers) JSON(c *gin.Context) {
	snap := m.metrics.Snapshot()

	summary := MetricsSummary{
		Timestamp: time.Now(),
		Backend:   snap,
	}
	if snap.TotalRequests > 0 {
		summary.ErrorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}
	if snap.OperationCalls > 0 {
		summary.OperationErrRate = float64(snap.OperationErrors) / float64(snap.OperationCalls)
	}

	c.JSON(http.StatusOK, summary)
}
