package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Operation metrics
	OperationCalls    *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec
	FilesMoved        prometheus.Counter
	MoveFileErrors    prometheus.Counter

	// Intent resolver metrics
	ResolverCalls    *prometheus.CounterVec
	ResolverDuration prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	TotalErrors     int64   `json:"total_errors"`
	OperationCalls  int64   `json:"operation_calls"`
	OperationErrors int64   `json:"operation_errors"`
	AvgDurationMs   float64 `json:"avg_request_duration_ms"`
	UptimeSeconds   float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a new metrics collector with its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		Registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileagent_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileagent_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileagent_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileagent_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		OperationCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileagent_operation_calls_total",
				Help: "Total number of dispatched file operations",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileagent_operation_duration_seconds",
				Help:    "File operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 60, 300},
			},
			[]string{"operation"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileagent_operation_errors_total",
				Help: "Total number of failed file operations by error kind",
			},
			[]string{"operation", "kind"},
		),
		FilesMoved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileagent_files_moved_total",
				Help: "Total number of files moved",
			},
		),
		MoveFileErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileagent_move_file_errors_total",
				Help: "Total number of per-file move failures",
			},
		),

		ResolverCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileagent_resolver_calls_total",
				Help: "Total number of intent resolutions by outcome",
			},
			[]string{"outcome"},
		),
		ResolverDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fileagent_resolver_duration_seconds",
				Help:    "Intent resolution duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fileagent_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileagent_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "fileagent_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOperation records a dispatched operation
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	m.OperationCalls.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.OperationCalls++
	m.mu.Unlock()
}

// RecordOperationError records a failed operation
func (m *Metrics) RecordOperationError(operation, kind string) {
	m.OperationErrors.WithLabelValues(operation, kind).Inc()

	m.mu.Lock()
	m.snapshot.OperationErrors++
	m.mu.Unlock()
}

// RecordMove records the outcome counts of a multi-file move
func (m *Metrics) RecordMove(moved, failed int) {
	m.FilesMoved.Add(float64(moved))
	m.MoveFileErrors.Add(float64(failed))
}

// RecordResolution records an intent resolution
func (m *Metrics) RecordResolution(outcome string, duration time.Duration) {
	m.ResolverCalls.WithLabelValues(outcome).Inc()
	m.ResolverDuration.Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
