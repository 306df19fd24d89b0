package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Snapshot returns current totals for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	if snap.TotalRequests > 0 {
		snap.AvgDurationMs = snap.totalDuration / float64(snap.TotalRequests) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
