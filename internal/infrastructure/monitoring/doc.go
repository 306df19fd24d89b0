/*
Package monitoring provides Prometheus metrics for the FileAgent backend.

# Overview

Metrics live on a private registry so that several servers (and tests) can
coexist in one process. The registry also carries the Go runtime and process
collectors.

# Features

- HTTP request metrics (latency, throughput, size)
- File operation metrics (calls, duration, error kinds, files moved)
- Intent resolver metrics (outcome, latency)
- WebSocket connection metrics

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "list_directory")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
