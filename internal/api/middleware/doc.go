// Package middleware provides the gin middleware stack for the FileAgent API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing for the local web UI
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - RequestID: X-Request-ID propagation
//   - Logger: One structured log line per request
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(log))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
