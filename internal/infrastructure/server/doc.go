// Package server wires configuration, the operation engine, the resolver and
// the HTTP/WebSocket handlers into one gin engine.
//
// Middleware order: recovery, request ID, request logging, metrics, CORS,
// then rate limiting when enabled.
package server
