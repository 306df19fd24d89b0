// Package main is the entry point for the FileAgent HTTP server.
//
// The server answers natural-language file requests through a local Ollama
// model and executes file operations (find, largest, create folder, list,
// move) directly.
//
// Configuration:
//   - Environment variables, optionally seeded from CONFIG_FILE (YAML or TOML)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 5001 -base ~/Downloads
//	./server -no-intent -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
