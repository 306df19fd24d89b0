// Package config provides 12-factor configuration management for the FileAgent backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// An optional CONFIG_FILE (YAML or TOML) supplies values for variables the
// environment leaves unset. CLI flags override both.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Files: Default directory and optional move locking
//   - Intent: Ollama resolver settings
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Serving %s on %s\n", cfg.Files.BasePath, cfg.Address())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - BASE_PATH, FILES_MOVE_LOCK, FILES_LOCK_DIR, FILES_LOCK_TIMEOUT
//   - INTENT_ENABLED, OLLAMA_URL, OLLAMA_MODEL, INTENT_TIMEOUT, INTENT_RETRIES
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CONFIG_FILE
package config
