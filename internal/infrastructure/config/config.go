package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/paths"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Files     FilesConfig
	Intent    IntentConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"5001"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

// FilesConfig holds operation engine configuration.
type FilesConfig struct {
	// BasePath is the default directory; empty means the user's home
	BasePath    string        `envconfig:"BASE_PATH"`
	MoveLock    bool          `envconfig:"FILES_MOVE_LOCK" default:"false"`
	LockDir     string        `envconfig:"FILES_LOCK_DIR"`
	LockTimeout time.Duration `envconfig:"FILES_LOCK_TIMEOUT" default:"30s"`
}

// IntentConfig holds intent resolver configuration.
type IntentConfig struct {
	Enabled         bool          `envconfig:"INTENT_ENABLED" default:"true"`
	OllamaURL       string        `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	Model           string        `envconfig:"OLLAMA_MODEL" default:"llama3.1:8b"`
	Timeout         time.Duration `envconfig:"INTENT_TIMEOUT" default:"60s"`
	Retries         int           `envconfig:"INTENT_RETRIES" default:"2"`
	BreakerFailures int           `envconfig:"INTENT_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"INTENT_BREAKER_COOLDOWN" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables. When CONFIG_FILE
// names a YAML or TOML file, its keys fill in variables the environment
// leaves unset.
func Load() (*Config, error) {
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		if err := LoadFile(file); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:            "5001",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Files: FilesConfig{
			LockTimeout: 30 * time.Second,
		},
		Intent: IntentConfig{
			Enabled:         true,
			OllamaURL:       "http://localhost:11434",
			Model:           "llama3.1:8b",
			Timeout:         60 * time.Second,
			Retries:         2,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
	cfg.normalize()
	return cfg
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("config: PORT must not be empty")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_RPS must be positive, got %d", c.RateLimit.RequestsPerSecond)
	}
	if c.Intent.Enabled && c.Intent.Model == "" {
		return fmt.Errorf("config: OLLAMA_MODEL must not be empty when the resolver is enabled")
	}
	if c.Intent.Retries < 0 {
		return fmt.Errorf("config: INTENT_RETRIES must not be negative, got %d", c.Intent.Retries)
	}
	return nil
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) normalize() {
	if c.Files.BasePath == "" {
		c.Files.BasePath = paths.Home()
	} else {
		c.Files.BasePath = paths.Clean(c.Files.BasePath)
	}
	if c.Files.LockDir != "" {
		c.Files.LockDir = paths.Clean(c.Files.LockDir)
	}
}
