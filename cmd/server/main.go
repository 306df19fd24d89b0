package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/server"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/paths"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Bind address")
	base := flag.String("base", cfg.Files.BasePath, "Default directory for operations")
	model := flag.String("model", cfg.Intent.Model, "Ollama model for intent resolution")
	noIntent := flag.Bool("no-intent", !cfg.Intent.Enabled, "Disable the language model resolver")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development mode (console logs, debug level)")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Files.BasePath = paths.Clean(*base)
	cfg.Intent.Model = *model
	cfg.Intent.Enabled = !*noIntent
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		log.Fatalf("Invalid port %q", cfg.Server.Port)
	}

	logger, err := server.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
