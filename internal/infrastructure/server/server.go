package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/FileAgent/backend/internal/api/http"
	"github.com/GriffinCanCode/FileAgent/backend/internal/api/middleware"
	"github.com/GriffinCanCode/FileAgent/backend/internal/api/ws"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileAgent/backend/internal/intent"
	"github.com/GriffinCanCode/FileAgent/backend/internal/lock"
	"github.com/GriffinCanCode/FileAgent/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/FileAgent/backend/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	agent   *service.Agent
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewLogger builds the process logger from configuration
func NewLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
}

// NewAgent assembles the engine, dispatcher and resolver. It is shared by
// the server and the CLI.
func NewAgent(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*service.Agent, *intent.OllamaResolver, error) {
	var opts []filesystem.Option
	if cfg.Files.MoveLock {
		locks, err := lock.NewManager(cfg.Files.LockDir, cfg.Files.LockTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create move lock manager: %w", err)
		}
		opts = append(opts, filesystem.WithLocker(locks))
		logger.Info("Move locking enabled", zap.String("dir", cfg.Files.LockDir))
	}

	registry := service.NewRegistry(
		service.WithLogger(logger.Named("dispatch")),
		service.WithMetrics(metrics),
	)
	if err := registry.Register(filesystem.NewProvider(filesystem.NewEngine(opts...))); err != nil {
		return nil, nil, fmt.Errorf("failed to register filesystem provider: %w", err)
	}

	var (
		resolver intent.Resolver = intent.StaticResolver{}
		ollama   *intent.OllamaResolver
	)
	if cfg.Intent.Enabled {
		ollama = intent.NewOllamaResolver(intent.OllamaConfig{
			BaseURL:         cfg.Intent.OllamaURL,
			Model:           cfg.Intent.Model,
			Timeout:         cfg.Intent.Timeout,
			Retries:         cfg.Intent.Retries,
			BreakerFailures: cfg.Intent.BreakerFailures,
			BreakerCooldown: cfg.Intent.BreakerCooldown,
		}, intent.WithLogger(logger.Named("intent")), intent.WithMetrics(metrics))
		resolver = ollama
	}

	return service.NewAgent(registry, resolver, cfg.Files.BasePath, logger.Named("agent")), ollama, nil
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		var err error
		if logger, err = NewLogger(cfg); err != nil {
			return nil, err
		}
	}

	logger.Info("Initializing FileAgent server",
		zap.String("addr", cfg.Address()),
		zap.String("base_path", cfg.Files.BasePath),
		zap.Bool("intent_enabled", cfg.Intent.Enabled),
		zap.String("model", cfg.Intent.Model),
	)

	metrics := monitoring.NewMetrics()

	agent, ollama, err := NewAgent(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	info := apihttp.IntentInfo{Enabled: cfg.Intent.Enabled}
	if ollama != nil {
		info.Model = ollama.Model()
		info.State = func() string { return ollama.BreakerState().String() }
	}

	handlers := apihttp.NewHandlers(agent, info, logger.Named("api"))
	metricsHandlers := apihttp.NewMetricsHandlers(metrics)
	wsHandler := ws.NewHandler(agent, metrics, logger.Named("ws"))

	router.GET("/", handlers.Root)

	api := router.Group("/api")
	api.GET("/health", handlers.Health)
	api.POST("/chat", handlers.Chat)
	api.POST("/execute", handlers.Execute)
	api.GET("/operations", handlers.ListOperations)
	api.POST("/operations/discover", handlers.DiscoverOperations)
	api.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", metricsHandlers.Prometheus)
	router.GET("/metrics/json", metricsHandlers.JSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		agent:   agent,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Address()
	s.http = &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Close(shutdownCtx)
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.logger.Sync()

	if s.http == nil {
		return nil
	}
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
