package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/api/http"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/middleware"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/ws"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/files"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/session"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/tracing"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests
const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	sessions *session.Manager
	registry *registry.Registry
	watcher  *registry.Watcher
	tracer   *tracing.Tracer
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	config   *config.Config

	watchCancel context.CancelFunc
	watchDone   chan struct{}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing WebDesk server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("boot_app", cfg.Desktop.BootApp),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Application catalogue
	reg, err := registry.New()
	if err != nil {
		return nil, err
	}
	seeder := registry.NewSeeder(reg, cfg.Registry.ManifestDir, logger)
	if err := seeder.Seed(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed registry: %w", err)
	}
	metrics.SetRegistryApps(reg.Len())

	var watcher *registry.Watcher
	if cfg.Registry.Watch {
		watcher, err = registry.NewWatcher(seeder, registry.WithReloadHook(func(err error) {
			metrics.RecordRegistryReload(err)
			metrics.SetRegistryApps(reg.Len())
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to watch manifests: %w", err)
		}
		logger.Info("Watching manifest directory", zap.String("dir", cfg.Registry.ManifestDir))
	}

	fs := files.Default()

	prefs, err := preferences.Open(cfg.Preferences.Path, logger)
	if err != nil {
		closeWatcher(watcher, logger)
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	sessionCfg := session.DefaultConfig()
	sessionCfg.BootApp = cfg.Desktop.BootApp
	sessionCfg.IdleTTL = cfg.Desktop.IdleTTL
	if cfg.Desktop.ReapSchedule != "" {
		sessionCfg.ReapSchedule = cfg.Desktop.ReapSchedule
	}
	sessions := session.NewManager(reg, fs, sessionCfg, logger, session.WithRecorder(metrics))
	if err := sessions.Start(); err != nil {
		closeWatcher(watcher, logger)
		return nil, fmt.Errorf("failed to start session reaper: %w", err)
	}

	tracer := tracing.New("webdesk", logger)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
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

	handlers := http.NewHandlers(http.Deps{
		Sessions:      sessions,
		Registry:      reg,
		Files:         fs,
		Preferences:   prefs,
		Metrics:       metrics,
		TaskbarHeight: cfg.Desktop.TaskbarHeight,
		Logger:        logger,
	})
	stream := ws.NewHandler(sessions, metrics, logger)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	http.RegisterRoutes(router, handlers, stream.HandleConnection)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		sessions: sessions,
		registry: reg,
		watcher:  watcher,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
		config:   cfg,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() nethttp.Handler {
	return s.router
}

// Sessions returns the session manager
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.startWatcher(ctx)

	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("Stopping HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) startWatcher(ctx context.Context) {
	if s.watcher == nil || s.watchDone != nil {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.watchCancel = cancel
	s.watchDone = make(chan struct{})
	go func() {
		defer close(s.watchDone)
		s.watcher.Run(watchCtx)
	}()
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.watchCancel != nil {
		s.watchCancel()
		<-s.watchDone
	}
	closeWatcher(s.watcher, s.logger)

	s.sessions.Stop()
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}

func closeWatcher(w *registry.Watcher, logger *logging.Logger) {
	if w == nil {
		return
	}
	if err := w.Close(); err != nil {
		logger.Warn("Failed to close manifest watcher", zap.Error(err))
	}
}
