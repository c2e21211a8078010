package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/config"
	"pawhub/gateway/pkg/oauth"
	"pawhub/gateway/pkg/proxy/handlers"
	"pawhub/gateway/pkg/proxy/middleware"
	gwtls "pawhub/gateway/pkg/security/tls"
	"pawhub/gateway/pkg/telemetry/health"
	"pawhub/gateway/pkg/telemetry/metrics"
	"pawhub/gateway/pkg/telemetry/tracing"
)

// Server is the gateway HTTP server.
type Server struct {
	config    *config.Config
	backend   *backend.Client
	oauth     *oauth.Registry
	collector *metrics.Collector
	tracer    *tracing.Tracer
	checker   *health.Checker
	version   health.VersionInfo

	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the build information served on /version.
func WithVersion(info health.VersionInfo) Option {
	return func(s *Server) { s.version = info }
}

// WithCollector replaces the metrics collector. A nil collector disables
// metrics regardless of configuration.
func WithCollector(c *metrics.Collector) Option {
	return func(s *Server) { s.collector = c }
}

// WithTracer sets the tracer for server and backend spans. Without it the
// gateway still propagates inbound trace context but records nothing.
func WithTracer(t *tracing.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// New wires the gateway from cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		config:       cfg,
		version:      health.NewVersionInfo("dev", "unknown", "unknown"),
		tracer:       tracing.Noop(),
		shutdownChan: make(chan struct{}),
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		s.collector = metrics.NewCollector(metrics.OptionsFromConfig(cfg.Telemetry.Metrics), nil)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = tracing.Noop()
	}

	s.backend = backend.NewClient(backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		Timeout:    cfg.Backend.Timeout,
		HealthPath: cfg.Backend.HealthPath,
	}, backend.WithObserver(s.observer()), backend.WithTracer(s.tracer))

	s.oauth = oauth.NewRegistry(oauth.NewConfigSource(cfg.OAuth), oauth.WithLoadRecorder(s.loadRecorder()))

	s.checker = health.New(cfg.Backend.Timeout)
	s.checker.RegisterCheck("backend", health.BackendCheck(s.backend, s.healthReporter()))

	return s
}

// The collector is handed out through interfaces; a nil *Collector must not
// become a non-nil interface holding nil.
func (s *Server) observer() backend.Observer {
	if s.collector == nil {
		return nil
	}
	return s.collector
}

func (s *Server) loadRecorder() oauth.LoadRecorder {
	if s.collector == nil {
		return nil
	}
	return s.collector
}

func (s *Server) healthReporter() health.Reporter {
	if s.collector == nil {
		return nil
	}
	return s.collector
}

// Start listens on the configured address and serves until ctx is cancelled,
// Stop is called or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}

	var reloader *gwtls.CertificateReloader
	if s.config.Server.TLS.Enabled {
		var tlsConfig *tls.Config
		tlsConfig, reloader, err = gwtls.ServerConfig(s.config.Server.TLS)
		if err != nil {
			ln.Close()
			s.mu.Unlock()
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		ln = tls.NewListener(ln, tlsConfig)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       s.config.Server.IdleTimeout,
		MaxHeaderBytes:    s.config.Server.MaxHeaderBytes,
	}
	s.isRunning = true
	s.mu.Unlock()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if reloader != nil {
		go reloader.Watch(watchCtx)
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway",
			"address", ln.Addr().String(),
			"backend", s.config.Backend.BaseURL,
			"tls", reloader != nil,
			"metrics_enabled", s.collector != nil,
		)

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		s.mu.RUnlock()
		if !running {
			return
		}

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}
		if err := s.backend.Close(); err != nil {
			slog.Warn("error closing backend client", "error", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("gateway stopped")
	})

	return shutdownErr
}

// Handler returns the gateway's routes wrapped in the middleware chain.
//
// Order, outermost first: recovery, request id, logging, CORS, timeout,
// tracing, metrics. Tracing and metrics sit next to the mux so they can read
// the matched pattern.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	handlers.Register(mux, handlers.Deps{
		Backend:        s.backend,
		OAuth:          s.oauth,
		OAuthConfig:    s.config.OAuth,
		MaxUploadBytes: s.config.Backend.MaxUploadBytes,
	})
	s.checker.Register(mux, s.version)
	if s.collector != nil {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	var handler http.Handler = mux
	handler = s.collector.Middleware(handler)
	handler = tracing.Middleware(s.tracer)(handler)
	handler = middleware.TimeoutMiddleware(s.requestTimeout())(handler)
	handler = middleware.CORSMiddleware(middleware.NewCORSConfig(s.config.Server.CORS))(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// requestTimeout leaves the backend timeout room to produce its own 504
// before the whole request is abandoned.
func (s *Server) requestTimeout() time.Duration {
	t := s.config.Server.WriteTimeout
	if bt := s.config.Backend.Timeout + 5*time.Second; t > 0 && bt > t {
		t = bt
	}
	return t
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Collector returns the metrics collector, or nil when metrics are disabled.
func (s *Server) Collector() *metrics.Collector {
	return s.collector
}
