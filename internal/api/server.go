// Package api hosts the HTTP server for the pokereview REST API.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	mw "github.com/tphakala/pokereview/internal/api/middleware"
	v1 "github.com/tphakala/pokereview/internal/api/v1"
	"github.com/tphakala/pokereview/internal/conf"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
	"github.com/tphakala/pokereview/internal/observability"
)

// Server timeouts.
const (
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Server wraps the echo instance, its middleware stack and the v1 controller.
type Server struct {
	echo     *echo.Echo
	settings *conf.Settings
	log      logger.Logger

	sessions      *session.Factory
	metrics       *observability.Metrics
	apiController *v1.Controller
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(log logger.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics enables request metrics and the /metrics endpoint when the
// settings allow it.
func WithMetrics(m *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates the HTTP server. sessions supplies one unit of work per request.
func New(settings *conf.Settings, sessions *session.Factory, opts ...ServerOption) (*Server, error) {
	if settings == nil {
		return nil, errors.NewStd("api: settings are required")
	}
	if sessions == nil {
		return nil, errors.NewStd("api: session factory is required")
	}

	s := &Server{
		settings: settings,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Global().Module("api")
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Server.ReadTimeout = DefaultReadTimeout
	s.echo.Server.WriteTimeout = DefaultWriteTimeout
	s.echo.Server.IdleTimeout = DefaultIdleTimeout

	s.setupMiddleware()
	s.setupRoutes()

	s.log.Info("HTTP server initialized",
		logger.String("address", settings.WebServer.Address()),
		logger.Bool("metrics", s.metricsEnabled()))
	return s, nil
}

func (s *Server) metricsEnabled() bool {
	return s.metrics != nil && s.settings.WebServer.Metrics
}

// setupMiddleware configures the Echo middleware stack.
func (s *Server) setupMiddleware() {
	// Recovery first
	s.echo.Use(echomw.Recover())
	if s.metricsEnabled() {
		s.echo.Use(mw.NewMetrics(s.metrics.HTTP))
	}
	s.echo.Use(mw.NewRequestLoggerWithSkipper(s.log, func(c echo.Context) bool {
		return c.Path() == "/metrics"
	}))
	s.echo.Use(mw.NewCORS(mw.DefaultSecurityConfig()))
	s.echo.Use(mw.NewBodyLimit(mw.DefaultBodyLimit))
	s.echo.Use(mw.NewSecureHeaders())
}

func (s *Server) setupRoutes() {
	if s.metricsEnabled() {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	s.apiController = v1.New(s.echo, s.sessions, v1.WithLogger(s.log.Module("v1")))
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully within
// the configured shutdown timeout. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.settings.WebServer.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Start serves HTTP requests and blocks until the server is shut down.
func (s *Server) Start() error {
	addr := s.settings.WebServer.Address()
	s.log.Info("starting HTTP server", logger.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("HTTP server failed", logger.Error(err))
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		s.log.Error("error during server shutdown", logger.Error(err))
		return err
	}
	s.log.Info("server shutdown complete")
	return nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// APIController returns the v1 controller.
func (s *Server) APIController() *v1.Controller {
	return s.apiController
}
