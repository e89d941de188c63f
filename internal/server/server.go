// Package server exposes parsing, generation and composition over a small
// JSON API for previewing posts.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/metrics"
)

// MaxBodySize bounds request bodies (1 MiB).
const MaxBodySize = 1 << 20

// Timeouts of the underlying http.Server.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Converter renders marker text. *seopost.Converter satisfies it.
type Converter interface {
	Convert(ctx context.Context, input seopost.Input) (*seopost.Result, error)
}

var _ Converter = (*seopost.Converter)(nil)

// Server routes preview API requests.
type Server struct {
	conv        Converter
	logger      *zap.Logger
	metrics     *metrics.Metrics
	strict      bool
	corsOrigins []string
	defaults    seopost.Options
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("server: WithLogger requires a non-nil logger")
	}
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics sets the collectors updated by requests and served on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	if m == nil {
		panic("server: WithMetrics requires non-nil metrics")
	}
	return func(s *Server) {
		s.metrics = m
	}
}

// WithStrict makes invalid documents answer 422 unless the request sets
// strict=false.
func WithStrict(strict bool) Option {
	return func(s *Server) {
		s.strict = strict
	}
}

// WithCORSOrigins allows browser calls from the given origins. "*" allows any.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithDefaults sets generation options applied when a request leaves a
// field unset.
func WithDefaults(opts seopost.Options) Option {
	return func(s *Server) {
		s.defaults = opts
	}
}

// New creates a Server around conv.
func New(conv Converter, opts ...Option) *Server {
	s := &Server{
		conv:    conv,
		logger:  zap.NewNop(),
		metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parse", s.handleParse)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/compose", s.handleCompose)
	mux.HandleFunc("GET /api/sections", s.handleSections)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// recovery -> request id -> logging -> metrics -> cors -> mux
	var h http.Handler = mux
	h = corsMiddleware(s.corsOrigins, h)
	h = metricsMiddleware(s.metrics, h)
	h = logMiddleware(s.logger, h)
	h = requestIDMiddleware(h)
	h = recoveryMiddleware(s.logger, h)
	return h
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
