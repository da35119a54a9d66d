package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/export"
	"github.com/poiesic/mergen/observability"
)

// DefaultTimeout bounds a single request, including the model calls made
// while planning.
const DefaultTimeout = 60 * time.Second

// Planner produces travel plans.
type Planner interface {
	PlanTravel(ctx context.Context, query string, topK int) (*core.Plan, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRegistry mounts /metrics for reg.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// Server routes HTTP requests to a Planner.
type Server struct {
	mux      *chi.Mux
	planner  Planner
	pdf      *export.Writer
	registry *prometheus.Registry
	timeout  time.Duration
	logger   *slog.Logger
}

// New builds the router for planner.
func New(planner Planner, opts ...Option) *Server {
	s := &Server{
		planner: planner,
		pdf:     export.NewWriter(),
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http-server")

	m := chi.NewRouter()
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(chimw.Timeout(s.timeout))
	m.Use(Metrics)
	m.Use(Logger(s.logger))

	m.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	m.Post("/v1/plan", s.plan)
	m.Post("/v1/plan/pdf", s.planPDF)
	if s.registry != nil {
		m.Handle("/metrics", observability.MetricsHandler(s.registry))
	}

	s.mux = m
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
