// Package server exposes the segmenter over HTTP: an HTML dashboard form, a
// JSON API and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Segmenter is what the handlers need from the inference adapter.
type Segmenter interface {
	Assign(ctx context.Context, c models.Customer) (models.Assignment, error)
	Project(c models.Customer) ([]float64, error)
	Catalog() *models.Catalog
}

// Server serves the dashboard and API.
type Server struct {
	segmenter Segmenter
	logger    logging.Logger
	metrics   *Metrics
	page      *template.Template
	handler   http.Handler
}

// New creates a Server and builds its routes.
func New(segmenter Segmenter, logger logging.Logger) (*Server, error) {
	if segmenter == nil {
		return nil, fmt.Errorf("segmenter cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	page, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("error parsing dashboard template: %w", err)
	}

	s := &Server{
		segmenter: segmenter,
		logger:    logger,
		metrics:   NewMetrics(),
		page:      page,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.handleIndex)
	r.Post("/predict", s.handleFormPredict)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", s.handleAPIPredict)
		r.Get("/segments", s.handleSegments)
	})

	return r
}

// instrument logs each request and records its duration by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.RequestDuration.
			WithLabelValues(r.Method, route, fmt.Sprintf("%d", status)).
			Observe(elapsed.Seconds())

		s.logger.Debug("HTTP request",
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "route", Value: route},
			logging.Field{Key: logging.FieldStatus, Value: status},
			logging.Field{Key: logging.FieldDuration, Value: elapsed.Milliseconds()},
			logging.Field{Key: "request_id", Value: chimiddleware.GetReqID(r.Context())})
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting dashboard server", logging.Field{Key: logging.FieldAddr, Value: addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
