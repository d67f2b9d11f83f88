// Package web serves the ranking dashboard and its JSON API over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/spf13/afero"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server holds the dependencies shared by every request. The dataset is
// loaded when the server is built and then served read-only.
type Server struct {
	cfg    *contract.Config
	mgr    contract.CacheManager
	ds     *core.Dataset
	logger *slog.Logger
	tmpl   *template.Template
}

// NewServer builds a Server for cfg and loads the dataset. A load failure is
// returned wrapped, so the caller never starts a server without data.
// A nil logger writes JSON to stderr.
func NewServer(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, fs afero.Fs, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	precision := cfg.Precision
	if precision <= 0 {
		precision = contract.DefaultPrecision
	}
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"num": func(v float64) string { return strconv.FormatFloat(v, 'f', precision, 64) },
	}).ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	ds := core.NewDataset(fs, cfg.DataPath, mgr)
	if _, err := ds.Table(ctx); err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", cfg.DataPath, err)
	}

	return &Server{
		cfg:    cfg,
		mgr:    mgr,
		ds:     ds,
		logger: logger.With(slog.String("component", "web")),
		tmpl:   tmpl,
	}, nil
}

// Routes returns the HTTP handler with all routes mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Order: RequestID → RealIP → Logger → Recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(structuredLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/download.csv", s.handleDownload)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/rankings", s.handleRankings)
		r.Get("/states", s.handleStates)
		r.Get("/metrics", s.handleMetrics)
	})

	return r
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully
// within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.InfoContext(ctx, "Dashboard started",
		slog.String("address", s.cfg.Addr),
		slog.String("data", s.cfg.DataPath))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = contract.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down dashboard")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// structuredLogger logs one line per completed request.
func structuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request completed",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}
