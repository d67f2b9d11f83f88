package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/outwriter"
	"github.com/huangsam/divrank/schema"
)

// errInvalidQuery marks a request whose parameters cannot be used.
var errInvalidQuery = errors.New("invalid query")

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// rankConfig derives the per-request config from the query string.
// metric takes a key or label; state may repeat or be comma-separated.
func (s *Server) rankConfig(r *http.Request) (*contract.Config, error) {
	cfg := s.cfg.Clone()
	query := r.URL.Query()

	if raw := query.Get("metric"); raw != "" {
		metric, ok := schema.LookupMetric(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownMetric, raw)
		}
		cfg.Metric = metric
	}
	if states, ok := query["state"]; ok {
		cfg.States = schema.NormalizeStates(states)
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > contract.MaxResultLimit {
			return nil, fmt.Errorf("%w: limit must be between 0 and %d", errInvalidQuery, contract.MaxResultLimit)
		}
		cfg.ResultLimit = limit
	}
	return cfg, nil
}

// rank runs one ranking for the request.
func (s *Server) rank(r *http.Request) (*schema.RankedView, error) {
	cfg, err := s.rankConfig(r)
	if err != nil {
		return nil, err
	}
	ctx := core.WithRunSource(core.WithSuppressHeader(r.Context()), "web")
	return core.GetRankResults(ctx, cfg, s.ds, s.mgr)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, core.ErrUnknownMetric) || errors.Is(err, errInvalidQuery) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// renderError logs err and writes it as a JSON error body.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	reqID := middleware.GetReqID(r.Context())
	s.logger.ErrorContext(r.Context(), "Request failed",
		slog.String("request_id", reqID),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()))

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error(), RequestID: reqID})
}

// handleRankings handles GET /api/rankings
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	view, err := s.rank(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// handleStates handles GET /api/states
func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	table, err := s.ds.Table(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, schema.StatesRenderModel{Source: table.Source, States: table.States()})
}

// handleMetrics handles GET /api/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	table, err := s.ds.Table(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, core.BuildMetricsModel(table))
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleDownload handles GET /download.csv
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	view, err := s.rank(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", schema.ExportMimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", schema.ExportFileName))
	if err := outwriter.WriteRankedCSV(w, view.Rows); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to stream CSV",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
	}
}

// metricOption is one entry of the metric selector.
type metricOption struct {
	schema.MetricOption
	Selected bool
}

// stateOption is one entry of the state selector.
type stateOption struct {
	Name     string
	Selected bool
}

// indexPage is the data behind the dashboard template.
type indexPage struct {
	Title   string
	Label   string
	Metrics []metricOption
	States  []stateOption
	Rows    []schema.RankedRow
	CSVLink template.URL
	Error   string
}

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Title:   schema.AppTitle,
		CSVLink: template.URL("/download.csv?" + r.URL.Query().Encode()),
	}
	status := http.StatusOK

	cfg, err := s.rankConfig(r)
	if err != nil {
		status, page.Error = statusFor(err), err.Error()
		cfg = s.cfg
	}

	for _, m := range schema.AllMetrics {
		page.Metrics = append(page.Metrics, metricOption{MetricOption: m, Selected: m.Key == cfg.Metric})
	}
	page.Label = schema.MetricLabel(cfg.Metric)

	table, tableErr := s.ds.Table(r.Context())
	if tableErr == nil {
		for _, st := range table.States() {
			page.States = append(page.States, stateOption{Name: st, Selected: slices.Contains(cfg.States, st)})
		}
	}

	if page.Error == "" {
		view, err := s.rank(r)
		if err != nil {
			status, page.Error = statusFor(err), err.Error()
		} else {
			page.Rows = view.Rows
		}
	}

	if page.Error != "" {
		s.logger.ErrorContext(r.Context(), "Dashboard request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("status", status),
			slog.String("error", page.Error))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, page); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to render dashboard", slog.String("error", err.Error()))
	}
}
