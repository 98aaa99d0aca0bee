// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/benchgraph/internal/adapters/repository"
	"github.com/okian/benchgraph/internal/domain/graph"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Benchmarks lists every chart that can be rendered.
	Benchmarks(ctx context.Context) []Summary

	// Configure returns the declarative chart of one history.
	Configure(ctx context.Context, platform, bench string) (graph.Config, error)

	// Render draws the chart of one history.
	Render(ctx context.Context, platform, bench string) (graph.Artifact, error)

	// Click resolves a click on point index and reports whether nav was asked
	// to open a commit.
	Click(ctx context.Context, platform, bench string, index int, nav graph.Navigator) (bool, error)
}

// Summary mirrors the read shape returned by chart listings.
type Summary = repository.Summary

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	graphsHandler    *GraphsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		graphsHandler:    NewGraphsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/graphs", MetricsMiddleware(s.graphsHandler.HandleList, "graphs"))
	mux.HandleFunc("/graph/config", MetricsMiddleware(s.graphsHandler.HandleConfig, "graph_config"))
	mux.HandleFunc("/graph/click", MetricsMiddleware(s.graphsHandler.HandleClick, "graph_click"))
	mux.HandleFunc("/graph", MetricsMiddleware(s.graphsHandler.HandleGraph, "graph"))
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}

// writeFailure maps an upstream error kind to a status code.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, r, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal_error", err)
	}
}
