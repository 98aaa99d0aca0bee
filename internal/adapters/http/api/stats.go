package api

import (
	"errors"
	"net/http"
)

var errStatsUnavailable = errors.New("stats provider not configured")

// StatsProvider reports service counters: load history, loaded benchmarks
// and chart settings.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler binds the handler to provider. A nil provider answers 503.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats writes the provider's counters as JSON. Stats are never cached.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	if h.provider == nil {
		writeError(w, r, http.StatusServiceUnavailable, "stats_unavailable", errStatsUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
