package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
)

// GraphsHandler serves chart listings, configurations, artifacts and clicks.
type GraphsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewGraphsHandler creates a new graphs handler.
func NewGraphsHandler(deps Dependencies) *GraphsHandler {
	return &GraphsHandler{deps: deps, logger: logger.Get().Named("api")}
}

// HandleList handles GET /graphs requests.
func (h *GraphsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Benchmarks(r.Context()))
}

// HandleGraph handles GET /graph?platform=&bench= requests and returns the
// rendered chart.
func (h *GraphsHandler) HandleGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	platform, bench, err := pair(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	art, err := h.deps.Render(r.Context(), platform, bench)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("X-Graph-ID", art.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Body)
}

// HandleConfig handles GET /graph/config?platform=&bench= requests.
func (h *GraphsHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	platform, bench, err := pair(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	cfg, err := h.deps.Configure(r.Context(), platform, bench)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// HandleClick handles GET /graph/click?platform=&bench=&index= requests. A
// resolved point redirects to its commit; anything else is 204.
func (h *GraphsHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	platform, bench, err := pair(r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil || index < 0 {
		writeFailure(w, r, fmt.Errorf("%w: index must be a non-negative integer", ErrBadRequest))
		return
	}

	var target string
	nav := graph.NavigatorFunc(func(_ context.Context, url string) { target = url })
	opened, err := h.deps.Click(r.Context(), platform, bench, index, nav)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !opened || target == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *GraphsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn(r.Context(), "graph request failed",
		logger.String("path", r.URL.Path),
		logger.String("requestId", RequestIDFrom(r.Context())),
		logger.Error(err),
	)
	writeFailure(w, r, err)
}

// pair reads the platform and bench query parameters.
func pair(r *http.Request) (string, string, error) {
	q := r.URL.Query()
	platform := strings.TrimSpace(q.Get("platform"))
	bench := strings.TrimSpace(q.Get("bench"))
	switch {
	case platform == "":
		return "", "", fmt.Errorf("%w: missing platform", ErrBadRequest)
	case bench == "":
		return "", "", fmt.Errorf("%w: missing bench", ErrBadRequest)
	}
	return platform, bench, nil
}
