package api

import (
	"net/http"
)

const dashboardPage = "dashboard.html"

// dashboardHandler serves the embedded page that lists /graphs and frames
// every chart, grouped by platform.
type dashboardHandler struct {
	page string
}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{page: dashboardPage}
}

// HandleDashboard handles GET /dashboard.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFileFS(w, r, staticFS, h.page)
}
