package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/camden-git/policeportal/repository"
)

// SiteHandler serves the health check, the public landing payload and the
// dashboard.
type SiteHandler struct {
	AppName   string
	Auth      *Authenticator
	Dashboard repository.DashboardRepository
	Log       *zap.Logger
	Now       func() time.Time
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthCheck handles GET /health-check
func (h *SiteHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: now().UTC().Format(time.RFC3339),
	})
}

// Landing handles GET /, which is public.
func (h *SiteHandler) Landing(w http.ResponseWriter, r *http.Request) {
	_, err := h.Auth.identify(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":          h.AppName,
		"authenticated": err == nil,
	})
}

// ShowDashboard handles GET /dashboard
func (h *SiteHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, h.Log, err, "Dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
