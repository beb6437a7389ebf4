package handlers

import (
	"log/slog"
	"net/http"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/server/storage"
)

// DashboardHandler serves the landing page after login
type DashboardHandler struct {
	logger   *slog.Logger
	records  storage.RecordStorage
	sessions *auth.Sessions
	renderer *Renderer
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(logger *slog.Logger, records storage.RecordStorage, sessions *auth.Sessions, renderer *Renderer) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		records:  records,
		sessions: sessions,
		renderer: renderer,
	}
}

type dashboardPageData struct {
	Username     string
	CSRFToken    string
	TotalRecords int
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, _ := GetIdentity(ctx)

	total, err := h.records.CountRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count records", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "dashboard.html", dashboardPageData{
		Username:     id.Username,
		CSRFToken:    h.sessions.CSRFToken(id.SessionID),
		TotalRecords: total,
	})
}
