package rest

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingtech/dboptima/internal/server/websocket"
)

// handleListAlerts responds to GET /api/v1/alerts. The optional q query
// parameter filters by title, description, or database label.
func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.alerts.List(r.URL.Query().Get("q")))
}

// handleAlertStats responds to GET /api/v1/alerts/stats.
func (s *Server) handleAlertStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.alerts.Stats())
}

// handleMarkAlertRead responds to POST /api/v1/alerts/{id}/read. A miss —
// unknown id or an alert already past unread — is a silent no-op.
func (s *Server) handleMarkAlertRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.alerts.MarkRead(id) {
		s.record(r, "alert_read", "alert", id, "Alert marked as read")
	}
	writeJSON(w, http.StatusOK, s.alerts.Stats())
}

// handleResolveAlert responds to POST /api/v1/alerts/{id}/resolve.
func (s *Server) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.alerts.Resolve(id) {
		s.notify("Alert Resolved", "The alert has been marked as resolved", websocket.VariantSuccess)
		s.record(r, "alert_resolved", "alert", id, "Alert marked as resolved")
	}
	writeJSON(w, http.StatusOK, s.alerts.Stats())
}

// handleMarkAllAlertsRead responds to POST /api/v1/alerts/read-all.
func (s *Server) handleMarkAllAlertsRead(w http.ResponseWriter, r *http.Request) {
	if n := s.alerts.MarkAllRead(); n > 0 {
		s.notify("All Alerts Read", "All alerts have been marked as read", websocket.VariantSuccess)
		s.record(r, "alerts_read_all", "alert", "", fmt.Sprintf("%d alerts marked as read", n))
	}
	writeJSON(w, http.StatusOK, s.alerts.Stats())
}

// handleDeleteAlert responds to DELETE /api/v1/alerts/{id}.
func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.alerts.Delete(id) {
		s.notify("Alert Deleted", "The alert has been removed", websocket.VariantDefault)
		s.record(r, "alert_deleted", "alert", id, "Alert removed")
		s.auditEvent(r, "alert_deleted", id, "")
	}
	writeJSON(w, http.StatusOK, s.alerts.Stats())
}
