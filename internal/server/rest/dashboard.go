package rest

import (
	"net/http"
	"strconv"

	"github.com/kingtech/dboptima/internal/activity"
	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/store"
)

// overviewResponse is the single payload behind the dashboard page: the
// headline stat cards plus the static chart series.
type overviewResponse struct {
	Databases   store.DatabaseStats        `json:"databases"`
	Alerts      store.AlertStats           `json:"alerts"`
	Indexes     store.IndexStats           `json:"indexes"`
	Reports     store.ReportStats          `json:"reports"`
	Team        store.TeamStats            `json:"team"`
	Performance []records.PerformancePoint `json:"performance"`
	EngineShare []records.EngineShare      `json:"engineShare"`
	SlowQueries []records.SlowQuery        `json:"slowQueries"`
}

// handleDashboardOverview responds to GET /api/v1/dashboard/overview.
func (s *Server) handleDashboardOverview(w http.ResponseWriter, _ *http.Request) {
	resp := overviewResponse{
		Databases: s.databases.Stats(),
		Alerts:    s.alerts.Stats(),
		Indexes:   s.indexes.Stats(),
		Reports:   s.reports.Stats(),
		Team:      s.team.Stats(),
	}
	if s.overview != nil {
		resp.Performance = s.overview.Performance
		resp.EngineShare = s.overview.EngineShare
		resp.SlowQueries = s.overview.SlowQueries
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRecentActivity responds to GET /api/v1/activity. The optional limit
// query parameter caps the number of entries; the default is 20.
func (s *Server) handleRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "'limit' must be a positive integer")
			return
		}
		limit = n
	}

	if s.activity == nil {
		writeJSON(w, http.StatusOK, []activity.Entry{})
		return
	}
	entries, err := s.activity.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("activity query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load activity feed")
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
