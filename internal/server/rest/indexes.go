package rest

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/server/websocket"
)

// handleListIndexes responds to GET /api/v1/indexes. The optional q query
// parameter filters by table name or indexed column.
func (s *Server) handleListIndexes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.indexes.List(r.URL.Query().Get("q")))
}

// handleIndexStats responds to GET /api/v1/indexes/stats.
func (s *Server) handleIndexStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.indexes.Stats())
}

// handleApplyIndex responds to POST /api/v1/indexes/{id}/apply.
func (s *Server) handleApplyIndex(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.indexes.Apply(id) {
		s.notify("Index Applied", "The index has been created successfully", websocket.VariantSuccess)
		s.record(r, "index_applied", "recommendation", id, "Index recommendation applied")
	}
	writeJSON(w, http.StatusOK, s.indexes.Stats())
}

// handleRejectIndex responds to POST /api/v1/indexes/{id}/reject.
func (s *Server) handleRejectIndex(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.indexes.Reject(id) {
		s.notify("Recommendation Rejected", "The index recommendation has been dismissed", websocket.VariantDefault)
		s.record(r, "index_rejected", "recommendation", id, "Index recommendation rejected")
	}
	writeJSON(w, http.StatusOK, s.indexes.Stats())
}

// scanFindings returns the recommendations a database scan discovers. The
// scan itself is simulated, so the findings are a fixed set with fresh
// identifiers.
func scanFindings() []records.IndexRecommendation {
	return []records.IndexRecommendation{
		{
			ID:                   uuid.NewString(),
			TableName:            "sessions",
			Columns:              []string{"user_id", "expires_at"},
			Type:                 "B-tree Composite",
			Reason:               "Session lookups filter on user and expiry together",
			Impact:               records.ImpactHigh,
			EstimatedImprovement: 65,
			CreatedAt:            "Just now",
			Status:               records.RecommendationPending,
		},
		{
			ID:                   uuid.NewString(),
			TableName:            "invoices",
			Columns:              []string{"status"},
			Type:                 "Partial",
			Reason:               "Most queries touch only unpaid invoices",
			Impact:               records.ImpactMedium,
			EstimatedImprovement: 40,
			CreatedAt:            "Just now",
			Status:               records.RecommendationPending,
		},
		{
			ID:                   uuid.NewString(),
			TableName:            "audit_log",
			Columns:              []string{"created_at"},
			Type:                 "BRIN",
			Reason:               "Time-range scans over an append-only table",
			Impact:               records.ImpactLow,
			EstimatedImprovement: 25,
			CreatedAt:            "Just now",
			Status:               records.RecommendationPending,
		},
	}
}

// handleScanIndexes responds to POST /api/v1/indexes/scan. The scan runs as
// a simulated background job bound to the server's lifetime: the response
// is immediate, and the discovered recommendations are appended to the
// collection when the job completes.
func (s *Server) handleScanIndexes(w http.ResponseWriter, r *http.Request) {
	s.notify("Scanning Database", "Analyzing query patterns and table structures...", websocket.VariantDefault)

	findings := scanFindings()
	actor := actorFromContext(r.Context())
	s.runner.Run(s.baseCtx, "index-scan", func() {
		s.indexes.Add(findings...)
		s.notify("Scan Complete",
			fmt.Sprintf("Found %d new index recommendations", len(findings)),
			websocket.VariantSuccess)
		if s.activity != nil {
			if err := s.activity.Record(s.baseCtx, actor, "index_scan", "recommendation", "",
				fmt.Sprintf("Scan discovered %d recommendations", len(findings))); err != nil {
				s.logger.Warn("activity record failed", "error", err)
			}
		}
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scanning"})
}
