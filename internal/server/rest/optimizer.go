package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/kingtech/dboptima/internal/analyzer"
	"github.com/kingtech/dboptima/internal/server/websocket"
)

// analyzeRequest is the body shared by the optimizer endpoints.
type analyzeRequest struct {
	Query string `json:"query"`
	// DatabaseType is accepted for forward compatibility; the analysis is
	// currently engine-agnostic.
	DatabaseType string `json:"database_type,omitempty"`
}

func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (analyzeRequest, bool) {
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with 'query'")
		return req, false
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "'query' is required")
		return req, false
	}
	return req, true
}

// handleAnalyzeQuery responds to POST /api/v1/optimizer/analyze. The
// request waits out the configured simulated analysis latency; a client
// that disconnects first gets nothing and no notification fires.
func (s *Server) handleAnalyzeQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	if err := s.runner.Delay(r.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away mid-analysis; nothing to write.
			return
		}
		writeError(w, http.StatusServiceUnavailable, "analysis interrupted")
		return
	}

	result := analyzer.Analyze(req.Query)
	s.notify("Analysis Complete", "Query optimization recommendations are ready", websocket.VariantSuccess)
	s.record(r, "query_analyzed", "query", "", "Query analyzed by optimizer")

	writeJSON(w, http.StatusOK, result)
}

// handleRecommendIndexes responds to POST /api/v1/optimizer/recommend-indexes.
func (s *Server) handleRecommendIndexes(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	recs := analyzer.RecommendIndexes(req.Query)
	if recs == nil {
		recs = []analyzer.IndexSuggestion{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleEstimatePerformance responds to POST /api/v1/optimizer/estimate-performance.
func (s *Server) handleEstimatePerformance(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analyzer.EstimatePerformance(req.Query))
}
