package store

import (
	"sync"

	"github.com/kingtech/dboptima/internal/collection"
	"github.com/kingtech/dboptima/internal/records"
)

// IndexStats are the headline numbers above the index-advisor list.
type IndexStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Applied int `json:"applied"`
	// AvgImprovement is the mean estimated improvement of pending
	// recommendations, 0 when none are pending.
	AvgImprovement int `json:"avgImprovement"`
}

// Indexes owns the index-recommendation collection.
type Indexes struct {
	mu   sync.Mutex
	recs []records.IndexRecommendation
}

// NewIndexes seeds an index-recommendation store.
func NewIndexes(seed []records.IndexRecommendation) *Indexes {
	return &Indexes{recs: snapshot(seed)}
}

// List returns the recommendations matching query, in display order.
func (s *Indexes) List(query string) []records.IndexRecommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(collection.Search(s.recs, query, records.RecommendationSearchFields))
}

// Apply moves a pending recommendation to the terminal applied status.
func (s *Indexes) Apply(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed bool
	s.recs, changed = collection.Transition(s.recs, id, records.RecommendationApplied, records.RecommendationRules)
	return changed
}

// Reject moves a pending recommendation to the terminal rejected status.
func (s *Indexes) Reject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed bool
	s.recs, changed = collection.Transition(s.recs, id, records.RecommendationRejected, records.RecommendationRules)
	return changed
}

// Add appends newly discovered recommendations, e.g. the results of a
// database scan. Returns the new collection size.
func (s *Indexes) Add(recs ...records.IndexRecommendation) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.recs = collection.Append(s.recs, rec)
	}
	return len(s.recs)
}

// Stats computes the headline aggregates over the current collection.
func (s *Indexes) Stats() IndexStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := IndexStats{Total: len(s.recs)}
	improvementSum := 0
	for _, rec := range s.recs {
		switch rec.Status {
		case records.RecommendationPending:
			stats.Pending++
			improvementSum += rec.EstimatedImprovement
		case records.RecommendationApplied:
			stats.Applied++
		}
	}
	if stats.Pending > 0 {
		stats.AvgImprovement = improvementSum / stats.Pending
	}
	return stats
}
