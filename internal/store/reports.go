package store

import (
	"sync"

	"github.com/kingtech/dboptima/internal/collection"
	"github.com/kingtech/dboptima/internal/records"
)

// ReportStats are the headline numbers above the reports list.
type ReportStats struct {
	Total      int `json:"total"`
	Ready      int `json:"ready"`
	Generating int `json:"generating"`
	Scheduled  int `json:"scheduled"`
}

// Reports owns the reports collection.
type Reports struct {
	mu      sync.Mutex
	reports []records.Report
}

// NewReports seeds a report store.
func NewReports(seed []records.Report) *Reports {
	return &Reports{reports: snapshot(seed)}
}

// List returns the reports matching query, in display order.
func (s *Reports) List(query string) []records.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(collection.Search(s.reports, query, records.ReportSearchFields))
}

// Get returns the report with the given id.
func (s *Reports) Get(id string) (records.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collection.Find(s.reports, id)
}

// Add appends a new report, typically in the generating status.
func (s *Reports) Add(r records.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = collection.Append(s.reports, r)
}

// Complete flips a generating report to ready and fills in its display
// size. Reports whether the report changed.
func (s *Reports) Complete(id, size string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed bool
	s.reports, changed = collection.Transition(s.reports, id, records.ReportReady, records.ReportRules)
	if !changed {
		return false
	}
	for i, r := range s.reports {
		if r.ID == id {
			r.Size = size
			r.CreatedAt = "Just now"
			s.reports[i] = r
		}
	}
	return true
}

// Delete removes a report. Reports whether anything was removed.
func (s *Reports) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.reports, removed = collection.Remove(s.reports, id)
	return removed
}

// Stats computes the headline aggregates over the current collection.
func (s *Reports) Stats() ReportStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := collection.Aggregate(s.reports, func(r records.Report) records.ReportStatus {
		return r.Status
	})
	return ReportStats{
		Total:      len(s.reports),
		Ready:      byStatus[records.ReportReady],
		Generating: byStatus[records.ReportGenerating],
		Scheduled:  byStatus[records.ReportScheduled],
	}
}
