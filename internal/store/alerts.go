package store

import (
	"sync"

	"github.com/kingtech/dboptima/internal/collection"
	"github.com/kingtech/dboptima/internal/records"
)

// AlertStats are the headline numbers above the alerts list.
type AlertStats struct {
	Total    int `json:"total"`
	Unread   int `json:"unread"`
	Critical int `json:"critical"`
	Resolved int `json:"resolved"`
	// ByCategory counts alerts per category across all statuses.
	ByCategory map[records.AlertCategory]int `json:"byCategory"`
}

// Alerts owns the alerts collection.
type Alerts struct {
	mu     sync.Mutex
	alerts []records.Alert
}

// NewAlerts seeds an alert store.
func NewAlerts(seed []records.Alert) *Alerts {
	return &Alerts{alerts: snapshot(seed)}
}

// List returns the alerts matching query, in display order. An empty query
// returns everything.
func (s *Alerts) List(query string) []records.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(collection.Search(s.alerts, query, records.AlertSearchFields))
}

// MarkRead transitions an unread alert to read. Reports whether the alert
// changed.
func (s *Alerts) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed bool
	s.alerts, changed = collection.Transition(s.alerts, id, records.AlertRead, records.AlertRules)
	return changed
}

// Resolve transitions an alert to the terminal resolved status.
func (s *Alerts) Resolve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed bool
	s.alerts, changed = collection.Transition(s.alerts, id, records.AlertResolved, records.AlertRules)
	return changed
}

// MarkAllRead transitions every unread alert to read and returns how many
// alerts changed.
func (s *Alerts) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	s.alerts, n = collection.BulkTransition(s.alerts,
		func(a records.Alert) bool { return a.Status == records.AlertUnread },
		records.AlertRead, records.AlertRules)
	return n
}

// Delete removes an alert. Reports whether anything was removed.
func (s *Alerts) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.alerts, removed = collection.Remove(s.alerts, id)
	return removed
}

// Stats computes the headline aggregates. Critical counts unresolved
// critical alerts only, matching the stat card on the page.
func (s *Alerts) Stats() AlertStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AlertStats{
		Total: len(s.alerts),
		Unread: collection.Count(s.alerts, func(a records.Alert) bool {
			return a.Status == records.AlertUnread
		}),
		Critical: collection.Count(s.alerts, func(a records.Alert) bool {
			return a.Severity == records.SeverityCritical && a.Status != records.AlertResolved
		}),
		Resolved: collection.Count(s.alerts, func(a records.Alert) bool {
			return a.Status == records.AlertResolved
		}),
		ByCategory: collection.Aggregate(s.alerts, func(a records.Alert) records.AlertCategory {
			return a.Category
		}),
	}
}
