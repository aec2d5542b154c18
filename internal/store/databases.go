package store

import (
	"sync"

	"github.com/kingtech/dboptima/internal/collection"
	"github.com/kingtech/dboptima/internal/records"
)

// DatabaseStats are the headline numbers above the databases list.
type DatabaseStats struct {
	Total     int `json:"total"`
	Connected int `json:"connected"`
	// TotalQPS is the summed throughput of all connected databases.
	TotalQPS int `json:"totalQps"`
	// AvgLatency is the mean latency in ms over connected databases, 0 when
	// none are connected.
	AvgLatency int `json:"avgLatency"`
}

// Databases owns the monitored-connection collection. There is no add or
// edit operation: the add-connection dialog on the page never writes back,
// so the server exposes none.
type Databases struct {
	mu  sync.Mutex
	dbs []records.DatabaseConnection
}

// NewDatabases seeds a database-connection store.
func NewDatabases(seed []records.DatabaseConnection) *Databases {
	return &Databases{dbs: snapshot(seed)}
}

// List returns the connections matching query, in display order.
func (s *Databases) List(query string) []records.DatabaseConnection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(collection.Search(s.dbs, query, records.DatabaseSearchFields))
}

// Get returns the connection with the given id.
func (s *Databases) Get(id string) (records.DatabaseConnection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collection.Find(s.dbs, id)
}

// Delete removes a connection. Reports whether anything was removed.
func (s *Databases) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.dbs, removed = collection.Remove(s.dbs, id)
	return removed
}

// Stats computes the headline aggregates over the current collection.
func (s *Databases) Stats() DatabaseStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := DatabaseStats{Total: len(s.dbs)}
	latencySum := 0
	for _, db := range s.dbs {
		if db.Status != records.ConnectionConnected {
			continue
		}
		stats.Connected++
		stats.TotalQPS += db.QueriesPerSecond
		latencySum += db.Latency
	}
	if stats.Connected > 0 {
		stats.AvgLatency = latencySum / stats.Connected
	}
	return stats
}
