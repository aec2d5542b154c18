package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingtech/dboptima/internal/server/websocket"
)

// handleListDatabases responds to GET /api/v1/databases. The optional q
// query parameter filters by name or host.
func (s *Server) handleListDatabases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.databases.List(r.URL.Query().Get("q")))
}

// handleDatabaseStats responds to GET /api/v1/databases/stats.
func (s *Server) handleDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.databases.Stats())
}

// handleDeleteDatabase responds to DELETE /api/v1/databases/{id}.
func (s *Server) handleDeleteDatabase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	db, ok := s.databases.Get(id)
	if s.databases.Delete(id) && ok {
		s.notify("Database Removed", db.Name+" has been disconnected", websocket.VariantDefault)
		s.record(r, "database_deleted", "database", id, db.Name+" removed")
		s.auditEvent(r, "database_deleted", id, db.Name)
	}
	writeJSON(w, http.StatusOK, s.databases.Stats())
}
