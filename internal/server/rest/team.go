package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/server/websocket"
)

// handleListTeam responds to GET /api/v1/team. The optional q query
// parameter filters by name, email, or role.
func (s *Server) handleListTeam(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.team.List(r.URL.Query().Get("q")))
}

// handleTeamStats responds to GET /api/v1/team/stats.
func (s *Server) handleTeamStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.team.Stats())
}

// inviteRequest is the POST /api/v1/team/invite body.
type inviteRequest struct {
	Email string       `json:"email"`
	Role  records.Role `json:"role"`
}

// handleInviteMember responds to POST /api/v1/team/invite. The new member
// always starts in the invited status.
func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with 'email' and 'role'")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "'email' must be a valid address")
		return
	}
	if !records.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "'role' must be one of Admin, DBA, Developer, Viewer")
		return
	}

	member := s.team.Invite(req.Email, req.Role)
	s.notify("Invitation Sent", "Invitation sent to "+req.Email, websocket.VariantSuccess)
	s.record(r, "member_invited", "member", member.ID, req.Email+" invited as "+string(req.Role))

	writeJSON(w, http.StatusCreated, member)
}

// roleRequest is the POST /api/v1/team/{id}/role body.
type roleRequest struct {
	Role records.Role `json:"role"`
}

// handleChangeRole responds to POST /api/v1/team/{id}/role.
func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with 'role'")
		return
	}
	if !records.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "'role' must be one of Admin, DBA, Developer, Viewer")
		return
	}

	id := chi.URLParam(r, "id")
	if s.team.ChangeRole(id, req.Role) {
		s.notify("Role Updated", "Member role has been updated to "+string(req.Role), websocket.VariantSuccess)
		s.record(r, "role_changed", "member", id, "Role changed to "+string(req.Role))
		s.auditEvent(r, "role_changed", id, string(req.Role))
	}
	writeJSON(w, http.StatusOK, s.team.Stats())
}

// handleRemoveMember responds to DELETE /api/v1/team/{id}.
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.team.Remove(id) {
		s.notify("Member Removed", "Team member has been removed", websocket.VariantDefault)
		s.record(r, "member_removed", "member", id, "Team member removed")
		s.auditEvent(r, "member_removed", id, "")
	}
	writeJSON(w, http.StatusOK, s.team.Stats())
}
