package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kingtech/dboptima/internal/collection"
	"github.com/kingtech/dboptima/internal/records"
)

// TeamStats are the headline numbers above the team list.
type TeamStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Invited  int `json:"invited"`
	Inactive int `json:"inactive"`
}

// Team owns the team-member collection.
type Team struct {
	mu      sync.Mutex
	members []records.TeamMember
}

// NewTeam seeds a team store.
func NewTeam(seed []records.TeamMember) *Team {
	return &Team{members: snapshot(seed)}
}

// List returns the members matching query, in display order.
func (s *Team) List(query string) []records.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(collection.Search(s.members, query, records.TeamSearchFields))
}

// Invite appends a new member for the given email and role. The member's
// status always starts invited regardless of the requested role, and the
// display name is derived from the email's local part.
func (s *Team) Invite(email string, role records.Role) records.TeamMember {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	member := records.TeamMember{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Role:       role,
		Status:     records.MemberInvited,
		LastActive: "Not yet",
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = collection.Append(s.members, member)
	return member
}

// ChangeRole rewrites a member's role in place, preserving position.
// Reports whether a member matched.
func (s *Team) ChangeRole(id string, role records.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.members {
		if m.ID == id {
			m.Role = role
			next := snapshot(s.members)
			next[i] = m
			s.members = next
			return true
		}
	}
	return false
}

// Remove deletes a member. Reports whether anything was removed.
func (s *Team) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	s.members, removed = collection.Remove(s.members, id)
	return removed
}

// Stats computes the headline aggregates over the current collection.
func (s *Team) Stats() TeamStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := collection.Aggregate(s.members, func(m records.TeamMember) records.MemberStatus {
		return m.Status
	})
	return TeamStats{
		Total:    len(s.members),
		Active:   byStatus[records.MemberActive],
		Invited:  byStatus[records.MemberInvited],
		Inactive: byStatus[records.MemberInactive],
	}
}
