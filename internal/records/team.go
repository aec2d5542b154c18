package records

import (
	"gopkg.in/yaml.v3"

	"github.com/kingtech/dboptima/internal/collection"
)

// Role is a team member's access level.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleDBA       Role = "DBA"
	RoleDeveloper Role = "Developer"
	RoleViewer    Role = "Viewer"
)

// ValidRole reports whether r is one of the four defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDBA, RoleDeveloper, RoleViewer:
		return true
	}
	return false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Role) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "team role", RoleAdmin, RoleDBA, RoleDeveloper, RoleViewer)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MemberStatus is a team member's account state.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInvited  MemberStatus = "invited"
	MemberInactive MemberStatus = "inactive"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *MemberStatus) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "member status", MemberActive, MemberInvited, MemberInactive)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TeamMember is one entry on the team page.
type TeamMember struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Email  string       `json:"email" yaml:"email"`
	Role   Role         `json:"role" yaml:"role"`
	Status MemberStatus `json:"status" yaml:"status"`
	// LastActive is a display string; "Not yet" for invited members.
	LastActive string `json:"lastActive" yaml:"last_active"`
	Avatar     string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Key implements collection.Record.
func (m TeamMember) Key() string { return m.ID }

// TeamSearchFields lists the text fields the team page searches over.
func TeamSearchFields(m TeamMember) []string {
	return []string{m.Name, m.Email, string(m.Role)}
}

var _ collection.Record = TeamMember{}
