package records

import (
	"gopkg.in/yaml.v3"

	"github.com/kingtech/dboptima/internal/collection"
)

// Severity classifies how urgent an alert is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "alert severity", SeverityCritical, SeverityWarning, SeverityInfo)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AlertCategory groups alerts by the monitored concern they relate to.
type AlertCategory string

const (
	CategoryPerformance  AlertCategory = "performance"
	CategoryAvailability AlertCategory = "availability"
	CategorySecurity     AlertCategory = "security"
	CategoryCapacity     AlertCategory = "capacity"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *AlertCategory) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "alert category",
		CategoryPerformance, CategoryAvailability, CategorySecurity, CategoryCapacity)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// AlertStatus is an alert's read/resolution state. Resolved is terminal.
type AlertStatus string

const (
	AlertUnread   AlertStatus = "unread"
	AlertRead     AlertStatus = "read"
	AlertResolved AlertStatus = "resolved"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *AlertStatus) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "alert status", AlertUnread, AlertRead, AlertResolved)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AlertRules is the closed transition set for alert statuses: unread may
// become read or resolved, read may become resolved, resolved is terminal.
var AlertRules = collection.Rules[AlertStatus]{
	AlertUnread: {AlertRead, AlertResolved},
	AlertRead:   {AlertResolved},
}

// Alert is one entry on the alerts page.
type Alert struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Severity    Severity      `json:"severity" yaml:"severity"`
	Category    AlertCategory `json:"category" yaml:"category"`
	Status      AlertStatus   `json:"status" yaml:"status"`
	Timestamp   string        `json:"timestamp" yaml:"timestamp"`
	// Database is the display label of the source database, if any.
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// Key implements collection.Record.
func (a Alert) Key() string { return a.ID }

// CurrentStatus implements collection.Statused.
func (a Alert) CurrentStatus() AlertStatus { return a.Status }

// WithStatus implements collection.Statused.
func (a Alert) WithStatus(s AlertStatus) Alert {
	a.Status = s
	return a
}

// AlertSearchFields lists the text fields the alerts page searches over.
func AlertSearchFields(a Alert) []string {
	return []string{a.Title, a.Description, a.Database}
}
