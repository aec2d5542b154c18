package records

import (
	"gopkg.in/yaml.v3"

	"github.com/kingtech/dboptima/internal/collection"
)

// ReportType classifies what a report covers.
type ReportType string

const (
	ReportPerformance  ReportType = "performance"
	ReportOptimization ReportType = "optimization"
	ReportAudit        ReportType = "audit"
	ReportCompliance   ReportType = "compliance"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *ReportType) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "report type",
		ReportPerformance, ReportOptimization, ReportAudit, ReportCompliance)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ReportFormat is the output format of a report.
type ReportFormat string

const (
	FormatPDF  ReportFormat = "pdf"
	FormatCSV  ReportFormat = "csv"
	FormatJSON ReportFormat = "json"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *ReportFormat) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "report format", FormatPDF, FormatCSV, FormatJSON)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ReportStatus is a report's generation state.
type ReportStatus string

const (
	ReportReady      ReportStatus = "ready"
	ReportGenerating ReportStatus = "generating"
	ReportScheduled  ReportStatus = "scheduled"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ReportStatus) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "report status", ReportReady, ReportGenerating, ReportScheduled)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ReportRules: generating and scheduled reports become ready when their
// generation completes; ready is terminal.
var ReportRules = collection.Rules[ReportStatus]{
	ReportGenerating: {ReportReady},
	ReportScheduled:  {ReportGenerating, ReportReady},
}

// Report is one entry on the reports page. Size holds a display string such
// as "2.4 MB", or "--" while the report is not yet ready.
type Report struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Type      ReportType   `json:"type" yaml:"type"`
	Format    ReportFormat `json:"format" yaml:"format"`
	Status    ReportStatus `json:"status" yaml:"status"`
	CreatedAt string       `json:"createdAt" yaml:"created_at"`
	Size      string       `json:"size" yaml:"size"`
	Database  string       `json:"database,omitempty" yaml:"database,omitempty"`
}

// Key implements collection.Record.
func (r Report) Key() string { return r.ID }

// CurrentStatus implements collection.Statused.
func (r Report) CurrentStatus() ReportStatus { return r.Status }

// WithStatus implements collection.Statused.
func (r Report) WithStatus(s ReportStatus) Report {
	r.Status = s
	return r
}

// ReportSearchFields lists the text fields the reports page searches over.
func ReportSearchFields(r Report) []string {
	return []string{r.Name, r.Database}
}

var _ collection.Record = Report{}
