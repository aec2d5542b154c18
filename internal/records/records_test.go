package records_test

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kingtech/dboptima/internal/records"
)

func TestSeed(t *testing.T) {
	seed, err := records.Seed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"alerts", len(seed.Alerts), 6},
		{"databases", len(seed.Databases), 4},
		{"recommendations", len(seed.Recommendations), 4},
		{"reports", len(seed.Reports), 5},
		{"team", len(seed.Team), 5},
		{"performance", len(seed.Performance), 6},
		{"engine_share", len(seed.EngineShare), 4},
		{"slow_queries", len(seed.SlowQueries), 3},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("len(%s) = %d, want %d", c.name, c.got, c.want)
		}
	}

	a := seed.Alerts[0]
	if a.ID != "1" || a.Title != "High CPU Usage Detected" {
		t.Errorf("Alerts[0] = %+v", a)
	}
	if a.Severity != records.SeverityCritical || a.Category != records.CategoryPerformance {
		t.Errorf("Alerts[0] classification = %q/%q", a.Severity, a.Category)
	}
	if a.Status != records.AlertUnread {
		t.Errorf("Alerts[0].Status = %q, want unread", a.Status)
	}

	db := seed.Databases[2]
	if db.Name != "Cache Redis" || db.Engine != records.EngineRedis || db.Port != 6379 {
		t.Errorf("Databases[2] = %+v", db)
	}

	rec := seed.Recommendations[0]
	if rec.TableName != "orders" || len(rec.Columns) != 2 || rec.Impact != records.ImpactHigh {
		t.Errorf("Recommendations[0] = %+v", rec)
	}

	rep := seed.Reports[3]
	if rep.Type != records.ReportCompliance || rep.Status != records.ReportScheduled {
		t.Errorf("Reports[3] = %+v", rep)
	}

	m := seed.Team[3]
	if m.Role != records.RoleViewer || m.Status != records.MemberInvited {
		t.Errorf("Team[3] = %+v", m)
	}
}

func TestSeed_FreshSlicesPerCall(t *testing.T) {
	first, err := records.Seed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Alerts[0].Title = "mutated"

	second, err := records.Seed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Alerts[0].Title == "mutated" {
		t.Error("mutation of one Seed result leaked into another")
	}
}

func TestEnumUnmarshal_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		into func() any
		want string // substring the error must mention
	}{
		{
			"alert severity",
			`severity: catastrophic`,
			func() any { return &records.Alert{} },
			"catastrophic",
		},
		{
			"alert status",
			`status: snoozed`,
			func() any { return &records.Alert{} },
			"snoozed",
		},
		{
			"database engine",
			`engine: oracle`,
			func() any { return &records.DatabaseConnection{} },
			"oracle",
		},
		{
			"recommendation impact",
			`impact: extreme`,
			func() any { return &records.IndexRecommendation{} },
			"extreme",
		},
		{
			"report format",
			`format: xlsx`,
			func() any { return &records.Report{} },
			"xlsx",
		},
		{
			"member status",
			`status: suspended`,
			func() any { return &records.TeamMember{} },
			"suspended",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := yaml.Unmarshal([]byte(tt.yaml), tt.into())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestEnumUnmarshal_AcceptsValidValues(t *testing.T) {
	var a records.Alert
	if err := yaml.Unmarshal([]byte("severity: warning\nstatus: read"), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Severity != records.SeverityWarning || a.Status != records.AlertRead {
		t.Errorf("alert = %+v", a)
	}
}

func TestAlertRules(t *testing.T) {
	if !records.AlertRules.Allows(records.AlertUnread, records.AlertResolved) {
		t.Error("unread → resolved should be legal")
	}
	if records.AlertRules.Allows(records.AlertResolved, records.AlertUnread) {
		t.Error("resolved → unread should be illegal")
	}
	if !records.AlertRules.Terminal(records.AlertResolved) {
		t.Error("resolved should be terminal")
	}
}

func TestRecommendationRules(t *testing.T) {
	for _, terminal := range []records.RecommendationStatus{
		records.RecommendationApplied, records.RecommendationRejected,
	} {
		if !records.RecommendationRules.Terminal(terminal) {
			t.Errorf("%s should be terminal", terminal)
		}
	}
	if !records.RecommendationRules.Allows(records.RecommendationPending, records.RecommendationApplied) {
		t.Error("pending → applied should be legal")
	}
}

func TestReportRules(t *testing.T) {
	if !records.ReportRules.Allows(records.ReportGenerating, records.ReportReady) {
		t.Error("generating → ready should be legal")
	}
	if !records.ReportRules.Terminal(records.ReportReady) {
		t.Error("ready should be terminal")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []records.Role{records.RoleAdmin, records.RoleDBA, records.RoleDeveloper, records.RoleViewer} {
		if !records.ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	if records.ValidRole("Intern") {
		t.Error("ValidRole(Intern) = true")
	}
}
