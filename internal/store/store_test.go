package store_test

import (
	"testing"

	"github.com/kingtech/dboptima/internal/records"
	"github.com/kingtech/dboptima/internal/store"
)

// seed returns a fresh copy of the embedded seed data for each test.
func seed(t *testing.T) *records.SeedData {
	t.Helper()
	data, err := records.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return data
}

func TestAlerts_Stats(t *testing.T) {
	s := store.NewAlerts(seed(t).Alerts)
	stats := s.Stats()

	if stats.Total != 6 {
		t.Errorf("Total = %d, want 6", stats.Total)
	}
	if stats.Unread != 3 {
		t.Errorf("Unread = %d, want 3", stats.Unread)
	}
	// Critical counts unresolved critical alerts only.
	if stats.Critical != 2 {
		t.Errorf("Critical = %d, want 2", stats.Critical)
	}
	if stats.Resolved != 1 {
		t.Errorf("Resolved = %d, want 1", stats.Resolved)
	}
	if stats.ByCategory[records.CategoryPerformance] != 3 {
		t.Errorf("ByCategory[performance] = %d, want 3", stats.ByCategory[records.CategoryPerformance])
	}
}

func TestAlerts_MarkReadAndResolve(t *testing.T) {
	s := store.NewAlerts(seed(t).Alerts)

	if !s.MarkRead("1") {
		t.Fatal("MarkRead(1) should change an unread alert")
	}
	if s.MarkRead("1") {
		t.Error("second MarkRead(1) reported a change")
	}
	if !s.Resolve("1") {
		t.Fatal("Resolve(1) should change a read alert")
	}
	if s.Resolve("1") {
		t.Error("Resolve on a resolved alert reported a change")
	}
	// Alert 4 is already resolved in the seed; resolved is terminal.
	if s.MarkRead("4") {
		t.Error("MarkRead on a resolved alert reported a change")
	}
}

func TestAlerts_MarkAllRead(t *testing.T) {
	s := store.NewAlerts(seed(t).Alerts)
	if n := s.MarkAllRead(); n != 3 {
		t.Fatalf("MarkAllRead = %d, want 3", n)
	}
	if stats := s.Stats(); stats.Unread != 0 {
		t.Errorf("Unread = %d after MarkAllRead, want 0", stats.Unread)
	}
	if n := s.MarkAllRead(); n != 0 {
		t.Errorf("second MarkAllRead = %d, want 0", n)
	}
}

func TestAlerts_Delete(t *testing.T) {
	s := store.NewAlerts(seed(t).Alerts)
	if !s.Delete("2") {
		t.Fatal("Delete(2) should remove")
	}
	if s.Delete("2") {
		t.Error("second Delete(2) reported a removal")
	}
	if stats := s.Stats(); stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
}

func TestAlerts_ListSearch(t *testing.T) {
	s := store.NewAlerts(seed(t).Alerts)

	if got := s.List(""); len(got) != 6 {
		t.Errorf("List(\"\") = %d alerts, want 6", len(got))
	}
	got := s.List("postgresql")
	if len(got) != 3 {
		t.Fatalf("List(postgresql) = %d alerts, want 3", len(got))
	}
	for _, a := range got {
		if a.Database != "Production PostgreSQL" {
			t.Errorf("unexpected match %+v", a)
		}
	}
}

func TestDatabases_Stats(t *testing.T) {
	s := store.NewDatabases(seed(t).Databases)
	stats := s.Stats()

	if stats.Total != 4 || stats.Connected != 3 {
		t.Errorf("Total/Connected = %d/%d, want 4/3", stats.Total, stats.Connected)
	}
	if want := 1250 + 890 + 5600; stats.TotalQPS != want {
		t.Errorf("TotalQPS = %d, want %d", stats.TotalQPS, want)
	}
	if want := (23 + 45 + 2) / 3; stats.AvgLatency != want {
		t.Errorf("AvgLatency = %d, want %d", stats.AvgLatency, want)
	}
}

func TestDatabases_Delete(t *testing.T) {
	s := store.NewDatabases(seed(t).Databases)

	// Removing the errored MongoDB connection leaves the connected stats
	// untouched.
	before := s.Stats()
	if !s.Delete("4") {
		t.Fatal("Delete(4) should remove")
	}
	after := s.Stats()
	if after.Total != before.Total-1 {
		t.Errorf("Total = %d, want %d", after.Total, before.Total-1)
	}
	if after.Connected != before.Connected || after.TotalQPS != before.TotalQPS {
		t.Errorf("connected stats changed: %+v vs %+v", after, before)
	}

	if _, ok := s.Get("4"); ok {
		t.Error("Get(4) still resolves after delete")
	}
}

func TestDatabases_StatsNoConnected(t *testing.T) {
	s := store.NewDatabases([]records.DatabaseConnection{
		{ID: "1", Name: "Down", Status: records.ConnectionDisconnected},
	})
	stats := s.Stats()
	if stats.AvgLatency != 0 || stats.TotalQPS != 0 {
		t.Errorf("stats = %+v, want zero aggregates with no connected databases", stats)
	}
}

func TestIndexes_ApplyReject(t *testing.T) {
	s := store.NewIndexes(seed(t).Recommendations)

	if !s.Apply("1") {
		t.Fatal("Apply(1) should change a pending recommendation")
	}
	if s.Reject("1") {
		t.Error("Reject after Apply reported a change")
	}
	if s.Apply("2") {
		t.Error("Apply on an already-applied recommendation reported a change")
	}
	if !s.Reject("3") {
		t.Error("Reject(3) should change a pending recommendation")
	}

	stats := s.Stats()
	if stats.Pending != 0 {
		t.Errorf("Pending = %d, want 0", stats.Pending)
	}
	if stats.Applied != 2 {
		t.Errorf("Applied = %d, want 2", stats.Applied)
	}
}

func TestIndexes_Stats(t *testing.T) {
	s := store.NewIndexes(seed(t).Recommendations)
	stats := s.Stats()

	if stats.Total != 4 || stats.Pending != 2 || stats.Applied != 1 {
		t.Errorf("stats = %+v, want Total 4 Pending 2 Applied 1", stats)
	}
	// Mean of the two pending recommendations: (75 + 60) / 2.
	if stats.AvgImprovement != 67 {
		t.Errorf("AvgImprovement = %d, want 67", stats.AvgImprovement)
	}
}

func TestIndexes_Add(t *testing.T) {
	s := store.NewIndexes(seed(t).Recommendations)
	n := s.Add(
		records.IndexRecommendation{ID: "n1", TableName: "sessions", Status: records.RecommendationPending},
		records.IndexRecommendation{ID: "n2", TableName: "invoices", Status: records.RecommendationPending},
	)
	if n != 6 {
		t.Errorf("Add returned size %d, want 6", n)
	}
	if got := s.List("sessions"); len(got) != 1 || got[0].ID != "n1" {
		t.Errorf("List(sessions) = %+v", got)
	}
}

func TestIndexes_SearchByColumn(t *testing.T) {
	s := store.NewIndexes(seed(t).Recommendations)
	got := s.List("customer_id")
	if len(got) != 1 || got[0].TableName != "orders" {
		t.Errorf("List(customer_id) = %+v, want the orders recommendation", got)
	}
}

func TestReports_GenerateLifecycle(t *testing.T) {
	s := store.NewReports(seed(t).Reports)
	s.Add(records.Report{
		ID:        "new",
		Name:      "Weekly Health Check",
		Type:      records.ReportPerformance,
		Format:    records.FormatPDF,
		Status:    records.ReportGenerating,
		CreatedAt: "In progress",
		Size:      "--",
	})

	if !s.Complete("new", "1.8 MB") {
		t.Fatal("Complete should flip a generating report")
	}
	r, ok := s.Get("new")
	if !ok {
		t.Fatal("report disappeared")
	}
	if r.Status != records.ReportReady || r.Size != "1.8 MB" || r.CreatedAt != "Just now" {
		t.Errorf("report = %+v", r)
	}
	if s.Complete("new", "2 MB") {
		t.Error("Complete on a ready report reported a change")
	}
}

func TestReports_CompleteReadySeedNoOp(t *testing.T) {
	s := store.NewReports(seed(t).Reports)
	if s.Complete("1", "9 MB") {
		t.Error("Complete on an already-ready seed report reported a change")
	}
	r, _ := s.Get("1")
	if r.Size != "2.4 MB" {
		t.Errorf("Size = %q, want untouched 2.4 MB", r.Size)
	}
}

func TestReports_Stats(t *testing.T) {
	s := store.NewReports(seed(t).Reports)
	stats := s.Stats()
	if stats.Total != 5 || stats.Ready != 3 || stats.Generating != 1 || stats.Scheduled != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestReports_Delete(t *testing.T) {
	s := store.NewReports(seed(t).Reports)
	if !s.Delete("5") {
		t.Fatal("Delete(5) should remove")
	}
	if stats := s.Stats(); stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
}

func TestTeam_Invite(t *testing.T) {
	s := store.NewTeam(seed(t).Team)

	// The requested role is honored but the status always starts invited.
	m := s.Invite("newbie@kingtech.com", records.RoleAdmin)
	if m.Status != records.MemberInvited {
		t.Errorf("Status = %q, want invited", m.Status)
	}
	if m.Role != records.RoleAdmin {
		t.Errorf("Role = %q, want Admin", m.Role)
	}
	if m.Name != "newbie" {
		t.Errorf("Name = %q, want local part of email", m.Name)
	}
	if m.LastActive != "Not yet" {
		t.Errorf("LastActive = %q", m.LastActive)
	}
	if m.ID == "" {
		t.Error("ID not assigned")
	}

	stats := s.Stats()
	if stats.Total != 6 || stats.Invited != 2 {
		t.Errorf("stats = %+v, want Total 6 Invited 2", stats)
	}
}

func TestTeam_ChangeRole(t *testing.T) {
	s := store.NewTeam(seed(t).Team)
	if !s.ChangeRole("3", records.RoleDBA) {
		t.Fatal("ChangeRole(3) should match")
	}
	if s.ChangeRole("99", records.RoleDBA) {
		t.Error("ChangeRole(99) reported a match")
	}

	members := s.List("")
	if members[2].ID != "3" || members[2].Role != records.RoleDBA {
		t.Errorf("member 3 = %+v, want role DBA preserved in position", members[2])
	}
}

func TestTeam_Remove(t *testing.T) {
	s := store.NewTeam(seed(t).Team)
	if !s.Remove("5") {
		t.Fatal("Remove(5) should remove")
	}
	if s.Remove("5") {
		t.Error("second Remove(5) reported a removal")
	}
	if stats := s.Stats(); stats.Total != 4 || stats.Inactive != 0 {
		t.Errorf("stats = %+v, want Total 4 Inactive 0", stats)
	}
}

func TestTeam_SearchByRole(t *testing.T) {
	s := store.NewTeam(seed(t).Team)
	got := s.List("developer")
	if len(got) != 2 {
		t.Fatalf("List(developer) = %d members, want 2", len(got))
	}
	for _, m := range got {
		if m.Role != records.RoleDeveloper {
			t.Errorf("unexpected match %+v", m)
		}
	}
}

func TestStores_ListReturnsCopies(t *testing.T) {
	s := store.NewAlerts(seed(t).Alerts)
	first := s.List("")
	first[0].Title = "mutated"
	second := s.List("")
	if second[0].Title == "mutated" {
		t.Error("List result aliases internal state")
	}
}
