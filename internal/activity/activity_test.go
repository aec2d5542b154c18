package activity_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/kingtech/dboptima/internal/activity"
)

func openStore(t *testing.T, path string) *activity.Store {
	t.Helper()
	s, err := activity.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t, ":memory:")
	ctx := context.Background()

	actions := []string{"alert_resolved", "report_deleted", "member_invited"}
	for i, action := range actions {
		err := s.Record(ctx, "admin@kingtech.com", action, "alert", fmt.Sprintf("%d", i+1), "message")
		if err != nil {
			t.Fatalf("record %s: %v", action, err)
		}
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Action != "member_invited" || entries[2].Action != "alert_resolved" {
		t.Errorf("order = [%s %s %s], want newest first",
			entries[0].Action, entries[1].Action, entries[2].Action)
	}
	if entries[0].Actor != "admin@kingtech.com" {
		t.Errorf("Actor = %q", entries[0].Actor)
	}
	if entries[0].At.IsZero() {
		t.Error("At not populated")
	}
}

func TestRecent_Limit(t *testing.T) {
	s := openStore(t, ":memory:")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, "a", "action", "alert", "", ""); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len = %d, want 2", len(entries))
	}
}

func TestRecent_Empty(t *testing.T) {
	s := openStore(t, ":memory:")
	entries, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}

func TestRecent_NonPositiveLimit(t *testing.T) {
	s := openStore(t, ":memory:")
	entries, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}

func TestFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")
	s := openStore(t, path)
	ctx := context.Background()

	if err := s.Record(ctx, "a", "index_scan", "recommendation", "", "scan complete"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening the same file sees the earlier entry.
	s2 := openStore(t, path)
	entries, err := s2.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "index_scan" {
		t.Errorf("entries = %+v, want the persisted entry", entries)
	}
}
