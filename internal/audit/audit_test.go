package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fntrack/fntrack/internal/domain"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func strPtr(s string) *string { return &s }

func TestAppendAndListByRecord(t *testing.T) {
	log := openTestLog(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []*domain.AuditEntry{
		{RecordID: "fn-1.1", Action: "claim", Field: strPtr("status"),
			OldValue: strPtr("todo"), NewValue: strPtr("in_progress"),
			ChangedAt: base, ChangedBy: "alice"},
		{RecordID: "fn-1.1", Action: "done", Field: strPtr("status"),
			OldValue: strPtr("in_progress"), NewValue: strPtr("done"),
			ChangedAt: base.Add(time.Hour), ChangedBy: "alice"},
		{RecordID: "fn-1.2", Action: "claim",
			ChangedAt: base.Add(2 * time.Hour), ChangedBy: "bob"},
	}
	for _, e := range entries {
		if err := log.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := log.ListByRecord("fn-1.1")
	if err != nil {
		t.Fatalf("ListByRecord failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Newest first.
	if got[0].Action != "done" || got[1].Action != "claim" {
		t.Errorf("unexpected order: %s, %s", got[0].Action, got[1].Action)
	}
	if got[0].ChangedBy != "alice" {
		t.Errorf("ChangedBy = %q, want alice", got[0].ChangedBy)
	}
	if got[1].OldValue == nil || *got[1].OldValue != "todo" {
		t.Errorf("OldValue not round-tripped: %v", got[1].OldValue)
	}
}

func TestListByRecord_Empty(t *testing.T) {
	log := openTestLog(t)
	got, err := log.ListByRecord("fn-9.9")
	if err != nil {
		t.Fatalf("ListByRecord failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestOpen_Reopen_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := log.Append(&domain.AuditEntry{
		RecordID: "fn-1", Action: "create",
		ChangedAt: time.Now().UTC(), ChangedBy: "alice",
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	log.Close()

	log, err = Open(path)
	if err != nil {
		t.Fatalf("re-Open failed: %v", err)
	}
	defer log.Close()

	got, err := log.ListByRecord("fn-1")
	if err != nil || len(got) != 1 {
		t.Errorf("entries lost across reopen: %v, %v", got, err)
	}
}
