package store

import (
	"testing"

	"github.com/fntrack/fntrack/internal/domain"
)

func TestNextEpicNum(t *testing.T) {
	s := newTestStore(t)

	n, err := s.NextEpicNum()
	if err != nil || n != 1 {
		t.Fatalf("NextEpicNum on empty store = %d, %v; want 1", n, err)
	}

	// Pure over the snapshot: calling twice without mutation is stable.
	again, _ := s.NextEpicNum()
	if again != n {
		t.Errorf("NextEpicNum not deterministic: %d then %d", n, again)
	}

	if err := s.CreateEpic(domain.NewEpic("fn-1", "a"), ""); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateEpic(domain.NewEpic("fn-7-gap", "b"), ""); err != nil {
		t.Fatal(err)
	}

	// max+1, not count+1; slugs do not affect ordering.
	n, err = s.NextEpicNum()
	if err != nil || n != 8 {
		t.Errorf("NextEpicNum = %d, %v; want 8", n, err)
	}
}

func TestNextTaskSeq(t *testing.T) {
	s := newTestStore(t)

	n, err := s.NextTaskSeq("fn-1")
	if err != nil || n != 1 {
		t.Fatalf("NextTaskSeq on empty epic = %d, %v; want 1", n, err)
	}

	for _, id := range []string{"fn-1.1", "fn-1.3", "fn-2.5"} {
		epic := "fn-1"
		if id == "fn-2.5" {
			epic = "fn-2"
		}
		if err := s.CreateTask(domain.NewTask(id, epic, "t"), ""); err != nil {
			t.Fatal(err)
		}
	}

	n, err = s.NextTaskSeq("fn-1")
	if err != nil || n != 4 {
		t.Errorf("NextTaskSeq(fn-1) = %d, %v; want 4", n, err)
	}

	// Scoped per epic: fn-2's tasks do not leak into fn-1's sequence.
	n, err = s.NextTaskSeq("fn-3")
	if err != nil || n != 1 {
		t.Errorf("NextTaskSeq(fn-3) = %d, %v; want 1", n, err)
	}
}

func TestNextTaskSeq_InvalidEpic(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.NextTaskSeq("not-an-id"); err == nil {
		t.Error("expected error for malformed epic id")
	}
}

func TestAllocation_AfterCreateAdvances(t *testing.T) {
	s := newTestStore(t)

	n, _ := s.NextEpicNum()
	if err := s.CreateEpic(domain.NewEpic("fn-1", "a"), ""); err != nil {
		t.Fatal(err)
	}
	next, _ := s.NextEpicNum()
	if next != n+1 {
		t.Errorf("after creating fn-%d, NextEpicNum = %d, want %d", n, next, n+1)
	}
}
