package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/tracker"
	"github.com/fntrack/fntrack/internal/validate"
)

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:        "fn-1.2",
		Epic:      "fn-1",
		Title:     "Wire the parser",
		Status:    domain.StatusTodo,
		DependsOn: []string{"fn-1.1"},
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestPrintTask_TableFormat(t *testing.T) {
	var buf bytes.Buffer
	detail := &tracker.TaskDetail{Task: sampleTask(), Status: domain.StatusBlocked}

	printTask(&buf, detail, false)

	output := buf.String()
	if !strings.Contains(output, "fn-1.2") {
		t.Error("output should contain task ID")
	}
	if !strings.Contains(output, "Wire the parser") {
		t.Error("output should contain task title")
	}
	if !strings.Contains(output, "blocked") {
		t.Error("output should contain the display status")
	}
	if !strings.Contains(output, "fn-1.1") {
		t.Error("output should contain the dependency")
	}
}

func TestPrintTask_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	detail := &tracker.TaskDetail{Task: sampleTask(), Status: domain.StatusBlocked}

	printTask(&buf, detail, true)

	var parsed struct {
		Success bool `json:"success"`
		Task    struct {
			Task   *domain.Task  `json:"task"`
			Status domain.Status `json:"status"`
		} `json:"task"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if !parsed.Success {
		t.Error("success envelope should be true")
	}
	if parsed.Task.Task.ID != "fn-1.2" {
		t.Errorf("parsed ID = %s, expected fn-1.2", parsed.Task.Task.ID)
	}
	if parsed.Task.Status != domain.StatusBlocked {
		t.Errorf("parsed status = %s, expected blocked", parsed.Task.Status)
	}
}

func TestPrintTaskList_Empty(t *testing.T) {
	var buf bytes.Buffer
	printTaskList(&buf, nil, false)

	if !strings.Contains(buf.String(), "No tasks found") {
		t.Errorf("expected empty list message, got %q", buf.String())
	}
}

func TestPrintEpic_ShowsTasks(t *testing.T) {
	var buf bytes.Buffer
	epic := &domain.Epic{
		ID:        "fn-1",
		Title:     "Parser rework",
		Status:    domain.StatusTodo,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	detail := &tracker.EpicDetail{
		Epic:   epic,
		Status: domain.StatusInProgress,
		Tasks:  []*domain.Task{sampleTask()},
	}

	printEpic(&buf, detail, false)

	output := buf.String()
	if !strings.Contains(output, "fn-1") || !strings.Contains(output, "Parser rework") {
		t.Error("output should contain the epic header")
	}
	if !strings.Contains(output, "in_progress") {
		t.Error("output should show the inferred status")
	}
	if !strings.Contains(output, "fn-1.2") {
		t.Error("output should list the tasks")
	}
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	result := &validate.Result{
		Valid:  false,
		Errors: []validate.Issue{{RecordID: "fn-1.1", Check: "doc", Message: "specification document is missing"}},
		Counts: validate.Counts{Epics: 1, Tasks: 2},
	}

	printValidation(&buf, result, false)

	output := buf.String()
	if !strings.Contains(output, "1 epics, 2 tasks") {
		t.Error("output should contain the counts")
	}
	if !strings.Contains(output, "error: fn-1.1") {
		t.Error("output should list the error")
	}
	if !strings.Contains(output, "1 problem(s) found") {
		t.Error("output should state the problem count")
	}
}

func TestPrintError_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"), true)

	var parsed struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if parsed.Success {
		t.Error("success should be false")
	}
	if parsed.Error != "boom" {
		t.Errorf("error = %q, expected 'boom'", parsed.Error)
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	field := "status"
	oldVal := "todo"
	newVal := "in_progress"
	entries := []*domain.AuditEntry{{
		RecordID:  "fn-1.1",
		Action:    "claim",
		Field:     &field,
		OldValue:  &oldVal,
		NewValue:  &newVal,
		ChangedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		ChangedBy: "alice",
	}}

	printHistory(&buf, entries, false)

	output := buf.String()
	for _, want := range []string{"claim", "status", "todo", "in_progress", "alice"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 40)
	if len(got) != 40 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate long = %q (len %d)", got, len(got))
	}
}
