package domain

import "time"

// Status represents the persisted state of a task or epic.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"

	// StatusBlocked is a derived display state: a todo task with at least
	// one dependency that is not done. It is never written to disk.
	StatusBlocked Status = "blocked"
)

// ValidStatuses contains the storable task status values.
var ValidStatuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// IsValid checks if the status is a storable status value.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Evidence is the structured completion payload recorded when a task is
// marked done: references to commits, tests, and external review artifacts.
// Any subset may be empty.
type Evidence struct {
	Commits []string `json:"commits,omitempty"`
	Tests   []string `json:"tests,omitempty"`
	Reviews []string `json:"reviews,omitempty"`
}

// Empty reports whether no evidence of any kind was supplied.
func (e Evidence) Empty() bool {
	return len(e.Commits) == 0 && len(e.Tests) == 0 && len(e.Reviews) == 0
}

// Task is an atomic unit of work within exactly one epic.
//
// DependsOn lists task identifiers that must be done before this task may
// start; they must belong to the same epic. Free-form description and
// acceptance-criteria text lives in the task's spec document, not here.
type Task struct {
	ID        string    `json:"id"`
	Epic      string    `json:"epic"`
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	Assignee  string    `json:"assignee,omitempty"`
	ClaimNote string    `json:"claim_note,omitempty"`
	DependsOn []string  `json:"depends_on,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Evidence  *Evidence `json:"evidence,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}

// NewTask creates a todo task under the given epic.
func NewTask(id, epic, title string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:        id,
		Epic:      epic,
		Title:     title,
		Status:    StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayStatus returns the status with the blocked view applied: a todo
// task with any dependency missing from done shows as blocked.
func (t *Task) DisplayStatus(done map[string]bool) Status {
	if t.Status != StatusTodo {
		return t.Status
	}
	for _, dep := range t.DependsOn {
		if !done[dep] {
			return StatusBlocked
		}
	}
	return StatusTodo
}

// UnmetDeps returns the dependencies of t not present in done, in
// declaration order.
func (t *Task) UnmetDeps(done map[string]bool) []string {
	var unmet []string
	for _, dep := range t.DependsOn {
		if !done[dep] {
			unmet = append(unmet, dep)
		}
	}
	return unmet
}
