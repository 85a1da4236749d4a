package fnclient

import "time"

// Status is a task or epic status as reported by the server. Blocked is a
// derived view; it is never stored.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
)

// Epic is an epic record.
type Epic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Tasks     []string   `json:"tasks,omitempty"`
	DependsOn []string   `json:"depends_on,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}

// Evidence links a completed task to the work that closed it.
type Evidence struct {
	Commits []string `json:"commits,omitempty"`
	Tests   []string `json:"tests,omitempty"`
	Reviews []string `json:"reviews,omitempty"`
}

// Task is a task record.
type Task struct {
	ID        string     `json:"id"`
	Epic      string     `json:"epic"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Assignee  string     `json:"assignee,omitempty"`
	ClaimNote string     `json:"claim_note,omitempty"`
	DependsOn []string   `json:"depends_on,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	Evidence  *Evidence  `json:"evidence,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}

// EpicDetail is an epic with its inferred display status and task records.
type EpicDetail struct {
	Epic   *Epic   `json:"epic"`
	Status Status  `json:"status"`
	Tasks  []*Task `json:"tasks,omitempty"`
}

// TaskDetail is a task with its derived display status.
type TaskDetail struct {
	Task   *Task  `json:"task"`
	Status Status `json:"status"`
}

// AuditEntry is one change recorded in the local history.
type AuditEntry struct {
	ID        int64     `json:"id"`
	RecordID  string    `json:"record_id"`
	Action    string    `json:"action"`
	Field     *string   `json:"field,omitempty"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}

// ValidationIssue is one finding from the validator.
type ValidationIssue struct {
	RecordID string `json:"record_id"`
	Check    string `json:"check"`
	Message  string `json:"message"`
}

// ValidationResult is the outcome of a validation pass.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
	Counts   struct {
		Epics int `json:"epics"`
		Tasks int `json:"tasks"`
	} `json:"counts"`
}
