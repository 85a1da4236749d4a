package domain

import "time"

// Epic is a top-level unit of work containing an ordered set of tasks.
//
// Tasks holds the task identifiers in creation order. DependsOn lists other
// epics that must be done before this one; it is the only inter-epic
// relation. Only todo and done are ever persisted: in_progress is inferred
// from the tasks (see DisplayStatus).
type Epic struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Status    Status   `json:"status"`
	Tasks     []string `json:"tasks,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}

// NewEpic creates an empty open epic.
func NewEpic(id, title string) *Epic {
	now := time.Now().UTC()
	return &Epic{
		ID:        id,
		Title:     title,
		Status:    StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayStatus infers in_progress: an epic that is not done shows as
// in_progress as soon as any of its tasks has left todo.
func (e *Epic) DisplayStatus(tasks []*Task) Status {
	if e.Status == StatusDone {
		return StatusDone
	}
	for _, t := range tasks {
		if t.Status != StatusTodo {
			return StatusInProgress
		}
	}
	return StatusTodo
}

// OpenTasks returns the identifiers of tasks that are not yet done: the
// epic's listed tasks in epic order, then any records in tasks the epic
// does not list. An epic may only close when this is empty.
func (e *Epic) OpenTasks(tasks []*Task) []string {
	byID := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	listed := make(map[string]bool, len(e.Tasks))
	var open []string
	for _, id := range e.Tasks {
		listed[id] = true
		if t, ok := byID[id]; !ok || t.Status != StatusDone {
			open = append(open, id)
		}
	}
	// A merge that keeps one side of a conflicted epic record leaves the
	// other side's task files unlisted; they still belong to the epic.
	for _, t := range tasks {
		if !listed[t.ID] && t.Status != StatusDone {
			open = append(open, t.ID)
		}
	}
	return open
}
