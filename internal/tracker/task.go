package tracker

import (
	"fmt"
	"time"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/graph"
	"github.com/fntrack/fntrack/pkg/fnid"
)

// CreateTask allocates the next sequence number under the epic, validates
// the declared dependencies (existence, same epic, no cycles), persists the
// record, and appends it to the epic's ordered task list.
func (t *Tracker) CreateTask(epicID, title string, deps []string, actor string) (*domain.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("task title cannot be empty")
	}
	epic, err := t.store.GetEpic(epicID)
	if err != nil {
		return nil, err
	}
	if epic.Status == domain.StatusDone {
		return nil, fmt.Errorf("epic %s is done and accepts no new tasks: %w", epic.ID, domain.ErrConflict)
	}
	epicNum, err := fnid.ParseEpic(epic.ID)
	if err != nil {
		return nil, err
	}

	siblings, err := t.store.ListTasks(epic.ID)
	if err != nil {
		return nil, err
	}
	siblingIDs := make(map[string]bool, len(siblings))
	for _, s := range siblings {
		siblingIDs[s.ID] = true
	}

	seq, err := t.store.NextTaskSeq(epic.ID)
	if err != nil {
		return nil, err
	}
	id := fnid.TaskID{Epic: epicNum, Seq: seq}.String()

	// Dependencies may only point at already-existing sibling tasks, so a
	// new task can never close a cycle; the checks still run in full to
	// keep the error taxonomy exact.
	for _, dep := range deps {
		depID, err := fnid.ParseTask(dep)
		if err != nil {
			return nil, &domain.InvalidFormatError{Input: dep, Reason: err.Error()}
		}
		if !fnid.SameEpic(depID.Epic, epicNum) {
			return nil, &domain.CrossScopeError{TaskID: id, DepID: dep}
		}
		if !siblingIDs[dep] {
			return nil, &domain.NotFoundError{Kind: "dependency", ID: dep}
		}
	}

	edges := make(map[string][]string, len(siblings)+1)
	for _, s := range siblings {
		edges[s.ID] = s.DependsOn
	}
	edges[id] = deps
	if cycle := graph.New(edges).DetectCycle(); cycle != nil {
		return nil, &domain.CycleError{Scope: "tasks", Path: cycle}
	}

	task := domain.NewTask(id, epic.ID, title)
	task.DependsOn = deps
	if err := t.store.CreateTask(task, taskDocTemplate(id, title)); err != nil {
		return nil, err
	}

	epic.Tasks = append(epic.Tasks, id)
	epic.UpdatedAt = time.Now().UTC()
	if err := t.store.UpdateEpic(epic); err != nil {
		return nil, err
	}

	t.logChange(id, "create", actor, "", "", title)
	return task, nil
}

// Complete transitions a task from in_progress to done. The requesting
// actor must hold the claim, and a non-empty summary is required; the
// evidence payload is recorded as given (any subset may be empty). Forcing
// bypasses the preconditions but stamps a forced-completion marker.
func (t *Tracker) Complete(taskID, actor, summary string, evidence domain.Evidence, force bool) (*domain.Task, error) {
	task, err := t.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != domain.StatusInProgress && !force {
		return nil, &domain.TransitionError{ID: task.ID, From: task.Status, To: domain.StatusDone,
			Description: "task must be started first"}
	}
	if task.Status == domain.StatusInProgress && task.Assignee != "" && task.Assignee != actor && !force {
		return nil, &domain.AlreadyClaimedError{TaskID: task.ID, ClaimedBy: task.Assignee}
	}
	if summary == "" && !force {
		return nil, fmt.Errorf("completion requires a non-empty summary")
	}

	now := time.Now().UTC()
	oldStatus := task.Status
	task.Status = domain.StatusDone
	task.Summary = summary
	task.Evidence = &evidence
	task.DoneAt = &now
	task.UpdatedAt = now
	if force {
		task.ClaimNote = fmt.Sprintf("completion forced by %s at %s", actor, now.Format(time.RFC3339))
	}

	if err := t.store.UpdateTask(task); err != nil {
		return nil, err
	}

	action := "done"
	if force {
		action = "force_done"
	}
	t.logChange(task.ID, action, actor, "status", string(oldStatus), string(domain.StatusDone))
	return task, nil
}

// Release returns an in_progress task to todo and clears the claim. Only
// the claiming actor may release unless force is set.
func (t *Tracker) Release(taskID, actor string, force bool) (*domain.Task, error) {
	task, err := t.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusInProgress {
		return nil, &domain.TransitionError{ID: task.ID, From: task.Status, To: domain.StatusTodo,
			Description: "only an in_progress task can be released"}
	}
	if !force && task.Assignee != "" && task.Assignee != actor {
		return nil, &domain.AlreadyClaimedError{TaskID: task.ID, ClaimedBy: task.Assignee}
	}

	now := time.Now().UTC()
	task.Status = domain.StatusTodo
	task.Assignee = ""
	task.ClaimedAt = nil
	task.UpdatedAt = now

	if err := t.store.UpdateTask(task); err != nil {
		return nil, err
	}
	t.logChange(task.ID, "release", actor, "status", string(domain.StatusInProgress), string(domain.StatusTodo))
	return task, nil
}

// TaskDetail is a task with its derived display status.
type TaskDetail struct {
	Task   *domain.Task  `json:"task"`
	Status domain.Status `json:"status"`
}

// ShowTask loads a task and computes the blocked view against its siblings.
func (t *Tracker) ShowTask(id string) (*TaskDetail, error) {
	task, err := t.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	done, err := t.doneSet(task.Epic)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: task, Status: task.DisplayStatus(done)}, nil
}

// doneSet returns the identifiers of done tasks within one epic.
func (t *Tracker) doneSet(epicID string) (map[string]bool, error) {
	tasks, err := t.store.ListTasks(epicID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if task.Status == domain.StatusDone {
			done[task.ID] = true
		}
	}
	return done, nil
}

func taskDocTemplate(id, title string) string {
	return fmt.Sprintf(`# %s: %s

## Description

Describe the work.

## Acceptance Criteria

How we know this task is done.
`, id, title)
}
