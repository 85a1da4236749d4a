package tracker

import (
	"fmt"
	"time"

	"github.com/fntrack/fntrack/internal/domain"
)

// Start claims a task for the given actor and moves it to in_progress.
//
// A todo task with unmet dependencies is rejected unless force is set.
// Starting a task the actor already holds is an idempotent resume. A task
// held by someone else is rejected unless force is set, in which case the
// claim transfers and the note records the takeover. A done task can never
// be started, even with force.
func (t *Tracker) Start(taskID, actor string, force bool, note string) (*domain.Task, error) {
	task, err := t.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch task.Status {
	case domain.StatusDone:
		return nil, &domain.TransitionError{ID: task.ID, From: domain.StatusDone, To: domain.StatusInProgress,
			Description: "a done task cannot be restarted"}

	case domain.StatusInProgress:
		if task.Assignee == actor {
			return task, nil
		}
		if !force {
			return nil, &domain.AlreadyClaimedError{TaskID: task.ID, ClaimedBy: task.Assignee}
		}
		previous := task.Assignee
		task.ClaimNote = fmt.Sprintf("taken over from %s by %s at %s", previous, actor, now.Format(time.RFC3339))
		if note != "" {
			task.ClaimNote += ": " + note
		}
		task.Assignee = actor
		task.ClaimedAt = &now
		task.UpdatedAt = now
		if err := t.store.UpdateTask(task); err != nil {
			return nil, err
		}
		t.logChange(task.ID, "takeover", actor, "assignee", previous, actor)
		return task, nil

	case domain.StatusTodo:
		done, err := t.doneSet(task.Epic)
		if err != nil {
			return nil, err
		}
		if unmet := task.UnmetDeps(done); len(unmet) > 0 {
			if !force {
				return nil, &domain.DependencyNotMetError{TaskID: task.ID, Unmet: unmet}
			}
			task.ClaimNote = fmt.Sprintf("started by %s with unmet dependencies %v at %s", actor, unmet, now.Format(time.RFC3339))
		}
		if note != "" {
			if task.ClaimNote != "" {
				task.ClaimNote += ": " + note
			} else {
				task.ClaimNote = note
			}
		}
		task.Status = domain.StatusInProgress
		task.Assignee = actor
		task.ClaimedAt = &now
		task.UpdatedAt = now
		if err := t.store.UpdateTask(task); err != nil {
			return nil, err
		}
		t.logChange(task.ID, "claim", actor, "status", string(domain.StatusTodo), string(domain.StatusInProgress))
		return task, nil

	default:
		return nil, &domain.TransitionError{ID: task.ID, From: task.Status, To: domain.StatusInProgress,
			Description: "unknown status"}
	}
}
