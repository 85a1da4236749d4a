package tracker

import (
	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/graph"
)

// Ready returns the tasks in one epic that can be started now: status todo
// with every dependency done. Order follows the task sequence numbers.
func (t *Tracker) Ready(epicID string) ([]*domain.Task, error) {
	epic, err := t.store.GetEpic(epicID)
	if err != nil {
		return nil, err
	}
	tasks, err := t.store.ListTasks(epic.ID)
	if err != nil {
		return nil, err
	}
	return readyOf(tasks), nil
}

// ReadyAll returns ready tasks across every epic whose own dependencies are
// done. Tasks in an epic that still waits on another epic are held back even
// when their intra-epic dependencies are met.
func (t *Tracker) ReadyAll() ([]*domain.Task, error) {
	epics, err := t.store.ListEpics()
	if err != nil {
		return nil, err
	}
	epicDone := make(map[string]bool, len(epics))
	for _, e := range epics {
		if e.Status == domain.StatusDone {
			epicDone[e.ID] = true
		}
	}

	var ready []*domain.Task
	for _, e := range epics {
		if e.Status == domain.StatusDone {
			continue
		}
		blocked := false
		for _, dep := range e.DependsOn {
			if !epicDone[dep] {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		tasks, err := t.store.ListTasks(e.ID)
		if err != nil {
			return nil, err
		}
		ready = append(ready, readyOf(tasks)...)
	}
	return ready, nil
}

// readyOf filters one epic's task list down to the startable ones, keeping
// the incoming order.
func readyOf(tasks []*domain.Task) []*domain.Task {
	deps := make(map[string][]string, len(tasks))
	done := make(map[string]bool)
	inProgress := make(map[string]bool)
	for _, task := range tasks {
		deps[task.ID] = task.DependsOn
		switch task.Status {
		case domain.StatusDone:
			done[task.ID] = true
		case domain.StatusInProgress:
			inProgress[task.ID] = true
		}
	}

	readySet := make(map[string]bool)
	for _, id := range graph.New(deps).ReadySet(done, inProgress) {
		readySet[id] = true
	}
	// ReadySet returns sorted identifiers; restore the sequence order.
	ready := make([]*domain.Task, 0, len(readySet))
	for _, task := range tasks {
		if readySet[task.ID] {
			ready = append(ready, task)
		}
	}
	return ready
}
