package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/pkg/fnid"
)

// CreateTask persists a new task record and its document.
func (s *Store) CreateTask(task *domain.Task, doc string) error {
	if _, err := fnid.ParseTask(task.ID); err != nil {
		return &domain.InvalidFormatError{Input: task.ID, Reason: err.Error()}
	}
	path := s.taskPath(task.ID)
	if err := createExclusive(path); err != nil {
		if os.IsExist(err) {
			return &domain.ConflictError{Kind: "task", ID: task.ID}
		}
		return err
	}
	if err := atomicWriteJSON(path, task); err != nil {
		os.Remove(path)
		return err
	}
	return atomicWriteText(s.taskDocPath(task.ID), doc)
}

// GetTask reads one task record, matching leniently on epic number and
// sequence when the slug differs.
func (s *Store) GetTask(id string) (*domain.Task, error) {
	want, err := fnid.ParseTask(id)
	if err != nil {
		return nil, &domain.InvalidFormatError{Input: id, Reason: err.Error()}
	}

	var task domain.Task
	if err := readJSON(s.taskPath(id), &task); err == nil {
		return &task, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	ids, err := s.taskIDs()
	if err != nil {
		return nil, err
	}
	for _, candidate := range ids {
		if fnid.SameEpic(candidate.Epic, want.Epic) && candidate.Seq == want.Seq {
			if err := readJSON(s.taskPath(candidate.String()), &task); err != nil {
				return nil, err
			}
			return &task, nil
		}
	}
	return nil, &domain.NotFoundError{Kind: "task", ID: id}
}

// UpdateTask rewrites an existing task record.
func (s *Store) UpdateTask(task *domain.Task) error {
	path := s.taskPath(task.ID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Kind: "task", ID: task.ID}
		}
		return err
	}
	return atomicWriteJSON(path, task)
}

// ListTasks returns the tasks of one epic, ordered by sequence number.
// The epic identifier is matched on number, ignoring slugs.
func (s *Store) ListTasks(epicID string) ([]*domain.Task, error) {
	epic, err := fnid.ParseEpic(epicID)
	if err != nil {
		return nil, &domain.InvalidFormatError{Input: epicID, Reason: err.Error()}
	}
	all, err := s.taskIDs()
	if err != nil {
		return nil, err
	}

	var ids []fnid.TaskID
	for _, id := range all {
		if fnid.SameEpic(id.Epic, epic) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Seq < ids[j].Seq })

	return s.readTasks(ids)
}

// ListAllTasks returns every task record, ordered by epic number then
// sequence.
func (s *Store) ListAllTasks() ([]*domain.Task, error) {
	ids, err := s.taskIDs()
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Epic.Num != ids[j].Epic.Num {
			return ids[i].Epic.Num < ids[j].Epic.Num
		}
		return ids[i].Seq < ids[j].Seq
	})
	return s.readTasks(ids)
}

func (s *Store) readTasks(ids []fnid.TaskID) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		var task domain.Task
		if err := readJSON(s.taskPath(id.String()), &task); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

func (s *Store) taskIDs() ([]fnid.TaskID, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "tasks"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []fnid.TaskID
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := fnid.ParseTask(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
