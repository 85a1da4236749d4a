package store

import (
	"os"

	"github.com/fntrack/fntrack/internal/domain"
)

// Document bodies are opaque text. The store never parses them; the
// validator checks only for required section headings.

// ReadEpicDoc returns the specification document of an epic.
func (s *Store) ReadEpicDoc(id string) (string, error) {
	return s.readDoc(s.epicDocPath(id), "epic document", id)
}

// WriteEpicDoc replaces the specification document of an epic. The epic
// record must exist.
func (s *Store) WriteEpicDoc(id, doc string) error {
	if _, err := os.Stat(s.epicPath(id)); err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Kind: "epic", ID: id}
		}
		return err
	}
	return atomicWriteText(s.epicDocPath(id), doc)
}

// ReadTaskDoc returns the document of a task.
func (s *Store) ReadTaskDoc(id string) (string, error) {
	return s.readDoc(s.taskDocPath(id), "task document", id)
}

// WriteTaskDoc replaces the document of a task. The task record must exist.
func (s *Store) WriteTaskDoc(id, doc string) error {
	if _, err := os.Stat(s.taskPath(id)); err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Kind: "task", ID: id}
		}
		return err
	}
	return atomicWriteText(s.taskDocPath(id), doc)
}

// EpicDocExists reports whether the epic's document file is present.
func (s *Store) EpicDocExists(id string) bool {
	_, err := os.Stat(s.epicDocPath(id))
	return err == nil
}

// TaskDocExists reports whether the task's document file is present.
func (s *Store) TaskDocExists(id string) bool {
	_, err := os.Stat(s.taskDocPath(id))
	return err == nil
}

func (s *Store) readDoc(path, kind, id string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &domain.NotFoundError{Kind: kind, ID: id}
		}
		return "", err
	}
	return string(data), nil
}
