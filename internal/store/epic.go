package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/pkg/fnid"
)

// CreateEpic persists a new epic record and its specification document.
// Creation never overwrites: an existing record at the computed path is a
// conflict.
func (s *Store) CreateEpic(epic *domain.Epic, doc string) error {
	if _, err := fnid.ParseEpic(epic.ID); err != nil {
		return &domain.InvalidFormatError{Input: epic.ID, Reason: err.Error()}
	}
	path := s.epicPath(epic.ID)
	if err := createExclusive(path); err != nil {
		if os.IsExist(err) {
			return &domain.ConflictError{Kind: "epic", ID: epic.ID}
		}
		return err
	}
	if err := atomicWriteJSON(path, epic); err != nil {
		os.Remove(path)
		return err
	}
	return atomicWriteText(s.epicDocPath(epic.ID), doc)
}

// GetEpic reads one epic record. The identifier may omit or disagree on the
// slug; lookup matches on the epic number.
func (s *Store) GetEpic(id string) (*domain.Epic, error) {
	want, err := fnid.ParseEpic(id)
	if err != nil {
		return nil, &domain.InvalidFormatError{Input: id, Reason: err.Error()}
	}

	var epic domain.Epic
	if err := readJSON(s.epicPath(id), &epic); err == nil {
		return &epic, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Slug-lenient fallback: scan for a record with the same number.
	ids, err := s.epicIDs()
	if err != nil {
		return nil, err
	}
	for _, candidate := range ids {
		if fnid.SameEpic(candidate, want) {
			if err := readJSON(s.epicPath(candidate.String()), &epic); err != nil {
				return nil, err
			}
			return &epic, nil
		}
	}
	return nil, &domain.NotFoundError{Kind: "epic", ID: id}
}

// UpdateEpic rewrites an existing epic record. A missing record is NotFound,
// never an implicit create.
func (s *Store) UpdateEpic(epic *domain.Epic) error {
	path := s.epicPath(epic.ID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Kind: "epic", ID: epic.ID}
		}
		return err
	}
	return atomicWriteJSON(path, epic)
}

// ListEpics returns every epic record, ordered by epic number.
func (s *Store) ListEpics() ([]*domain.Epic, error) {
	ids, err := s.epicIDs()
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Num < ids[j].Num })

	epics := make([]*domain.Epic, 0, len(ids))
	for _, id := range ids {
		var epic domain.Epic
		if err := readJSON(s.epicPath(id.String()), &epic); err != nil {
			return nil, err
		}
		epics = append(epics, &epic)
	}
	return epics, nil
}

// epicIDs scans the epics directory, parsing file names leniently. Names
// that do not parse as epic identifiers (editor droppings, temp files) are
// skipped rather than treated as corruption.
func (s *Store) epicIDs() ([]fnid.EpicID, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "epics"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []fnid.EpicID
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := fnid.ParseEpic(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
