package tracker

import (
	"fmt"
	"time"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/graph"
	"github.com/fntrack/fntrack/pkg/fnid"
)

// CreateEpic allocates the next epic number, persists the record, and seeds
// the specification document with the required sections.
func (t *Tracker) CreateEpic(title, slug, actor string) (*domain.Epic, error) {
	if title == "" {
		return nil, fmt.Errorf("epic title cannot be empty")
	}
	if !fnid.ValidSlug(slug) {
		return nil, &domain.InvalidFormatError{Input: slug, Reason: "slug must be lowercase letters, digits, and dashes"}
	}
	num, err := t.store.NextEpicNum()
	if err != nil {
		return nil, err
	}
	id := fnid.EpicID{Num: num, Slug: slug}.String()

	epic := domain.NewEpic(id, title)
	if err := t.store.CreateEpic(epic, epicDocTemplate(id, title)); err != nil {
		return nil, err
	}
	t.logChange(id, "create", actor, "", "", title)
	return epic, nil
}

// CloseEpic transitions an epic to done. Every task must already be done;
// otherwise the close fails with the open task identifiers. Forcing bypasses
// the check but leaves an audit trace.
func (t *Tracker) CloseEpic(id, actor string, force bool) (*domain.Epic, error) {
	epic, err := t.store.GetEpic(id)
	if err != nil {
		return nil, err
	}
	if epic.Status == domain.StatusDone {
		return nil, &domain.TransitionError{ID: epic.ID, From: domain.StatusDone, To: domain.StatusDone,
			Description: "epic is already done"}
	}

	tasks, err := t.store.ListTasks(epic.ID)
	if err != nil {
		return nil, err
	}
	if open := epic.OpenTasks(tasks); len(open) > 0 && !force {
		return nil, &domain.IncompleteChildrenError{EpicID: epic.ID, Open: open}
	}

	now := time.Now().UTC()
	oldStatus := epic.Status
	epic.Status = domain.StatusDone
	epic.DoneAt = &now
	epic.UpdatedAt = now
	if err := t.store.UpdateEpic(epic); err != nil {
		return nil, err
	}

	action := "close"
	if force {
		action = "force_close"
	}
	t.logChange(epic.ID, action, actor, "status", string(oldStatus), string(domain.StatusDone))
	return epic, nil
}

// AddEpicDependency declares that child must wait for parent. Adding an
// existing edge is idempotent; an edge that would close a cycle is rejected
// with the cycle path.
func (t *Tracker) AddEpicDependency(childID, parentID, actor string) error {
	child, err := t.store.GetEpic(childID)
	if err != nil {
		return err
	}
	parent, err := t.store.GetEpic(parentID)
	if err != nil {
		return err
	}
	if child.ID == parent.ID {
		return &domain.CycleError{Scope: "epics", Path: []string{child.ID, child.ID}}
	}
	for _, dep := range child.DependsOn {
		if dep == parent.ID {
			return nil
		}
	}

	epics, err := t.store.ListEpics()
	if err != nil {
		return err
	}
	deps := make(map[string][]string, len(epics))
	for _, e := range epics {
		deps[e.ID] = e.DependsOn
	}
	deps[child.ID] = append(append([]string{}, child.DependsOn...), parent.ID)
	if cycle := graph.New(deps).DetectCycle(); cycle != nil {
		return &domain.CycleError{Scope: "epics", Path: cycle}
	}

	child.DependsOn = append(child.DependsOn, parent.ID)
	child.UpdatedAt = time.Now().UTC()
	if err := t.store.UpdateEpic(child); err != nil {
		return err
	}
	t.logChange(child.ID, "add_dependency", actor, "depends_on", "", parent.ID)
	return nil
}

// RemoveEpicDependency deletes the edge child -> parent.
func (t *Tracker) RemoveEpicDependency(childID, parentID, actor string) error {
	child, err := t.store.GetEpic(childID)
	if err != nil {
		return err
	}

	kept := child.DependsOn[:0]
	found := false
	for _, dep := range child.DependsOn {
		if dep == parentID {
			found = true
			continue
		}
		kept = append(kept, dep)
	}
	if !found {
		return &domain.NotFoundError{Kind: "dependency", ID: childID + " -> " + parentID}
	}

	child.DependsOn = kept
	child.UpdatedAt = time.Now().UTC()
	if err := t.store.UpdateEpic(child); err != nil {
		return err
	}
	t.logChange(child.ID, "remove_dependency", actor, "depends_on", parentID, "")
	return nil
}

// EpicDetail is an epic together with its tasks and inferred display status.
type EpicDetail struct {
	Epic   *domain.Epic   `json:"epic"`
	Status domain.Status  `json:"status"`
	Tasks  []*domain.Task `json:"tasks,omitempty"`
}

// ShowEpic loads an epic with its tasks and computes the display status.
func (t *Tracker) ShowEpic(id string) (*EpicDetail, error) {
	epic, err := t.store.GetEpic(id)
	if err != nil {
		return nil, err
	}
	tasks, err := t.store.ListTasks(epic.ID)
	if err != nil {
		return nil, err
	}
	return &EpicDetail{
		Epic:   epic,
		Status: epic.DisplayStatus(tasks),
		Tasks:  tasks,
	}, nil
}

func epicDocTemplate(id, title string) string {
	return fmt.Sprintf(`# %s: %s

## Overview

Describe the goal of this epic.

## Tasks

One line per task, in dependency order.
`, id, title)
}
