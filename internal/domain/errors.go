package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the conditions every operation can surface. All of
// them are local, recoverable conditions: the operation aborts with no
// partial write and the condition is reported verbatim to the caller.
var (
	// ErrNotFound is returned when a referenced epic, task, or dependency
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a create would overwrite an existing
	// record, or when validation detects a duplicate identifier.
	ErrConflict = errors.New("record already exists")

	// ErrInvalidFormat is returned when an identifier or payload does not
	// match its expected shape.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrDependencyNotMet is returned when a task is started before all of
	// its dependencies are done.
	ErrDependencyNotMet = errors.New("dependencies not met")

	// ErrAlreadyClaimed is returned when a claim is held by another actor.
	ErrAlreadyClaimed = errors.New("task already claimed")

	// ErrCycleDetected is returned when a dependency graph is not acyclic.
	ErrCycleDetected = errors.New("dependency cycle detected")

	// ErrIncompleteChildren is returned when an epic is closed while any
	// of its tasks is not done.
	ErrIncompleteChildren = errors.New("epic has incomplete tasks")

	// ErrCrossScopeDependency is returned when a task dependency references
	// a task in a different epic.
	ErrCrossScopeDependency = errors.New("task dependency crosses epics")

	// ErrInvalidTransition is returned for a status transition the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// NotFoundError names the missing record.
type NotFoundError struct {
	Kind string // "epic", "task", or "dependency"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError names the identifier that already exists.
type ConflictError struct {
	Kind string
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// DependencyNotMetError lists the unmet dependencies blocking a start.
type DependencyNotMetError struct {
	TaskID string
	Unmet  []string
}

func (e *DependencyNotMetError) Error() string {
	return fmt.Sprintf("task %s has unmet dependencies: %s",
		e.TaskID, strings.Join(e.Unmet, ", "))
}

func (e *DependencyNotMetError) Is(target error) bool { return target == ErrDependencyNotMet }

// AlreadyClaimedError reports the current holder of the claim.
type AlreadyClaimedError struct {
	TaskID    string
	ClaimedBy string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("task %s is already claimed by %s (use force to take over)",
		e.TaskID, e.ClaimedBy)
}

func (e *AlreadyClaimedError) Is(target error) bool { return target == ErrAlreadyClaimed }

// CycleError carries the full cycle path for diagnostics. The path lists
// every node in the cycle once, with the starting node repeated at the end.
type CycleError struct {
	Scope string // "tasks" or "epics"
	Path  []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s dependency cycle: %s", e.Scope, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Is(target error) bool { return target == ErrCycleDetected }

// IncompleteChildrenError lists the tasks still open at close time.
type IncompleteChildrenError struct {
	EpicID string
	Open   []string
}

func (e *IncompleteChildrenError) Error() string {
	return fmt.Sprintf("epic %s cannot close: tasks not done: %s",
		e.EpicID, strings.Join(e.Open, ", "))
}

func (e *IncompleteChildrenError) Is(target error) bool { return target == ErrIncompleteChildren }

// CrossScopeError reports a task dependency pointing outside the task's epic.
type CrossScopeError struct {
	TaskID string
	DepID  string
}

func (e *CrossScopeError) Error() string {
	return fmt.Sprintf("task %s cannot depend on %s: dependency crosses epics",
		e.TaskID, e.DepID)
}

func (e *CrossScopeError) Is(target error) bool { return target == ErrCrossScopeDependency }

// TransitionError describes a disallowed status transition.
type TransitionError struct {
	ID          string
	From        Status
	To          Status
	Description string
}

func (e *TransitionError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("invalid transition for %s from %s to %s: %s",
			e.ID, e.From, e.To, e.Description)
	}
	return fmt.Sprintf("invalid transition for %s from %s to %s", e.ID, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// InvalidFormatError names the malformed input.
type InvalidFormatError struct {
	Input  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Input, e.Reason)
}

func (e *InvalidFormatError) Is(target error) bool { return target == ErrInvalidFormat }
