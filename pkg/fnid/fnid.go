// Package fnid parses and formats fn identifiers.
//
// Epic identifiers have the form "fn-<N>" with an optional descriptive
// slug ("fn-3", "fn-3-auth-cleanup"). Task identifiers are the owning
// epic identifier followed by a per-epic sequence number ("fn-3.2").
// The slug never participates in numeric ordering.
package fnid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Prefix is the leading marker on every epic identifier.
const Prefix = "fn"

var (
	epicPattern = regexp.MustCompile(`^fn-(\d+)(?:-([a-z0-9][a-z0-9-]*))?$`)
	taskPattern = regexp.MustCompile(`^fn-(\d+)(?:-([a-z0-9][a-z0-9-]*))?\.(\d+)$`)
	slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// EpicID identifies a single epic.
type EpicID struct {
	Num  int
	Slug string
}

// TaskID identifies a task within an epic.
type TaskID struct {
	Epic EpicID
	Seq  int
}

// String renders the identifier, including the slug when present.
func (e EpicID) String() string {
	if e.Slug != "" {
		return fmt.Sprintf("%s-%d-%s", Prefix, e.Num, e.Slug)
	}
	return fmt.Sprintf("%s-%d", Prefix, e.Num)
}

// String renders the compound identifier.
func (t TaskID) String() string {
	return fmt.Sprintf("%s.%d", t.Epic.String(), t.Seq)
}

// IsZero reports whether the identifier is unset.
func (e EpicID) IsZero() bool { return e.Num == 0 }

// IsZero reports whether the identifier is unset.
func (t TaskID) IsZero() bool { return t.Epic.Num == 0 && t.Seq == 0 }

// ParseEpic parses an epic identifier. The slug is optional and
// retained verbatim.
func ParseEpic(s string) (EpicID, error) {
	m := epicPattern.FindStringSubmatch(s)
	if m == nil {
		return EpicID{}, fmt.Errorf("%q is not a valid epic identifier (want fn-<N> or fn-<N>-<slug>)", s)
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || num < 1 {
		return EpicID{}, fmt.Errorf("%q has an invalid epic number", s)
	}
	return EpicID{Num: num, Slug: m[2]}, nil
}

// ParseTask parses a task identifier of the form <epic-id>.<M>.
func ParseTask(s string) (TaskID, error) {
	m := taskPattern.FindStringSubmatch(s)
	if m == nil {
		return TaskID{}, fmt.Errorf("%q is not a valid task identifier (want <epic-id>.<M>)", s)
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || num < 1 {
		return TaskID{}, fmt.Errorf("%q has an invalid epic number", s)
	}
	seq, err := strconv.Atoi(m[3])
	if err != nil || seq < 1 {
		return TaskID{}, fmt.Errorf("%q has an invalid task sequence number", s)
	}
	return TaskID{Epic: EpicID{Num: num, Slug: m[2]}, Seq: seq}, nil
}

// Parse accepts either identifier shape and reports which one it found.
func Parse(s string) (epic EpicID, task TaskID, isTask bool, err error) {
	if strings.ContainsRune(s, '.') {
		task, err = ParseTask(s)
		return task.Epic, task, true, err
	}
	epic, err = ParseEpic(s)
	return epic, TaskID{}, false, err
}

// SameEpic reports whether two epic identifiers name the same epic.
// Slugs are descriptive only; equality is numeric.
func SameEpic(a, b EpicID) bool { return a.Num == b.Num }

// ValidSlug reports whether s is usable as an epic slug.
func ValidSlug(s string) bool {
	return s == "" || slugPattern.MatchString(s)
}
