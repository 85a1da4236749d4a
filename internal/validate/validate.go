// Package validate checks a record store for structural problems: missing
// or malformed specification documents, broken or cross-epic dependencies,
// dependency cycles, epics closed with open tasks, identifier collisions,
// and task records no epic lists — the artifacts branch merges leave
// behind.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/graph"
	"github.com/fntrack/fntrack/internal/store"
	"github.com/fntrack/fntrack/pkg/fnid"
)

// Issue is one validation finding tied to a record.
type Issue struct {
	RecordID string `json:"record_id"`
	Check    string `json:"check"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: [%s] %s", i.RecordID, i.Check, i.Message)
}

// Counts summarizes what the validator inspected.
type Counts struct {
	Epics int `json:"epics"`
	Tasks int `json:"tasks"`
}

// Result is the outcome of a full validation pass. Errors make the store
// invalid; warnings are advisory.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
	Counts   Counts  `json:"counts"`
}

var (
	epicHeadings = []string{"## Overview", "## Tasks"}
	taskHeadings = []string{"## Description", "## Acceptance Criteria"}
)

// Validator runs the checks against one store.
type Validator struct {
	store *store.Store
}

// New creates a Validator for the given store.
func New(s *store.Store) *Validator {
	return &Validator{store: s}
}

// Run executes every check over the whole store. Checks run in a fixed
// order so output is stable across invocations.
func (v *Validator) Run() (*Result, error) {
	epics, err := v.store.ListEpics()
	if err != nil {
		return nil, err
	}
	tasks, err := v.store.ListAllTasks()
	if err != nil {
		return nil, err
	}
	return v.run(epics, tasks, epicIDSet(epics)), nil
}

// RunEpic narrows validation to one epic: its records, its tasks, and any
// records that collide with its number under another slug. Epic-level
// dependencies are still resolved against the full store.
func (v *Validator) RunEpic(id string) (*Result, error) {
	epic, err := v.store.GetEpic(id)
	if err != nil {
		return nil, err
	}
	num, err := fnid.ParseEpic(epic.ID)
	if err != nil {
		return nil, err
	}

	allEpics, err := v.store.ListEpics()
	if err != nil {
		return nil, err
	}
	allTasks, err := v.store.ListAllTasks()
	if err != nil {
		return nil, err
	}

	var epics []*domain.Epic
	for _, e := range allEpics {
		if eid, err := fnid.ParseEpic(e.ID); err == nil && eid.Num == num.Num {
			epics = append(epics, e)
		}
	}
	var tasks []*domain.Task
	for _, t := range allTasks {
		if tid, err := fnid.ParseEpic(t.Epic); err == nil && tid.Num == num.Num {
			tasks = append(tasks, t)
		}
	}
	return v.run(epics, tasks, epicIDSet(allEpics)), nil
}

func (v *Validator) run(epics []*domain.Epic, tasks []*domain.Task, epicIDs map[string]bool) *Result {
	res := &Result{Counts: Counts{Epics: len(epics), Tasks: len(tasks)}}

	v.checkDocuments(res, epics, tasks)
	v.checkDependencies(res, epics, tasks, epicIDs)
	v.checkCycles(res, epics, tasks)
	v.checkClosedEpics(res, epics, tasks)
	v.checkDuplicates(res, epics, tasks)
	v.checkOrphans(res, epics, tasks)
	v.checkWarnings(res, tasks)

	res.Valid = len(res.Errors) == 0
	return res
}

func epicIDSet(epics []*domain.Epic) map[string]bool {
	ids := make(map[string]bool, len(epics))
	for _, e := range epics {
		ids[e.ID] = true
	}
	return ids
}

func (v *Validator) checkDocuments(res *Result, epics []*domain.Epic, tasks []*domain.Task) {
	for _, e := range epics {
		doc, err := v.store.ReadEpicDoc(e.ID)
		if err != nil {
			res.addError(e.ID, "doc", "specification document is missing")
			continue
		}
		for _, h := range epicHeadings {
			if !strings.Contains(doc, h) {
				res.addError(e.ID, "doc", fmt.Sprintf("specification document lacks required heading %q", h))
			}
		}
	}
	for _, t := range tasks {
		doc, err := v.store.ReadTaskDoc(t.ID)
		if err != nil {
			res.addError(t.ID, "doc", "specification document is missing")
			continue
		}
		for _, h := range taskHeadings {
			if !strings.Contains(doc, h) {
				res.addError(t.ID, "doc", fmt.Sprintf("specification document lacks required heading %q", h))
			}
		}
	}
}

func (v *Validator) checkDependencies(res *Result, epics []*domain.Epic, tasks []*domain.Task, epicIDs map[string]bool) {
	taskIDs := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taskIDs[t.ID] = true
	}

	for _, e := range epics {
		for _, dep := range e.DependsOn {
			if !epicIDs[dep] {
				res.addError(e.ID, "dependency", fmt.Sprintf("depends on unknown epic %s", dep))
			}
		}
	}
	for _, t := range tasks {
		epicNum, err := fnid.ParseEpic(t.Epic)
		if err != nil {
			res.addError(t.ID, "dependency", fmt.Sprintf("owning epic identifier %q is invalid", t.Epic))
			continue
		}
		for _, dep := range t.DependsOn {
			depID, err := fnid.ParseTask(dep)
			if err != nil {
				res.addError(t.ID, "dependency", fmt.Sprintf("dependency %q is not a valid task identifier", dep))
				continue
			}
			if !fnid.SameEpic(depID.Epic, epicNum) {
				res.addError(t.ID, "dependency", fmt.Sprintf("depends on %s in a different epic", dep))
				continue
			}
			if !taskIDs[dep] {
				res.addError(t.ID, "dependency", fmt.Sprintf("depends on unknown task %s", dep))
			}
		}
	}
}

func (v *Validator) checkCycles(res *Result, epics []*domain.Epic, tasks []*domain.Task) {
	epicDeps := make(map[string][]string, len(epics))
	for _, e := range epics {
		epicDeps[e.ID] = e.DependsOn
	}
	if cycle := graph.New(epicDeps).DetectCycle(); cycle != nil {
		res.addError(cycle[0], "cycle", "epic dependency cycle: "+strings.Join(cycle, " -> "))
	}

	byEpic := make(map[string]map[string][]string)
	for _, t := range tasks {
		deps := byEpic[t.Epic]
		if deps == nil {
			deps = make(map[string][]string)
			byEpic[t.Epic] = deps
		}
		deps[t.ID] = t.DependsOn
	}
	epicKeys := make([]string, 0, len(byEpic))
	for k := range byEpic {
		epicKeys = append(epicKeys, k)
	}
	sort.Strings(epicKeys)
	for _, k := range epicKeys {
		if cycle := graph.New(byEpic[k]).DetectCycle(); cycle != nil {
			res.addError(cycle[0], "cycle", "task dependency cycle: "+strings.Join(cycle, " -> "))
		}
	}
}

func (v *Validator) checkClosedEpics(res *Result, epics []*domain.Epic, tasks []*domain.Task) {
	// Group by epic number so records whose slugs disagree after a merge
	// still count against their epic.
	byNum := make(map[int][]*domain.Task)
	for _, t := range tasks {
		if id, err := fnid.ParseEpic(t.Epic); err == nil {
			byNum[id.Num] = append(byNum[id.Num], t)
		}
	}
	for _, e := range epics {
		if e.Status != domain.StatusDone {
			continue
		}
		num, err := fnid.ParseEpic(e.ID)
		if err != nil {
			continue
		}
		if open := e.OpenTasks(byNum[num.Num]); len(open) > 0 {
			res.addError(e.ID, "closed_epic", fmt.Sprintf("epic is done but tasks %v are not", open))
		}
	}
}

// checkDuplicates finds identifier collisions: two epics with the same
// number under different slugs, or two tasks with the same epic number and
// sequence. These appear when branches allocated independently and merged.
func (v *Validator) checkDuplicates(res *Result, epics []*domain.Epic, tasks []*domain.Task) {
	byNum := make(map[int][]string)
	for _, e := range epics {
		id, err := fnid.ParseEpic(e.ID)
		if err != nil {
			continue
		}
		byNum[id.Num] = append(byNum[id.Num], e.ID)
	}
	nums := make([]int, 0, len(byNum))
	for n := range byNum {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		if ids := byNum[n]; len(ids) > 1 {
			res.addError(ids[0], "duplicate", fmt.Sprintf("epic number %d is claimed by %s", n, strings.Join(ids, ", ")))
		}
	}

	bySeq := make(map[string][]string)
	for _, t := range tasks {
		id, err := fnid.ParseTask(t.ID)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("fn-%d.%d", id.Epic.Num, id.Seq)
		bySeq[key] = append(bySeq[key], t.ID)
	}
	keys := make([]string, 0, len(bySeq))
	for k := range bySeq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if ids := bySeq[k]; len(ids) > 1 {
			res.addError(ids[0], "duplicate", fmt.Sprintf("task number %s is claimed by %s", k, strings.Join(ids, ", ")))
		}
	}
}

// checkOrphans finds task records their epic does not list. These appear
// when a merge resolves a conflicted epic record by keeping one side,
// dropping the task identifiers added on the other.
func (v *Validator) checkOrphans(res *Result, epics []*domain.Epic, tasks []*domain.Task) {
	listed := make(map[int]map[string]bool, len(epics))
	for _, e := range epics {
		id, err := fnid.ParseEpic(e.ID)
		if err != nil {
			continue
		}
		set := listed[id.Num]
		if set == nil {
			set = make(map[string]bool, len(e.Tasks))
			listed[id.Num] = set
		}
		for _, tid := range e.Tasks {
			set[tid] = true
		}
	}
	for _, t := range tasks {
		id, err := fnid.ParseTask(t.ID)
		if err != nil {
			continue
		}
		set, ok := listed[id.Epic.Num]
		if !ok {
			res.addError(t.ID, "orphan", fmt.Sprintf("owning epic %s does not exist", t.Epic))
			continue
		}
		if !set[t.ID] {
			res.addError(t.ID, "orphan", fmt.Sprintf("task record is not listed by epic %s", t.Epic))
		}
	}
}

func (v *Validator) checkWarnings(res *Result, tasks []*domain.Task) {
	for _, t := range tasks {
		if t.Status == domain.StatusInProgress && t.Assignee == "" {
			res.addWarning(t.ID, "claim", "task is in_progress but has no assignee")
		}
		if t.Status == domain.StatusDone && t.Summary == "" {
			res.addWarning(t.ID, "summary", "task is done but has no completion summary")
		}
	}
}

func (r *Result) addError(recordID, check, message string) {
	r.Errors = append(r.Errors, Issue{RecordID: recordID, Check: check, Message: message})
}

func (r *Result) addWarning(recordID, check, message string) {
	r.Warnings = append(r.Warnings, Issue{RecordID: recordID, Check: check, Message: message})
}
