package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/store"
	"github.com/fntrack/fntrack/internal/tracker"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Init(filepath.Join(t.TempDir(), store.DirName))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

// seed builds a well-formed store through the tracker: two epics, the
// first with a two-task chain.
func seed(t *testing.T, s *store.Store) (epics []string, tasks []string) {
	t.Helper()
	tr := tracker.New(s, nil)
	e1, err := tr.CreateEpic("first", "", "alice")
	if err != nil {
		t.Fatalf("CreateEpic: %v", err)
	}
	e2, err := tr.CreateEpic("second", "", "alice")
	if err != nil {
		t.Fatalf("CreateEpic: %v", err)
	}
	t1, err := tr.CreateTask(e1.ID, "one", nil, "alice")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	t2, err := tr.CreateTask(e1.ID, "two", []string{t1.ID}, "alice")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return []string{e1.ID, e2.ID}, []string{t1.ID, t2.ID}
}

func run(t *testing.T, s *store.Store) *Result {
	t.Helper()
	res, err := New(s).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func hasIssue(issues []Issue, check, substr string) bool {
	for _, i := range issues {
		if i.Check == check && strings.Contains(i.Message, substr) {
			return true
		}
	}
	return false
}

func TestCleanStoreIsValid(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	res := run(t, s)
	if !res.Valid {
		t.Errorf("valid store reported errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if res.Counts.Epics != 2 || res.Counts.Tasks != 2 {
		t.Errorf("counts = %+v, want 2 epics, 2 tasks", res.Counts)
	}
}

func TestMissingDocument(t *testing.T) {
	s := newTestStore(t)
	_, tasks := seed(t, s)

	if err := os.Remove(filepath.Join(s.Root(), "specs", "tasks", tasks[0]+".md")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	res := run(t, s)
	if res.Valid || !hasIssue(res.Errors, "doc", "missing") {
		t.Errorf("missing doc not reported: %v", res.Errors)
	}
}

func TestDocumentMissingHeading(t *testing.T) {
	s := newTestStore(t)
	epics, tasks := seed(t, s)

	if err := s.WriteEpicDoc(epics[0], "# just a title\n"); err != nil {
		t.Fatalf("WriteEpicDoc: %v", err)
	}
	if err := s.WriteTaskDoc(tasks[0], "## Description\n\nno criteria\n"); err != nil {
		t.Fatalf("WriteTaskDoc: %v", err)
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "doc", `"## Overview"`) {
		t.Errorf("missing epic heading not reported: %v", res.Errors)
	}
	if !hasIssue(res.Errors, "doc", `"## Acceptance Criteria"`) {
		t.Errorf("missing task heading not reported: %v", res.Errors)
	}
}

func TestBrokenDependencies(t *testing.T) {
	s := newTestStore(t)
	_, tasks := seed(t, s)

	task, err := s.GetTask(tasks[1])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	task.DependsOn = []string{"fn-1.99"}
	if err := s.UpdateTask(task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "dependency", "unknown task fn-1.99") {
		t.Errorf("dangling dependency not reported: %v", res.Errors)
	}
}

func TestCrossEpicDependency(t *testing.T) {
	s := newTestStore(t)
	epics, tasks := seed(t, s)

	tr := tracker.New(s, nil)
	other, err := tr.CreateTask(epics[1], "elsewhere", nil, "alice")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	task, err := s.GetTask(tasks[0])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	task.DependsOn = []string{other.ID}
	if err := s.UpdateTask(task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "dependency", "different epic") {
		t.Errorf("cross-epic dependency not reported: %v", res.Errors)
	}
}

func TestTaskCycle(t *testing.T) {
	s := newTestStore(t)
	_, tasks := seed(t, s)

	task, err := s.GetTask(tasks[0])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	task.DependsOn = []string{tasks[1]}
	if err := s.UpdateTask(task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "cycle", "task dependency cycle") {
		t.Errorf("task cycle not reported: %v", res.Errors)
	}
}

func TestEpicCycle(t *testing.T) {
	s := newTestStore(t)
	epics, _ := seed(t, s)

	for i, other := range []int{1, 0} {
		epic, err := s.GetEpic(epics[i])
		if err != nil {
			t.Fatalf("GetEpic: %v", err)
		}
		epic.DependsOn = []string{epics[other]}
		if err := s.UpdateEpic(epic); err != nil {
			t.Fatalf("UpdateEpic: %v", err)
		}
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "cycle", "epic dependency cycle") {
		t.Errorf("epic cycle not reported: %v", res.Errors)
	}
}

func TestClosedEpicWithOpenTasks(t *testing.T) {
	s := newTestStore(t)
	epics, _ := seed(t, s)

	epic, err := s.GetEpic(epics[0])
	if err != nil {
		t.Fatalf("GetEpic: %v", err)
	}
	epic.Status = domain.StatusDone
	if err := s.UpdateEpic(epic); err != nil {
		t.Fatalf("UpdateEpic: %v", err)
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "closed_epic", "done but tasks") {
		t.Errorf("closed epic with open tasks not reported: %v", res.Errors)
	}
}

func TestOrphanedTaskRecord(t *testing.T) {
	s := newTestStore(t)
	epics, tasks := seed(t, s)

	// A record the epic does not list, as a merge leaves behind when it
	// keeps one side of a conflicted epic record.
	stray := domain.NewTask(epics[0]+".9", epics[0], "stray")
	if err := s.CreateTask(stray, "## Description\n\n## Acceptance Criteria\n"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res := run(t, s)
	if res.Valid || !hasIssue(res.Errors, "orphan", "not listed by epic") {
		t.Errorf("orphaned record not reported: %v", res.Errors)
	}

	// Closing the epic with only the listed tasks done must still count
	// the stray record as open.
	for _, id := range tasks {
		task, err := s.GetTask(id)
		if err != nil {
			t.Fatalf("GetTask: %v", err)
		}
		task.Status = domain.StatusDone
		task.Summary = "done"
		if err := s.UpdateTask(task); err != nil {
			t.Fatalf("UpdateTask: %v", err)
		}
	}
	epic, err := s.GetEpic(epics[0])
	if err != nil {
		t.Fatalf("GetEpic: %v", err)
	}
	epic.Status = domain.StatusDone
	if err := s.UpdateEpic(epic); err != nil {
		t.Fatalf("UpdateEpic: %v", err)
	}

	res = run(t, s)
	if !hasIssue(res.Errors, "closed_epic", stray.ID) {
		t.Errorf("done epic with open unlisted task not reported: %v", res.Errors)
	}
}

func TestTaskWithoutOwningEpic(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	stray := domain.NewTask("fn-9.1", "fn-9", "unowned")
	if err := s.CreateTask(stray, "## Description\n\n## Acceptance Criteria\n"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res := run(t, s)
	if res.Valid || !hasIssue(res.Errors, "orphan", "does not exist") {
		t.Errorf("unowned record not reported: %v", res.Errors)
	}
}

func TestDuplicateIdentifiers(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"fn-1-alpha", "fn-1-beta"} {
		if err := s.CreateEpic(domain.NewEpic(id, "merged twice"), "## Overview\n\n## Tasks\n"); err != nil {
			t.Fatalf("CreateEpic %s: %v", id, err)
		}
	}
	ta := domain.NewTask("fn-1-alpha.1", "fn-1-alpha", "a")
	tb := domain.NewTask("fn-1-beta.1", "fn-1-beta", "b")
	for _, task := range []*domain.Task{ta, tb} {
		if err := s.CreateTask(task, "## Description\n\n## Acceptance Criteria\n"); err != nil {
			t.Fatalf("CreateTask %s: %v", task.ID, err)
		}
	}

	res := run(t, s)
	if !hasIssue(res.Errors, "duplicate", "epic number 1") {
		t.Errorf("epic collision not reported: %v", res.Errors)
	}
	if !hasIssue(res.Errors, "duplicate", "task number fn-1.1") {
		t.Errorf("task collision not reported: %v", res.Errors)
	}
}

func TestRunEpicScopesFindings(t *testing.T) {
	s := newTestStore(t)
	epics, tasks := seed(t, s)

	// Break the second epic's document: a full run sees it, a run scoped
	// to the first epic does not.
	if err := s.WriteEpicDoc(epics[1], "# bare\n"); err != nil {
		t.Fatalf("WriteEpicDoc: %v", err)
	}

	full := run(t, s)
	if full.Valid {
		t.Fatal("full run missed the broken document")
	}

	scoped, err := New(s).RunEpic(epics[0])
	if err != nil {
		t.Fatalf("RunEpic: %v", err)
	}
	if !scoped.Valid {
		t.Errorf("scoped run picked up out-of-scope errors: %v", scoped.Errors)
	}
	if scoped.Counts.Epics != 1 || scoped.Counts.Tasks != len(tasks) {
		t.Errorf("scoped counts = %+v, want 1 epic, %d tasks", scoped.Counts, len(tasks))
	}
}

func TestRunEpicSeesNumberCollisions(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"fn-1-alpha", "fn-1-beta"} {
		if err := s.CreateEpic(domain.NewEpic(id, "merged twice"), "## Overview\n\n## Tasks\n"); err != nil {
			t.Fatalf("CreateEpic %s: %v", id, err)
		}
	}

	res, err := New(s).RunEpic("fn-1-alpha")
	if err != nil {
		t.Fatalf("RunEpic: %v", err)
	}
	if !hasIssue(res.Errors, "duplicate", "epic number 1") {
		t.Errorf("scoped run missed the collision: %v", res.Errors)
	}
}

func TestWarnings(t *testing.T) {
	s := newTestStore(t)
	_, tasks := seed(t, s)

	orphan, err := s.GetTask(tasks[0])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	orphan.Status = domain.StatusInProgress
	if err := s.UpdateTask(orphan); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	bare, err := s.GetTask(tasks[1])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	bare.Status = domain.StatusDone
	if err := s.UpdateTask(bare); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	res := run(t, s)
	if !res.Valid {
		t.Errorf("warnings should not invalidate: %v", res.Errors)
	}
	if !hasIssue(res.Warnings, "claim", "no assignee") {
		t.Errorf("unclaimed in_progress not warned: %v", res.Warnings)
	}
	if !hasIssue(res.Warnings, "summary", "no completion summary") {
		t.Errorf("done without summary not warned: %v", res.Warnings)
	}
}
