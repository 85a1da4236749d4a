package e2e

import (
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/fntrack/fntrack/internal/api"
	"github.com/fntrack/fntrack/internal/audit"
	"github.com/fntrack/fntrack/internal/store"
	"github.com/fntrack/fntrack/internal/tracker"
	"github.com/fntrack/fntrack/pkg/fnclient"
)

// E2ETestSuite wires a real store, audit log, tracker, and inspection server
// together the way the fn binary does, minus process boundaries.
type E2ETestSuite struct {
	t       *testing.T
	store   *store.Store
	tracker *tracker.Tracker
	server  *httptest.Server
	client  *fnclient.Client
}

// setupE2E initializes a fresh tracker in a temp directory and starts the
// inspection API on an ephemeral port.
func setupE2E(t *testing.T) *E2ETestSuite {
	t.Helper()

	s, err := store.Init(filepath.Join(t.TempDir(), store.DirName))
	if err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}

	log, err := audit.Open(s.AuditPath())
	if err != nil {
		t.Fatalf("Failed to open audit log: %v", err)
	}
	t.Cleanup(func() { log.Close() })

	tr := tracker.New(s, log)

	server := httptest.NewServer(api.NewRouter(tr))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("Failed to parse server port: %v", err)
	}

	client, err := fnclient.New(fnclient.WithHost(u.Hostname()), fnclient.WithPort(port))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return &E2ETestSuite{
		t:       t,
		store:   s,
		tracker: tr,
		server:  server,
		client:  client,
	}
}

// mustCreateEpic creates an epic or fails the test.
func (s *E2ETestSuite) mustCreateEpic(title, slug, actor string) string {
	s.t.Helper()
	epic, err := s.tracker.CreateEpic(title, slug, actor)
	if err != nil {
		s.t.Fatalf("Failed to create epic %q: %v", title, err)
	}
	return epic.ID
}

// mustCreateTask creates a task or fails the test.
func (s *E2ETestSuite) mustCreateTask(epicID, title string, deps []string, actor string) string {
	s.t.Helper()
	task, err := s.tracker.CreateTask(epicID, title, deps, actor)
	if err != nil {
		s.t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task.ID
}

// readyIDs returns the IDs of the currently ready tasks across all epics.
func (s *E2ETestSuite) readyIDs() []string {
	s.t.Helper()
	tasks, err := s.tracker.ReadyAll()
	if err != nil {
		s.t.Fatalf("Failed to compute ready set: %v", err)
	}
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}
