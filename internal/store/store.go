// Package store is the file-backed record store and the sole writer of
// persisted state. Each epic and task has one JSON metadata record and one
// free-form markdown document, laid out under the .fn data directory:
//
//	.fn/meta.json            schema version tag
//	.fn/epics/fn-N.json      epic records
//	.fn/tasks/fn-N.M.json    task records
//	.fn/specs/epics/fn-N.md  epic specification documents
//	.fn/specs/tasks/fn-N.M.md task documents
//
// Creates refuse to overwrite (O_EXCL), updates refuse missing records, and
// every write goes through write-temp-then-rename so a crash never leaves a
// half-written record. Coordination across machines is left to the version
// control system that the data directory lives in.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fntrack/fntrack/internal/domain"
)

// DirName is the data directory created at the project root.
const DirName = ".fn"

// SchemaVersion tags the on-disk layout. It is a version marker, not an
// identifier counter; identifiers are always recomputed by scanning.
const SchemaVersion = 1

// Store reads and writes epic and task records under one data directory.
type Store struct {
	root string // path to the .fn directory
}

// Open returns a Store over an existing data directory. It fails if the
// directory has not been initialized.
func Open(root string) (*Store, error) {
	if _, err := os.Stat(filepath.Join(root, metaFile)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no %s data directory at %s (run 'fn init' first)", DirName, root)
		}
		return nil, err
	}
	return &Store{root: root}, nil
}

// Init creates the data directory layout and the schema meta record.
// It fails with a conflict if the directory is already initialized.
func Init(root string) (*Store, error) {
	if _, err := os.Stat(filepath.Join(root, metaFile)); err == nil {
		return nil, &domain.ConflictError{Kind: "data directory", ID: root}
	}
	for _, dir := range []string{
		root,
		filepath.Join(root, "epics"),
		filepath.Join(root, "tasks"),
		filepath.Join(root, "specs", "epics"),
		filepath.Join(root, "specs", "tasks"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	s := &Store{root: root}
	if err := s.writeMeta(Meta{SchemaVersion: SchemaVersion}); err != nil {
		return nil, err
	}
	// The audit db is a local convenience, never shared state.
	gitignore := filepath.Join(root, ".gitignore")
	if err := atomicWriteText(gitignore, "audit.db\naudit.db-wal\naudit.db-shm\n"); err != nil {
		return nil, err
	}
	return s, nil
}

// Discover walks up from start looking for a .fn directory, the same way
// project configuration is discovered.
func Discover(start string) (string, error) {
	dir := start
	for {
		candidate := filepath.Join(dir, DirName)
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("no .fn data directory found. Run 'fn init' to create one")
		}
		dir = parent
	}
}

// Root returns the data directory path.
func (s *Store) Root() string { return s.root }

// AuditPath returns the path of the local audit database.
func (s *Store) AuditPath() string { return filepath.Join(s.root, "audit.db") }

func (s *Store) epicPath(id string) string {
	return filepath.Join(s.root, "epics", id+".json")
}

func (s *Store) taskPath(id string) string {
	return filepath.Join(s.root, "tasks", id+".json")
}

func (s *Store) epicDocPath(id string) string {
	return filepath.Join(s.root, "specs", "epics", id+".md")
}

func (s *Store) taskDocPath(id string) string {
	return filepath.Join(s.root, "specs", "tasks", id+".md")
}
