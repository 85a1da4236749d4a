// Package tracker implements the operations of the task engine: epic and
// task creation, dependency management, the status state machine, soft-claim
// handling, and readiness queries. Every operation loads a snapshot from the
// record store, decides, and writes back through the store; a failed
// precondition never produces a partial write.
package tracker

import (
	"time"

	"github.com/fntrack/fntrack/internal/audit"
	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/store"
)

// Tracker wires the record store to the decision logic. The audit log is
// optional; when present, every successful mutation appends an entry.
type Tracker struct {
	store *store.Store
	audit *audit.Log
}

// New creates a Tracker. log may be nil to disable audit logging.
func New(s *store.Store, log *audit.Log) *Tracker {
	return &Tracker{store: s, audit: log}
}

// Store exposes the underlying record store for read-only consumers.
func (t *Tracker) Store() *store.Store { return t.store }

// History returns the audit entries for one epic or task, newest first.
func (t *Tracker) History(recordID string) ([]*domain.AuditEntry, error) {
	if t.audit == nil {
		return nil, nil
	}
	return t.audit.ListByRecord(recordID)
}

// logChange appends an audit entry. Audit is best-effort: a failure to log
// never aborts the mutation it describes.
func (t *Tracker) logChange(recordID, action, actor string, field, oldValue, newValue string) {
	if t.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		RecordID:  recordID,
		Action:    action,
		ChangedAt: time.Now().UTC(),
		ChangedBy: actor,
	}
	if field != "" {
		entry.Field = &field
	}
	if oldValue != "" {
		entry.OldValue = &oldValue
	}
	if newValue != "" {
		entry.NewValue = &newValue
	}
	_ = t.audit.Append(entry)
}
