// Package audit keeps a local SQLite trail of every mutation: claims,
// takeovers, completions, releases, epic closes, and dependency edits.
//
// The database lives inside the data directory but is excluded from version
// control by fn init; it is a per-clone convenience, never a source of
// truth, and a failure to append is reported to the caller but must not
// abort the mutation it describes.
package audit

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fntrack/fntrack/internal/domain"
)

// Log is an append-only audit trail backed by SQLite.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path and applies
// pending schema migrations. ":memory:" is accepted for tests.
func Open(path string) (*Log, error) {
	connStr := path
	if !strings.Contains(path, "?") {
		connStr += "?"
	} else {
		connStr += "&"
	}
	connStr += "_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run audit migrations: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the database handle.
func (l *Log) Close() error { return l.db.Close() }

// Append records one audit entry.
func (l *Log) Append(entry *domain.AuditEntry) error {
	_, err := l.db.Exec(`
		INSERT INTO audit_log (record_id, action, field, old_value, new_value, changed_at, changed_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.RecordID,
		entry.Action,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.ChangedAt.Format(time.RFC3339),
		entry.ChangedBy,
	)
	return err
}

// ListByRecord returns the entries for one epic or task, newest first.
func (l *Log) ListByRecord(recordID string) ([]*domain.AuditEntry, error) {
	rows, err := l.db.Query(`
		SELECT id, record_id, action, field, old_value, new_value, changed_at, changed_by
		FROM audit_log
		WHERE record_id = ?
		ORDER BY changed_at DESC, id DESC
	`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*domain.AuditEntry, error) {
	var entries []*domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var field, oldValue, newValue sql.NullString
		var changedAt string

		err := rows.Scan(
			&entry.ID,
			&entry.RecordID,
			&entry.Action,
			&field,
			&oldValue,
			&newValue,
			&changedAt,
			&entry.ChangedBy,
		)
		if err != nil {
			return nil, err
		}

		if field.Valid {
			entry.Field = &field.String
		}
		if oldValue.Valid {
			entry.OldValue = &oldValue.String
		}
		if newValue.Valid {
			entry.NewValue = &newValue.String
		}
		entry.ChangedAt, _ = time.Parse(time.RFC3339, changedAt)

		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
