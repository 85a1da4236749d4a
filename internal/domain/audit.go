package domain

import "time"

// AuditEntry records one mutation for the audit trail. RecordID holds the
// epic or task identifier the action applied to.
type AuditEntry struct {
	ID        int64     `json:"id"`
	RecordID  string    `json:"record_id"`
	Action    string    `json:"action"`
	Field     *string   `json:"field,omitempty"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}
