package models

import "time"

// Change event operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent is one durable entry in the change-capture outbox: a record of
// a local mutation an external sync agent still has to push. Events are
// append-only; acknowledgement sets SyncedAt and nothing ever clears it.
type ChangeEvent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TableName string `gorm:"size:64;index:idx_change_events_record" json:"table_name"`
	RecordID  string `gorm:"size:36;index:idx_change_events_record" json:"record_id"`
	Operation string `gorm:"size:10" json:"operation"`
	// Payload is the JSON-encoded allow-listed snapshot (create/update) or
	// the remote id alone (delete).
	Payload string `gorm:"type:text" json:"payload"`

	RetryCount   int        `gorm:"default:0" json:"retry_count"`
	LastRetryAt  *time.Time `json:"last_retry_at,omitempty"`
	ErrorMessage string     `gorm:"type:text" json:"error_message"`

	CreatedAt time.Time  `json:"created_at"`
	SyncedAt  *time.Time `gorm:"index" json:"synced_at,omitempty"`
}

// IsSynced reports whether the event has been acknowledged.
func (e *ChangeEvent) IsSynced() bool {
	return e.SyncedAt != nil
}
