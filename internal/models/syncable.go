// Package models defines the core data structures for jobtrail.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SyncStatus tracks a record's position in the sync lifecycle.
type SyncStatus string

const (
	// SyncStatusPending means the record has local changes the remote has
	// not seen yet.
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusSynced means the remote has acknowledged the record's
	// current state.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusError means the last push attempt for the record failed.
	SyncStatusError SyncStatus = "error"
	// SyncStatusLocalOnly marks a record the user excluded from sync
	// entirely. Local-only records never emit change events and never
	// acquire a remote id.
	SyncStatusLocalOnly SyncStatus = "local_only"
)

// CaptureEligible reports whether mutations of a record in this status are
// subject to change capture.
func (s SyncStatus) CaptureEligible() bool {
	return s != SyncStatusLocalOnly
}

// SyncMeta is the sync bookkeeping embedded in every synchronizable entity.
// The entity store owns these fields; callers mutate domain fields only.
type SyncMeta struct {
	SyncStatus SyncStatus `gorm:"size:20;default:pending;index" json:"sync_status"`
	// SyncVersion counts attempted local changes, including ones whose
	// allow-list diff emitted no event. Conflict resolution depends on it.
	SyncVersion  int64          `gorm:"default:0" json:"sync_version"`
	RemoteID     *string        `gorm:"size:255" json:"remote_id,omitempty"`
	LastSyncedAt *time.Time     `json:"last_synced_at,omitempty"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Syncable is implemented by every entity subject to change capture.
type Syncable interface {
	GetID() string
	// Meta exposes the embedded sync bookkeeping for the store to manage.
	Meta() *SyncMeta
	TableName() string
	// SyncValues returns the record's candidate payload values keyed by
	// column name. The outbox filters them through the table's allow-list.
	SyncValues() map[string]any
}
