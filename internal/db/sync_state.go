package db

import (
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail/internal/models"
)

// Sync-state writers. The entity store is the only component allowed to touch
// a record's sync bookkeeping (status, remote id, last synced); the external
// sync agent reports outcomes through these methods after draining the
// outbox. SyncVersion is untouched here: these are bookkeeping updates, not
// local changes, and must not look like one.

// MarkSynced records that the remote accepted a record, assigning its remote
// id on first sync. A remote id, once assigned, is immutable; local-only
// records can never acquire one.
func (db *DB) MarkSynced(rec models.Syncable, remoteID string) error {
	meta := rec.Meta()
	if meta.SyncStatus == models.SyncStatusLocalOnly {
		return fmt.Errorf("mark %s/%s synced: %w", rec.TableName(), rec.GetID(), ErrLocalOnly)
	}
	if meta.RemoteID != nil && *meta.RemoteID != remoteID {
		return fmt.Errorf("mark %s/%s synced: %w", rec.TableName(), rec.GetID(), ErrRemoteIDImmutable)
	}

	now := time.Now().UTC()
	err := db.Model(rec).
		Where("id = ?", rec.GetID()).
		Updates(map[string]any{
			"sync_status":    models.SyncStatusSynced,
			"remote_id":      remoteID,
			"last_synced_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("mark %s/%s synced: %w", rec.TableName(), rec.GetID(), err)
	}

	meta.SyncStatus = models.SyncStatusSynced
	meta.RemoteID = &remoteID
	meta.LastSyncedAt = &now
	return nil
}

// MarkSyncError records that the last push attempt for a record failed.
func (db *DB) MarkSyncError(rec models.Syncable) error {
	meta := rec.Meta()
	if meta.SyncStatus == models.SyncStatusLocalOnly {
		return fmt.Errorf("mark %s/%s errored: %w", rec.TableName(), rec.GetID(), ErrLocalOnly)
	}
	err := db.Model(rec).
		Where("id = ?", rec.GetID()).
		Update("sync_status", models.SyncStatusError).Error
	if err != nil {
		return fmt.Errorf("mark %s/%s errored: %w", rec.TableName(), rec.GetID(), err)
	}
	meta.SyncStatus = models.SyncStatusError
	return nil
}
