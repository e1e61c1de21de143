package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/jobtrail/jobtrail/internal/models"
)

// The helpers below are the single write path shared by every entity. Each
// wraps the row mutation and its outbox capture in one transaction: a durable
// mutation whose event failed to append would be a silent sync loss, so a
// capture failure rolls the whole mutation back.
//
// SyncVersion counts attempted changes: it is bumped on every
// capture-eligible mutation even when the allow-list diff ends up emitting
// nothing. Downstream conflict resolution relies on that distinction.

// createSyncable inserts a record and captures its create event.
func (d *DB) createSyncable(rec models.Syncable) error {
	meta := rec.Meta()
	if meta.SyncStatus == "" {
		meta.SyncStatus = models.SyncStatusPending
	}
	return d.Transaction(func(tx *DB) error {
		if meta.SyncStatus.CaptureEligible() {
			meta.SyncVersion++
		}
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return fmt.Errorf("create %s: %w", rec.TableName(), err)
		}
		if err := tx.outbox.CaptureCreate(tx.DB, rec); err != nil {
			return fmt.Errorf("capture create for %s: %w", rec.TableName(), err)
		}
		return nil
	})
}

// updateSyncable saves a record and captures an update event when an
// allow-listed field changed. The caller runs inside a transaction and
// supplies the previously persisted state for the diff. Sync bookkeeping is
// carried over from the old record: callers mutate domain fields only.
func (tx *DB) updateSyncable(old, rec models.Syncable) error {
	*rec.Meta() = *old.Meta()
	meta := rec.Meta()
	if meta.SyncStatus.CaptureEligible() {
		meta.SyncVersion++
		meta.SyncStatus = models.SyncStatusPending
	}
	if err := tx.Omit(clause.Associations).Save(rec).Error; err != nil {
		return fmt.Errorf("update %s: %w", rec.TableName(), err)
	}
	if err := tx.outbox.CaptureUpdate(tx.DB, old, rec); err != nil {
		return fmt.Errorf("capture update for %s: %w", rec.TableName(), err)
	}
	return nil
}

// deleteSyncable removes a record under the tombstone policy. Records that
// acquired a remote counterpart are soft-deleted so the remote id survives
// until the delete event drains; records the remote never saw are removed
// outright with no event.
func (tx *DB) deleteSyncable(rec models.Syncable) error {
	meta := rec.Meta()
	if meta.SyncStatus.CaptureEligible() && meta.RemoteID != nil {
		meta.SyncVersion++
		meta.SyncStatus = models.SyncStatusPending
		if err := tx.Omit(clause.Associations).Save(rec).Error; err != nil {
			return fmt.Errorf("mark %s for deletion: %w", rec.TableName(), err)
		}
		if err := tx.Delete(rec).Error; err != nil {
			return fmt.Errorf("tombstone %s: %w", rec.TableName(), err)
		}
		if err := tx.outbox.CaptureDelete(tx.DB, rec); err != nil {
			return fmt.Errorf("capture delete for %s: %w", rec.TableName(), err)
		}
		return nil
	}
	if err := tx.Unscoped().Delete(rec).Error; err != nil {
		return fmt.Errorf("delete %s: %w", rec.TableName(), err)
	}
	return nil
}
