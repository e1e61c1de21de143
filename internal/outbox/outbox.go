// Package outbox durably records create/update/delete intents for
// synchronizable records as an ordered, replayable change log. Capture runs
// inside the entity mutation's transaction; drain and acknowledgement are
// consumed by an external sync agent. The outbox is a passive log: it owns
// retry bookkeeping but never schedules retries itself.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// ErrEventNotFound is returned when an acknowledged or failed event id does
// not exist in the log.
var ErrEventNotFound = errors.New("change event not found")

// Outbox appends and drains change events over an explicit store handle.
// Capture methods take the mutation's transaction so the event append commits
// or rolls back with the row write; drain methods use the outbox's own handle
// and may run concurrently with capture.
type Outbox struct {
	db *gorm.DB
}

// New creates an outbox bound to a store handle.
func New(db *gorm.DB) *Outbox {
	return &Outbox{db: db}
}

// CaptureCreate appends a create event with the record's allow-listed
// snapshot. Local-only records emit nothing.
func (o *Outbox) CaptureCreate(tx *gorm.DB, rec models.Syncable) error {
	if !rec.Meta().SyncStatus.CaptureEligible() {
		return nil
	}
	snap, ok := snapshot(rec)
	if !ok {
		return nil
	}
	return appendEvent(tx, rec, models.OpCreate, snap)
}

// CaptureUpdate appends an update event carrying the new record's snapshot,
// but only when at least one allow-listed field differs between old and new.
// Mutations that touch only non-allow-listed fields emit nothing.
func (o *Outbox) CaptureUpdate(tx *gorm.DB, old, updated models.Syncable) error {
	if !updated.Meta().SyncStatus.CaptureEligible() {
		return nil
	}
	oldSnap, ok := snapshot(old)
	if !ok {
		return nil
	}
	newSnap, _ := snapshot(updated)
	if reflect.DeepEqual(oldSnap, newSnap) {
		return nil
	}
	return appendEvent(tx, updated, models.OpUpdate, newSnap)
}

// CaptureDelete appends a delete event whose payload carries only the remote
// id, the one identifier the remote side needs. Records that never acquired a
// remote counterpart have nothing to reconcile and emit nothing.
func (o *Outbox) CaptureDelete(tx *gorm.DB, rec models.Syncable) error {
	meta := rec.Meta()
	if !meta.SyncStatus.CaptureEligible() || meta.RemoteID == nil {
		return nil
	}
	return appendEvent(tx, rec, models.OpDelete, map[string]any{"remote_id": *meta.RemoteID})
}

// PullUnsynced returns unacknowledged events in ascending id order. The
// consumer contract is to apply them in that order; applying out of order can
// resurrect deleted records or write stale field values.
func (o *Outbox) PullUnsynced(limit int) ([]models.ChangeEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var events []models.ChangeEvent
	err := o.db.Where("synced_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// Acknowledge marks an event as synced. Acknowledging an already-acknowledged
// event is a no-op; acknowledgement only ever advances synced_at, never
// clears it.
func (o *Outbox) Acknowledge(id int64) error {
	now := time.Now().UTC()
	result := o.db.Model(&models.ChangeEvent{}).
		Where("id = ? AND synced_at IS NULL", id).
		Update("synced_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := o.db.Model(&models.ChangeEvent{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("acknowledge event %d: %w", id, ErrEventNotFound)
		}
	}
	return nil
}

// RecordFailure notes a consumer-side push failure: bumps the retry count and
// stores the message. Backoff and retry scheduling belong to the sync agent.
func (o *Outbox) RecordFailure(id int64, message string) error {
	now := time.Now().UTC()
	result := o.db.Model(&models.ChangeEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry_count":   gorm.Expr("retry_count + 1"),
			"last_retry_at": now,
			"error_message": message,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("record failure for event %d: %w", id, ErrEventNotFound)
	}
	return nil
}

// PendingCount returns the number of unacknowledged events.
func (o *Outbox) PendingCount() (int64, error) {
	var count int64
	err := o.db.Model(&models.ChangeEvent{}).Where("synced_at IS NULL").Count(&count).Error
	return count, err
}

// FailedEvents returns unacknowledged events that have failed at least
// minRetries times, in ascending id order.
func (o *Outbox) FailedEvents(minRetries int) ([]models.ChangeEvent, error) {
	var events []models.ChangeEvent
	err := o.db.Where("synced_at IS NULL AND retry_count >= ?", minRetries).
		Order("id ASC").
		Find(&events).Error
	return events, err
}

// EventsForRecord returns every event captured for one record, in append
// order. Used for audit and drain-order verification.
func (o *Outbox) EventsForRecord(tableName, recordID string) ([]models.ChangeEvent, error) {
	var events []models.ChangeEvent
	err := o.db.Where("table_name = ? AND record_id = ?", tableName, recordID).
		Order("id ASC").
		Find(&events).Error
	return events, err
}

// appendEvent writes one event row on the mutation's transaction.
func appendEvent(tx *gorm.DB, rec models.Syncable, operation string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload for %s/%s: %w", operation, rec.TableName(), rec.GetID(), err)
	}
	event := models.ChangeEvent{
		TableName: rec.TableName(),
		RecordID:  rec.GetID(),
		Operation: operation,
		Payload:   string(body),
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("append %s event for %s/%s: %w", operation, rec.TableName(), rec.GetID(), err)
	}
	return nil
}

// snapshot filters a record's candidate values through its table's
// allow-list. Tables absent from the allow-list have nothing to sync.
func snapshot(rec models.Syncable) (map[string]any, bool) {
	fields, ok := Allowlist[rec.TableName()]
	if !ok {
		return nil, false
	}
	values := rec.SyncValues()
	snap := make(map[string]any, len(fields))
	for _, field := range fields {
		snap[field] = values[field]
	}
	return snap, true
}
