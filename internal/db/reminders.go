package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// CreateReminder inserts a reminder, capturing its create event in the same
// transaction.
func (db *DB) CreateReminder(reminder *models.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	return db.createSyncable(reminder)
}

// GetReminder retrieves a reminder by ID. Returns nil when not found.
func (db *DB) GetReminder(id string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := db.First(&reminder, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

// ListReminders returns reminders ordered by due time.
func (db *DB) ListReminders(limit, offset int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.Order("due_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&reminders).Error
	return reminders, err
}

// GetDueReminders returns incomplete reminders due at or before the cutoff.
// The host application drains this to deliver notifications.
func (db *DB) GetDueReminders(cutoff time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.Where("completed = ? AND due_at <= ?", false, cutoff).
		Order("due_at ASC").
		Find(&reminders).Error
	return reminders, err
}

// CompleteReminder marks a reminder as done.
func (db *DB) CompleteReminder(id string) error {
	reminder, err := db.GetReminder(id)
	if err != nil {
		return err
	}
	if reminder == nil {
		return ErrNotFound
	}
	reminder.Completed = true
	return db.UpdateReminder(reminder)
}

// UpdateReminder saves changed domain fields and captures an update event
// when a sync-relevant field changed.
func (db *DB) UpdateReminder(reminder *models.Reminder) error {
	return db.Transaction(func(tx *DB) error {
		var old models.Reminder
		if err := tx.First(&old, "id = ?", reminder.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.updateSyncable(&old, reminder)
	})
}

// DeleteReminder removes a reminder under the tombstone policy.
func (db *DB) DeleteReminder(id string) error {
	return db.Transaction(func(tx *DB) error {
		var reminder models.Reminder
		err := tx.First(&reminder, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.deleteSyncable(&reminder)
	})
}
