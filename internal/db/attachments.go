package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// CreateAttachment inserts attachment metadata, capturing its create event in
// the same transaction. The blob itself is stored by the host application;
// the store only tracks metadata and its sync state.
func (db *DB) CreateAttachment(att *models.Attachment) error {
	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	return db.createSyncable(att)
}

// GetAttachment retrieves attachment metadata by ID. Returns nil when not
// found.
func (db *DB) GetAttachment(id string) (*models.Attachment, error) {
	var att models.Attachment
	err := db.First(&att, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

// GetAttachmentsByApplication returns all attachments for an application.
func (db *DB) GetAttachmentsByApplication(applicationID string) ([]models.Attachment, error) {
	var atts []models.Attachment
	err := db.Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&atts).Error
	return atts, err
}

// UpdateAttachment saves changed metadata and captures an update event when a
// sync-relevant field changed. A changed Path alone emits nothing: local
// blob locations are not part of the remote contract.
func (db *DB) UpdateAttachment(att *models.Attachment) error {
	return db.Transaction(func(tx *DB) error {
		var old models.Attachment
		if err := tx.First(&old, "id = ?", att.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.updateSyncable(&old, att)
	})
}

// DeleteAttachment removes attachment metadata under the tombstone policy.
func (db *DB) DeleteAttachment(id string) error {
	return db.Transaction(func(tx *DB) error {
		var att models.Attachment
		err := tx.First(&att, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.deleteSyncable(&att)
	})
}
