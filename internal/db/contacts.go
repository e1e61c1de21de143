package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// CreateContact inserts a contact, capturing its create event in the same
// transaction.
func (db *DB) CreateContact(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	return db.createSyncable(contact)
}

// GetContact retrieves a contact by ID. Returns nil when not found.
func (db *DB) GetContact(id string) (*models.Contact, error) {
	var contact models.Contact
	err := db.First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

// ListContacts returns contacts ordered by name.
func (db *DB) ListContacts(limit, offset int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	return contacts, err
}

// GetContactsByCompany returns all contacts at a company.
func (db *DB) GetContactsByCompany(companyID string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&contacts).Error
	return contacts, err
}

// UpdateContact saves changed domain fields and captures an update event when
// a sync-relevant field changed.
func (db *DB) UpdateContact(contact *models.Contact) error {
	return db.Transaction(func(tx *DB) error {
		var old models.Contact
		if err := tx.First(&old, "id = ?", contact.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.updateSyncable(&old, contact)
	})
}

// DeleteContact removes a contact under the tombstone policy.
func (db *DB) DeleteContact(id string) error {
	return db.Transaction(func(tx *DB) error {
		var contact models.Contact
		err := tx.First(&contact, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.deleteSyncable(&contact)
	})
}
