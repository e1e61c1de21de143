package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// CreateCompany inserts a company, capturing its create event in the same
// transaction.
func (db *DB) CreateCompany(company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	return db.createSyncable(company)
}

// GetCompany retrieves a company by ID. Returns nil when not found or
// tombstoned.
func (db *DB) GetCompany(id string) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// GetCompanyByName retrieves a company by exact name.
func (db *DB) GetCompanyByName(name string) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// ListCompanies returns companies ordered by name.
func (db *DB) ListCompanies(limit, offset int) ([]models.Company, error) {
	var companies []models.Company
	err := db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	return companies, err
}

// UpdateCompany saves changed domain fields and captures an update event when
// a sync-relevant field changed. Sync bookkeeping on the passed record is
// ignored; the store owns those fields.
func (db *DB) UpdateCompany(company *models.Company) error {
	return db.Transaction(func(tx *DB) error {
		var old models.Company
		if err := tx.First(&old, "id = ?", company.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.updateSyncable(&old, company)
	})
}

// DeleteCompany removes a company under the tombstone policy. Deleting an
// unknown id is a no-op.
func (db *DB) DeleteCompany(id string) error {
	return db.Transaction(func(tx *DB) error {
		var company models.Company
		err := tx.First(&company, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.deleteSyncable(&company)
	})
}
