package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// CreateApplication inserts an application, capturing its create event in the
// same transaction.
func (db *DB) CreateApplication(app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Stage == "" {
		app.Stage = models.StageApplied
	}
	return db.createSyncable(app)
}

// GetApplication retrieves an application by ID with its company preloaded.
// Returns nil when not found.
func (db *DB) GetApplication(id string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("Company").First(&app, "applications.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// ListApplications returns applications ordered by most recently updated.
func (db *DB) ListApplications(limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Company").
		Order("applications.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error
	return apps, err
}

// GetApplicationsByStage returns applications in a given stage.
func (db *DB) GetApplicationsByStage(stage string, limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Company").
		Where("stage = ?", stage).
		Order("applications.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error
	return apps, err
}

// GetApplicationsByCompany returns all applications at a company.
func (db *DB) GetApplicationsByCompany(companyID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("company_id = ?", companyID).
		Order("updated_at DESC").
		Find(&apps).Error
	return apps, err
}

// UpdateApplication saves changed domain fields and captures an update event
// when a sync-relevant field changed.
func (db *DB) UpdateApplication(app *models.Application) error {
	return db.Transaction(func(tx *DB) error {
		var old models.Application
		if err := tx.First(&old, "id = ?", app.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.updateSyncable(&old, app)
	})
}

// AdvanceApplicationStage moves an application to a new stage.
func (db *DB) AdvanceApplicationStage(id, stage string) error {
	valid := false
	for _, s := range models.ValidStages() {
		if s == stage {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid stage %q", stage)
	}

	app, err := db.GetApplication(id)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrNotFound
	}
	app.Stage = stage
	return db.UpdateApplication(app)
}

// DeleteApplication removes an application under the tombstone policy.
func (db *DB) DeleteApplication(id string) error {
	return db.Transaction(func(tx *DB) error {
		var app models.Application
		err := tx.First(&app, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.deleteSyncable(&app)
	})
}
