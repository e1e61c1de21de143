package models

import "time"

// MigrationRecord is one row in the migration ledger: a schema version that
// has been applied to this store.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;size:64" json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}

// TableName specifies the table name for GORM.
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}
