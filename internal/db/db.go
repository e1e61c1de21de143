// Package db provides the GORM-based entity store for jobtrail.
// It uses the pure-Go SQLite driver; the schema is owned by the versioned
// migration engine, and every entity mutation captures a change event in the
// same transaction.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobtrail/jobtrail/internal/migrate"
	"github.com/jobtrail/jobtrail/internal/models"
	"github.com/jobtrail/jobtrail/internal/outbox"
)

// DB wraps the GORM database connection with jobtrail-specific operations.
type DB struct {
	*gorm.DB
	path   string
	outbox *outbox.Outbox
	engine *migrate.Engine
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New opens the database and brings the schema to the latest version via the
// migration engine.
func New(cfg Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Configure GORM logger
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// Build DSN with DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true, // Better performance for read operations
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool. Single writer: the store assumes no
	// concurrent external writers.
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	engine, err := migrate.New(gormDB, migrate.Registry())
	if err != nil {
		return nil, fmt.Errorf("configure migrations: %w", err)
	}
	if err := engine.ApplyPending(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{
		DB:     gormDB,
		path:   cfg.Path,
		outbox: outbox.New(gormDB),
		engine: engine,
	}, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Outbox returns the change-capture outbox over this store.
func (db *DB) Outbox() *outbox.Outbox {
	return db.outbox
}

// Migrations returns the migration engine owning this store's ledger.
func (db *DB) Migrations() *migrate.Engine {
	return db.engine
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path, outbox: d.outbox, engine: d.engine}
		return fc(wrappedTx)
	})
}

// GetStats returns aggregate statistics about the store.
func (db *DB) GetStats() (*models.StoreStats, error) {
	var stats models.StoreStats

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Company{}, &stats.TotalCompanies},
		{&models.Contact{}, &stats.TotalContacts},
		{&models.Application{}, &stats.TotalApplications},
		{&models.Reminder{}, &stats.TotalReminders},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count rows: %w", err)
		}
	}

	pending, err := db.outbox.PendingCount()
	if err != nil {
		return nil, fmt.Errorf("count pending events: %w", err)
	}
	stats.PendingEvents = pending

	if err := db.Model(&models.ChangeEvent{}).
		Where("synced_at IS NULL AND retry_count > 0").
		Count(&stats.FailedEvents).Error; err != nil {
		return nil, fmt.Errorf("count failed events: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.DBSizeBytes = info.Size()
	}
	stats.LastUpdated = time.Now()

	return &stats, nil
}
