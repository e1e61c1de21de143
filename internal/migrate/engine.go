// Package migrate applies an ordered sequence of schema migrations to the
// local store exactly once each, tracks what has been applied in a ledger
// table, and can roll back the most recent step.
package migrate

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/jobtrail/jobtrail/internal/models"
)

// Definition is one forward/backward pair of schema transformations,
// identified by a unique version. Definitions are registered in a fixed order
// known at build time; that order is the only valid apply order.
type Definition struct {
	Version string
	Apply   func(tx *gorm.DB) error
	Revert  func(tx *gorm.DB) error
}

// Status summarizes the engine's view of the ledger.
type Status struct {
	Total   int      `json:"total"`
	Applied int      `json:"applied"`
	Pending []string `json:"pending"`
}

// Engine owns the migration ledger. Apply, rollback and status are mutually
// exclusive; migrations never run in parallel since later versions may assume
// earlier schema state exists.
type Engine struct {
	db       *gorm.DB
	registry []Definition
	mu       sync.Mutex
}

// New creates an engine over an explicit store handle and validates the
// registry. The ledger table is created if absent.
func New(db *gorm.DB, registry []Definition) (*Engine, error) {
	seen := make(map[string]bool, len(registry))
	for _, def := range registry {
		if def.Version == "" {
			return nil, &ConfigurationError{Version: "(empty)", Reason: "version must not be empty"}
		}
		if seen[def.Version] {
			return nil, &ConfigurationError{Version: def.Version, Reason: "duplicate version in registry"}
		}
		if def.Apply == nil {
			return nil, &ConfigurationError{Version: def.Version, Reason: "missing apply step"}
		}
		seen[def.Version] = true
	}

	ledgerSQL := `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL
	);`
	if err := db.Exec(ledgerSQL).Error; err != nil {
		return nil, fmt.Errorf("create migration ledger: %w", err)
	}

	return &Engine{db: db, registry: registry}, nil
}

// ApplyPending applies every registered migration the ledger does not record
// yet, in registry order. Each version's forward step and its ledger insert
// run in one transaction, so a crash can never leave a migration half
// recorded. The first failure aborts the run with an *ApplyError; migrations
// applied before it stay recorded.
func (e *Engine) ApplyPending() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	applied, err := e.appliedSet()
	if err != nil {
		return err
	}

	for _, def := range e.registry {
		if applied[def.Version] {
			continue
		}
		err := e.db.Transaction(func(tx *gorm.DB) error {
			if err := def.Apply(tx); err != nil {
				return err
			}
			rec := models.MigrationRecord{Version: def.Version, AppliedAt: time.Now().UTC()}
			return tx.Create(&rec).Error
		})
		if err != nil {
			return &ApplyError{Version: def.Version, Err: err}
		}
	}
	return nil
}

// RollbackLast reverts the most recently applied migration and removes its
// ledger record, both in one transaction. A no-op when the ledger is empty.
// Rolling back a version that is no longer registered fails with a
// *ConfigurationError since its revert logic is unknown.
func (e *Engine) RollbackLast() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var rec models.MigrationRecord
	err := e.db.Order("applied_at DESC, version DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read migration ledger: %w", err)
	}

	def, ok := e.lookup(rec.Version)
	if !ok {
		return &ConfigurationError{Version: rec.Version, Reason: "version not registered; revert logic unknown"}
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		if def.Revert != nil {
			if err := def.Revert(tx); err != nil {
				return fmt.Errorf("revert migration %s: %w", def.Version, err)
			}
		}
		return tx.Delete(&models.MigrationRecord{}, "version = ?", def.Version).Error
	})
}

// Status returns the total registered count, the applied count, and the
// pending versions in registry order.
func (e *Engine) Status() (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	applied, err := e.appliedSet()
	if err != nil {
		return Status{}, err
	}

	st := Status{Total: len(e.registry), Pending: []string{}}
	for _, def := range e.registry {
		if applied[def.Version] {
			st.Applied++
		} else {
			st.Pending = append(st.Pending, def.Version)
		}
	}
	return st, nil
}

// appliedSet reads the ledger into a version set.
func (e *Engine) appliedSet() (map[string]bool, error) {
	var records []models.MigrationRecord
	if err := e.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	applied := make(map[string]bool, len(records))
	for _, rec := range records {
		applied[rec.Version] = true
	}
	return applied, nil
}

// lookup finds a registered definition by version.
func (e *Engine) lookup(version string) (Definition, bool) {
	for _, def := range e.registry {
		if def.Version == version {
			return def, true
		}
	}
	return Definition{}, false
}
