package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the store's schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE:  runMigrateStatus,
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the most recently applied migration",
	Long: `Roll back the most recently applied migration.

Only one step is ever rolled back per invocation. Rolling back drops the
schema objects that version created; data in them is lost.`,
	RunE: runMigrateRollback,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateRollbackCmd)
}

// openEngine opens a raw store handle without auto-applying migrations, so
// status and rollback observe the ledger as-is.
func openEngine() (*migrate.Engine, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	paths := config.GetPaths(cfg)

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", paths.Database)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closer := func() error {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	engine, err := migrate.New(gormDB, migrate.Registry())
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return engine, closer, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	engine, closeDB, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	before, err := engine.Status()
	if err != nil {
		return err
	}
	if len(before.Pending) == 0 {
		fmt.Println("Store is up to date.")
		return nil
	}

	if err := engine.ApplyPending(); err != nil {
		return err
	}
	fmt.Printf("Applied %d migration(s): %s\n", len(before.Pending), strings.Join(before.Pending, ", "))
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	engine, closeDB, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	st, err := engine.Status()
	if err != nil {
		return err
	}

	fmt.Printf("Registered: %d\nApplied:    %d\n", st.Total, st.Applied)
	if len(st.Pending) == 0 {
		fmt.Println("Pending:    none")
	} else {
		fmt.Printf("Pending:    %s\n", strings.Join(st.Pending, ", "))
	}
	return nil
}

func runMigrateRollback(cmd *cobra.Command, args []string) error {
	engine, closeDB, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	st, err := engine.Status()
	if err != nil {
		return err
	}
	if st.Applied == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	if err := engine.RollbackLast(); err != nil {
		return err
	}
	fmt.Println("Rolled back one migration.")
	return nil
}
