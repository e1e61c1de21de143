// Package cli provides the command-line interface for jobtrail.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "jobtrail",
	Short: "Offline-first job application tracker",
	Long: `Offline-first job application tracker.

jobtrail keeps companies, contacts, applications and reminders in a local
SQLite store. Every change is recorded in a durable outbox so a sync agent
can push it to a remote service later; nothing here talks to the network.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// openDatabase loads config and opens the store. Callers must Close it.
func openDatabase() (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	dbCfg := db.DefaultConfig(paths.Database)
	dbCfg.Debug = cfg.Debug
	database, err := db.New(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	return cfg, database, nil
}
