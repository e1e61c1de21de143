package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store statistics and sync backlog",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	st, err := database.Migrations().Status()
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}

	fmt.Printf("Database:     %s (%d bytes)\n", database.Path(), stats.DBSizeBytes)
	fmt.Printf("Schema:       %d/%d migrations applied\n", st.Applied, st.Total)
	fmt.Printf("Companies:    %d\n", stats.TotalCompanies)
	fmt.Printf("Contacts:     %d\n", stats.TotalContacts)
	fmt.Printf("Applications: %d\n", stats.TotalApplications)
	fmt.Printf("Reminders:    %d\n", stats.TotalReminders)
	fmt.Printf("Outbox:       %d pending", stats.PendingEvents)
	if stats.FailedEvents > 0 {
		fmt.Printf(", %d with failed attempts", stats.FailedEvents)
	}
	fmt.Println()
	return nil
}
