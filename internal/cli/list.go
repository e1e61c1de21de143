package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/models"
)

var listStage string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked job applications",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStage, "stage", "", "filter by stage")
}

func runList(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	apps, err := listApplications(database, listStage)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}

	if len(apps) == 0 {
		fmt.Println("No applications tracked yet.")
		fmt.Println("\nUse 'jobtrail add application <company> <position>' to add one.")
		return nil
	}

	fmt.Printf("APPLICATIONS (%d)\n", len(apps))
	fmt.Println("──────────────────────────────────────────────────")
	for _, app := range apps {
		companyName := "(no company)"
		if app.Company != nil {
			companyName = app.Company.Name
		}
		applied := "unknown"
		if app.AppliedAt != nil {
			applied = app.AppliedAt.Format("2006-01-02")
		}
		fmt.Printf("%-28s %-24s %-10s applied %s\n", app.Position, companyName, app.Stage, applied)
	}
	return nil
}

// listApplications fetches applications, optionally filtered by stage.
func listApplications(database *db.DB, stage string) ([]models.Application, error) {
	if stage != "" {
		return database.GetApplicationsByStage(stage, 100, 0)
	}
	return database.ListApplications(100, 0)
}
