package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	eventsLimit  int
	eventsFailed bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the change-capture outbox",
	Long: `Inspect the change-capture outbox.

Shows events waiting to be pushed by the sync agent, in the order the agent
must apply them. This is a read-only view; acknowledging events is the
agent's job.`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "maximum events to show")
	eventsCmd.Flags().BoolVar(&eventsFailed, "failed", false, "show only events with failed push attempts")
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	ob := database.Outbox()

	events, err := ob.PullUnsynced(eventsLimit)
	if err != nil {
		return fmt.Errorf("pull events: %w", err)
	}
	if eventsFailed {
		events, err = ob.FailedEvents(1)
		if err != nil {
			return fmt.Errorf("pull failed events: %w", err)
		}
	}

	if len(events) == 0 {
		fmt.Println("Outbox is empty; everything is synced.")
		return nil
	}

	pending, err := ob.PendingCount()
	if err != nil {
		return fmt.Errorf("count pending: %w", err)
	}

	fmt.Printf("OUTBOX (%d pending, showing %d)\n", pending, len(events))
	fmt.Println("──────────────────────────────────────────────────")
	for _, e := range events {
		line := fmt.Sprintf("#%-6d %-8s %-14s %s", e.ID, e.Operation, e.TableName, e.RecordID)
		if e.RetryCount > 0 {
			line += fmt.Sprintf("  (retries: %d", e.RetryCount)
			if e.RetryCount >= cfg.Sync.MaxRetries {
				line += ", giving up"
			}
			line += ")"
		}
		fmt.Println(line)
		if e.ErrorMessage != "" {
			fmt.Printf("        last error: %s\n", e.ErrorMessage)
		}
	}
	return nil
}
