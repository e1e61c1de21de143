package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into an empty store",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	created, err := seed.Load(database)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if created == 0 {
		fmt.Println("Store already has data; seed skipped.")
		return nil
	}
	fmt.Printf("Seeded %d demo records.\n", created)
	return nil
}
