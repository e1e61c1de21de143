package cli

import (
	"path/filepath"
	"testing"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/models"
)

func TestRootCommandWiring(t *testing.T) {
	expected := []string{"add", "events", "list", "migrate", "seed", "status"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestOpenDatabase_UsesConfiguredBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "jobtrail")
	t.Setenv("JOBTRAIL_BASE_DIR", base)

	cfg, database, err := openDatabase()
	if err != nil {
		t.Fatalf("openDatabase() error = %v", err)
	}
	defer func() { _ = database.Close() }()

	if cfg.BaseDir != base {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, base)
	}
	if database.Path() != filepath.Join(base, "jobtrail.db") {
		t.Errorf("database path = %q, want it under the base dir", database.Path())
	}
}

func TestListApplications_StageFilter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(db.DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer func() { _ = database.Close() }()

	applied := &models.Application{Position: "Backend Engineer"}
	if err := database.CreateApplication(applied); err != nil {
		t.Fatalf("CreateApplication() error = %v", err)
	}
	offer := &models.Application{Position: "Platform Engineer", Stage: models.StageOffer}
	if err := database.CreateApplication(offer); err != nil {
		t.Fatalf("CreateApplication() error = %v", err)
	}

	all, err := listApplications(database, "")
	if err != nil {
		t.Fatalf("listApplications() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d applications, want 2", len(all))
	}

	offers, err := listApplications(database, models.StageOffer)
	if err != nil {
		t.Fatalf("listApplications(offer) error = %v", err)
	}
	if len(offers) != 1 || offers[0].Position != "Platform Engineer" {
		t.Errorf("stage filter returned %v, want just the offer-stage application", offers)
	}
}
