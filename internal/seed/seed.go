// Package seed loads a small demo dataset into an empty store. Seed data is
// written through the ordinary entity store surface, so it is subject to the
// same change-capture rules as user data — no special-casing.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/models"
)

//go:embed seed.yaml
var seedData []byte

type seedCompany struct {
	Name     string `yaml:"name"`
	Website  string `yaml:"website"`
	Industry string `yaml:"industry"`
	Location string `yaml:"location"`
	Notes    string `yaml:"notes"`

	Contacts     []seedContact     `yaml:"contacts"`
	Applications []seedApplication `yaml:"applications"`
}

type seedContact struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
	Role  string `yaml:"role"`
}

type seedApplication struct {
	Position    string `yaml:"position"`
	Stage       string `yaml:"stage"`
	SalaryRange string `yaml:"salary_range"`
	Location    string `yaml:"location"`
	URL         string `yaml:"url"`
	Notes       string `yaml:"notes"`
	// DaysAgo places applied_at relative to now so the demo stays fresh.
	DaysAgo int `yaml:"days_ago"`

	Reminders []seedReminder `yaml:"reminders"`
}

type seedReminder struct {
	Title  string `yaml:"title"`
	Notes  string `yaml:"notes"`
	InDays int    `yaml:"in_days"`
}

type dataset struct {
	Companies []seedCompany `yaml:"companies"`
}

// Load writes the demo dataset through the entity store. It is a no-op when
// the store already has companies. Returns the number of records created.
func Load(database *db.DB) (int, error) {
	existing, err := database.ListCompanies(1, 0)
	if err != nil {
		return 0, fmt.Errorf("check existing data: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	var data dataset
	if err := yaml.Unmarshal(seedData, &data); err != nil {
		return 0, fmt.Errorf("decode seed data: %w", err)
	}

	now := time.Now()
	created := 0

	for _, sc := range data.Companies {
		company := &models.Company{
			Name:     sc.Name,
			Website:  sc.Website,
			Industry: sc.Industry,
			Location: sc.Location,
			Notes:    sc.Notes,
		}
		if err := database.CreateCompany(company); err != nil {
			return created, fmt.Errorf("seed company %q: %w", sc.Name, err)
		}
		created++

		for _, ct := range sc.Contacts {
			contact := &models.Contact{
				CompanyID: &company.ID,
				Name:      ct.Name,
				Email:     ct.Email,
				Phone:     ct.Phone,
				Role:      ct.Role,
			}
			if err := database.CreateContact(contact); err != nil {
				return created, fmt.Errorf("seed contact %q: %w", ct.Name, err)
			}
			created++
		}

		for _, sa := range sc.Applications {
			appliedAt := now.AddDate(0, 0, -sa.DaysAgo)
			app := &models.Application{
				CompanyID:   &company.ID,
				Position:    sa.Position,
				Stage:       sa.Stage,
				AppliedAt:   &appliedAt,
				SalaryRange: sa.SalaryRange,
				Location:    sa.Location,
				URL:         sa.URL,
				Notes:       sa.Notes,
			}
			if err := database.CreateApplication(app); err != nil {
				return created, fmt.Errorf("seed application %q: %w", sa.Position, err)
			}
			created++

			for _, sr := range sa.Reminders {
				reminder := &models.Reminder{
					ApplicationID: &app.ID,
					Title:         sr.Title,
					Notes:         sr.Notes,
					DueAt:         now.AddDate(0, 0, sr.InDays),
				}
				if err := database.CreateReminder(reminder); err != nil {
					return created, fmt.Errorf("seed reminder %q: %w", sr.Title, err)
				}
				created++
			}
		}
	}

	return created, nil
}
