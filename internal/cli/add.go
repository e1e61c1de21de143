package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a company or application",
}

var addCompanyCmd = &cobra.Command{
	Use:   "company <name>",
	Short: "Add a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddCompany,
}

var addApplicationCmd = &cobra.Command{
	Use:   "application <company-name> <position>",
	Short: "Add a job application at a company",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddApplication,
}

var (
	addCompanyWebsite  string
	addCompanyIndustry string
	addCompanyLocation string
	addLocalOnly       bool

	addAppStage    string
	addAppSalary   string
	addAppLocation string
	addAppURL      string
)

func init() {
	addCompanyCmd.Flags().StringVar(&addCompanyWebsite, "website", "", "company website")
	addCompanyCmd.Flags().StringVar(&addCompanyIndustry, "industry", "", "company industry")
	addCompanyCmd.Flags().StringVar(&addCompanyLocation, "location", "", "company location")
	addCompanyCmd.Flags().BoolVar(&addLocalOnly, "local-only", false, "never sync this record")

	addApplicationCmd.Flags().StringVar(&addAppStage, "stage", models.StageApplied, "application stage")
	addApplicationCmd.Flags().StringVar(&addAppSalary, "salary", "", "salary range")
	addApplicationCmd.Flags().StringVar(&addAppLocation, "location", "", "job location")
	addApplicationCmd.Flags().StringVar(&addAppURL, "url", "", "posting URL")

	addCmd.AddCommand(addCompanyCmd)
	addCmd.AddCommand(addApplicationCmd)
}

func runAddCompany(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	company := &models.Company{
		Name:     args[0],
		Website:  addCompanyWebsite,
		Industry: addCompanyIndustry,
		Location: addCompanyLocation,
	}
	if addLocalOnly {
		company.SyncStatus = models.SyncStatusLocalOnly
	}

	if err := database.CreateCompany(company); err != nil {
		return fmt.Errorf("add company: %w", err)
	}
	fmt.Printf("Added company %q (%s)\n", company.Name, company.ID)
	return nil
}

func runAddApplication(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	companyName, position := args[0], args[1]

	company, err := database.GetCompanyByName(companyName)
	if err != nil {
		return fmt.Errorf("look up company: %w", err)
	}
	if company == nil {
		// Create the company on the fly; common when logging the first
		// application at a new employer.
		company = &models.Company{Name: companyName}
		if err := database.CreateCompany(company); err != nil {
			return fmt.Errorf("create company: %w", err)
		}
	}

	now := time.Now()
	app := &models.Application{
		CompanyID:   &company.ID,
		Position:    position,
		Stage:       addAppStage,
		AppliedAt:   &now,
		SalaryRange: addAppSalary,
		Location:    addAppLocation,
		URL:         addAppURL,
	}
	if err := database.CreateApplication(app); err != nil {
		return fmt.Errorf("add application: %w", err)
	}
	fmt.Printf("Added application %q at %q (%s)\n", position, company.Name, app.ID)
	return nil
}
