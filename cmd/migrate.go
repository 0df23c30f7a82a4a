package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podbrief/summary-api/internal/database"
	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the PodBrief Summary API.

Available subcommands:
  up      - Bring the schema up to date
  status  - Show which tables exist`,
}

// migrateUpCmd applies pending schema changes
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring the schema up to date",
	Long: `Create or alter the job and budget tables to match the current models.

Safe to run repeatedly; existing data is preserved.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows schema status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Job{}, &models.BudgetPeriod{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n\n", cfg.Database.Path)

	migrator := db.DB.Migrator()
	for _, model := range []interface{}{&models.Job{}, &models.BudgetPeriod{}} {
		status := "missing"
		if migrator.HasTable(model) {
			status = "present"
		}
		fmt.Fprintf(out, "  %-16T %s\n", model, status)
	}

	return nil
}
