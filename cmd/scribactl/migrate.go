package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/scriba-server/database"
	"github.com/dtroode/scriba-server/internal/config"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Run all pending database migrations against the database named by DATABASE_DSN.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	cmd.Println("Running migrations...")
	if err := database.Migrate(cmd.Context(), cfg.Database.DSN); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
