package main

import (
	"github.com/spf13/cobra"

	"github.com/keyxmakerx/mesto/internal/database"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations from MIGRATIONS_PATH to the MariaDB database and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Connecting to database...")
	db, err := database.NewMariaDB(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	cmd.Println("Running migrations...")
	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		return err
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
