package cmd

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for golang-migrate
	"github.com/spf13/cobra"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		db, err := sql.Open("pgx", cfg.Database.URL())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		return database.RunMigrations(db, cfg.MigrationsPath, logger)
	},
}
