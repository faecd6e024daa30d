// Package cmd implements the simulation-copilot command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/config"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "simulation-copilot",
	Short: "Relational store and Prosimos adapters for business process simulation models",
}

// Execute runs the CLI. Errors are printed by cobra; a non-nil return
// maps to a non-zero exit code in main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runCmd)
}

// bootstrap loads .env (when present), the configuration, and a logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logger *zap.Logger
	if cfg.Env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, logger, nil
}

// connect opens the connection pool described by the configuration.
func connect(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func fileMustExist(path, what string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s not found at %s: %w", what, path, err)
	}
	return nil
}
