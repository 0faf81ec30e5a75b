package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/accounthub/accounts-api/internal/config"
	"github.com/accounthub/accounts-api/internal/platform/logger"
)

// migrateCmd groups the schema migration subcommands.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := migrationDatabase()
		if err != nil {
			return err
		}
		defer closeDatabase(db, log)

		return runMigrations(db, log)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied/pending state of all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := migrationDatabase()
		if err != nil {
			return err
		}
		defer closeDatabase(db, log)

		return migrationStatus(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

// migrationDatabase opens a database connection for the migration commands
// using the same configuration path as the server.
func migrationDatabase() (db *sql.DB, log *slog.Logger, err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err = logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err = openDatabase(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}
