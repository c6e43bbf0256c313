package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"goonj/config"
	"goonj/internal/repository/postgres"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *sql.DB) error {
			if err := postgres.MigrateUp(db); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if migrateDownSteps <= 0 {
			return fmt.Errorf("--steps must be positive")
		}
		return withDB(func(db *sql.DB) error {
			if err := postgres.MigrateDown(db, migrateDownSteps); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *sql.DB) error { return printVersion(cmd, db) })
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func withDB(fn func(db *sql.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.StoreDriver != config.StorePostgres {
		return fmt.Errorf("migrations only apply to the postgres store, STORE_DRIVER is %q", cfg.StoreDriver)
	}
	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	v, dirty, err := postgres.MigrationVersion(db)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty)\n", v)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
	return nil
}
