// Package cmd holds the goonj command line.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"goonj/config"
)

var (
	version = "dev"
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "goonj",
	Short: "Registration service for the Goonj festival",
	Long: `goonj serves the festival event catalog, accepts registrations, and runs the
admin dashboard API. Configuration is read from the environment (and .env outside production).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = config.NewLogger(cmd.ErrOrStderr())
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd, exportCmd, catalogCmd, adminCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
