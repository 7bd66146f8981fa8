package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/squad-to-scale-migrator/internal/config"
)

// Global flags
var files config.Files

var rootCmd = &cobra.Command{
	Use:   "squad2scale",
	Short: "Migrate Zephyr Squad test data to Zephyr Scale",
	Long: `Migrates the test cases, test steps, test executions and attachments
of Zephyr Squad projects into Zephyr Scale, on the same Jira Server or Data Center.

Settings are read from app.properties and database.properties, and can be
overridden with SQUAD2SCALE_* environment variables or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addFileFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(migrateCmd)
}

func addFileFlags(flags *pflag.FlagSet) {
	flags.StringVar(&files.App, "config", "app.properties", "Path to the application properties")
	flags.StringVar(&files.Database, "database-config", "database.properties", "Path to the database properties")
	flags.StringVar(&files.Env, "env-file", ".env", "Path to a .env file")
}
