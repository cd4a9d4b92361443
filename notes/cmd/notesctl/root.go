package main

import (
	"notes/notes/config"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Configuration is loaded once before any
// subcommand runs.
func newRootCmd() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:           "notesctl",
		Short:         "Operate the notes database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.LoadConfig()
		},
	}

	rootCmd.AddCommand(newMigrateCmd(&cfg), newDSNCmd(&cfg))
	return rootCmd
}
