package main

import (
	"fmt"

	"notes/notes/config"

	"github.com/spf13/cobra"
)

func newDSNCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dsn",
		Short: "Print the connection string with the password hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cfg.RedactedConnectionString())
			return nil
		},
	}
}
