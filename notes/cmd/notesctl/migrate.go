package main

import (
	"context"
	"fmt"
	"time"

	"notes/notes/config"
	"notes/notes/sources/psql"
	"notes/notes/utils/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the notes schema if it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logging.InitLogger(cfg.LogDir); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			defer logging.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			// NewDatabase creates the schema as part of connecting.
			db, err := psql.NewDatabase(ctx, *cfg)
			if err != nil {
				logging.ErrorLogger.Error("migration failed", zap.Error(err))
				return err
			}
			db.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for the database")
	return cmd
}
