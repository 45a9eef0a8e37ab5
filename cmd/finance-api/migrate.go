package main

import (
	"fmt"

	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/database"
	"github.com/deppfellow/finance-api/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var target int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			return database.MigrateTo(cmd.Context(), &log, cfg.Database.DSN(), target)
		},
	}
	cmd.Flags().Int32Var(&target, "to", -1, "schema version to migrate to, latest when negative")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied and latest schema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			status, err := database.Status(cmd.Context(), cfg.Database.DSN())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "current: %d\nlatest: %d\npending: %t\n",
				status.Current, status.Latest, status.Pending())
			return nil
		},
	})

	return cmd
}
