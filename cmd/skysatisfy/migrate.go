package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/skysatisfy/skysatisfy/internal/infrastructure/postgres"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the prediction log schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			url := a.cfg.DatabaseURL
			if url == "" {
				return errors.New("no database configured: set --database-url or DATABASE_URL")
			}

			a.logger.Info("running migrations", "direction", args[0])
			switch args[0] {
			case "up":
				return postgres.RunMigrations(url)
			case "down":
				return postgres.RunMigrationsDown(url)
			default:
				return errors.New(`direction must be "up" or "down"`)
			}
		},
	}
	cmd.Flags().String("database-url", "", "Postgres connection URL")
	return cmd
}
