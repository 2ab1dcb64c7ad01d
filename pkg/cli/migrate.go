package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gatewarden-bot/gatewarden/pkg/cli/config"
	"github.com/gatewarden-bot/gatewarden/pkg/repository/postgres"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/safe"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create or update the PostgreSQL schema",
		Flags:   repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if repoCfg.DSN() == "" {
				return goerr.New("database-dsn is required")
			}

			store, err := postgres.New(ctx, repoCfg.DSN())
			if err != nil {
				return goerr.Wrap(err, "failed to connect to database")
			}
			defer safe.Close(ctx, store)

			if err := store.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to migrate schema")
			}

			logging.Default().Info("Migration completed")
			return nil
		},
	}
}
