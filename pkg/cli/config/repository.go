package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/repository/memory"
	"github.com/gatewarden-bot/gatewarden/pkg/repository/postgres"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend string
	dsn     string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (postgres or memory)",
			Category:    "Repository",
			Value:       "postgres",
			Sources:     cli.EnvVars("GATEWARDEN_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "database-dsn",
			Usage:       "PostgreSQL connection string (required when using postgres backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("GATEWARDEN_DATABASE_DSN"),
			Destination: &r.dsn,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.Int("dsn.len", len(r.dsn)),
	)
}

// DSN returns the PostgreSQL connection string
func (r *Repository) DSN() string {
	return r.dsn
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "postgres":
		if r.dsn == "" {
			return nil, goerr.New("database-dsn is required when using postgres backend")
		}
		repo, err := postgres.New(ctx, r.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize postgres repository")
		}
		logging.Default().Info("Using PostgreSQL repository")
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
