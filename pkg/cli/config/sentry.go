package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/gatewarden-bot/gatewarden/pkg/service/report"
)

// Sentry holds CLI flags for Sentry error tracking
type Sentry struct {
	dsn string
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error tracking (disabled when empty)",
			Category:    "Sentry",
			Sources:     cli.EnvVars("GATEWARDEN_SENTRY_DSN"),
			Destination: &x.dsn,
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.dsn != ""),
	)
}

// Configure creates a Sentry reporter, or returns nil when no DSN is set
func (x *Sentry) Configure(release string) (*report.Sentry, error) {
	if x.dsn == "" {
		return nil, nil
	}
	return report.NewSentry(x.dsn, release)
}
