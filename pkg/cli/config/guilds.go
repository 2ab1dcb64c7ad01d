package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
)

// Guilds holds the CLI flag for the per-guild configuration file
type Guilds struct {
	path string
}

// Flags returns the CLI flag for the guild configuration file
func (x *Guilds) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the guild configuration file (TOML)",
			Value:       "gatewarden.toml",
			Sources:     cli.EnvVars("GATEWARDEN_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads and validates the guild configuration file
func (x *Guilds) Configure() (*model.Config, error) {
	data, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", x.path))
	}

	var cfg model.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", x.path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid config file", goerr.V("path", x.path))
	}

	return &cfg, nil
}
