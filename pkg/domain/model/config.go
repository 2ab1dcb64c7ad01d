package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// GuildConfig is the per-guild configuration. Every guild the bot operates on
// must have one; absence is a configuration error, not a crash.
type GuildConfig struct {
	QuarantineRole    types.RoleID    `toml:"quarantine_role"`
	QuarantineChannel types.ChannelID `toml:"quarantine_channel"`
	IntrosChannel     types.ChannelID `toml:"intros_channel"`
}

// AutoDeleteRule expires messages older than MaxAge from a channel
type AutoDeleteRule struct {
	Channel types.ChannelID `toml:"channel"`
	MaxAge  Duration        `toml:"max_age"`
}

// Config is the bot-wide configuration loaded from the TOML config file
type Config struct {
	ErrorsChannel types.ChannelID               `toml:"errors_channel"`
	Guilds        map[types.GuildID]GuildConfig `toml:"guilds"`
	AutoDelete    []AutoDeleteRule              `toml:"auto_delete"`
}

// Guild returns the configuration for the given guild.
// Wraps types.ErrNoGuildConfig when the guild is not configured.
func (c *Config) Guild(id types.GuildID) (*GuildConfig, error) {
	cfg, ok := c.Guilds[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrNoGuildConfig, "guild is not configured", goerr.V("guild_id", id))
	}
	return &cfg, nil
}

// Validate checks all IDs in the configuration
func (c *Config) Validate() error {
	if err := c.ErrorsChannel.Validate(); err != nil {
		return goerr.Wrap(err, "errors_channel")
	}
	for guildID, guild := range c.Guilds {
		if err := guildID.Validate(); err != nil {
			return goerr.Wrap(err, "guild key")
		}
		if err := guild.QuarantineRole.Validate(); err != nil {
			return goerr.Wrap(err, "quarantine_role", goerr.V("guild_id", guildID))
		}
		if err := guild.QuarantineChannel.Validate(); err != nil {
			return goerr.Wrap(err, "quarantine_channel", goerr.V("guild_id", guildID))
		}
		if err := guild.IntrosChannel.Validate(); err != nil {
			return goerr.Wrap(err, "intros_channel", goerr.V("guild_id", guildID))
		}
	}
	for i, rule := range c.AutoDelete {
		if err := rule.Channel.Validate(); err != nil {
			return goerr.Wrap(err, "auto_delete channel", goerr.V("index", i))
		}
		if rule.MaxAge.Duration() <= 0 {
			return goerr.New("auto_delete max_age must be positive", goerr.V("index", i))
		}
	}
	return nil
}

// Duration wraps time.Duration so it can be written as "72h" in TOML
type Duration time.Duration

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return goerr.Wrap(err, "invalid duration", goerr.V("value", string(text)))
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the wrapped time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
