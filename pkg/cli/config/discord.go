package config

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Discord holds CLI flags for the gateway connection
type Discord struct {
	token string
}

// Flags returns CLI flags for the Discord connection
func (x *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-token",
			Usage:       "Discord bot token (required)",
			Category:    "Discord",
			Required:    true,
			Sources:     cli.EnvVars("GATEWARDEN_DISCORD_TOKEN"),
			Destination: &x.token,
		},
	}
}

func (x Discord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
	)
}

// Configure creates a gateway session with the intents the bot needs. The
// session is not opened; the caller opens it once handlers are bound.
func (x *Discord) Configure() (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + x.token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create discord session")
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages

	return session, nil
}
