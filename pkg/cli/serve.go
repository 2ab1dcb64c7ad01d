package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gatewarden-bot/gatewarden/pkg/cli/config"
	discordctrl "github.com/gatewarden-bot/gatewarden/pkg/controller/discord"
	httpctrl "github.com/gatewarden-bot/gatewarden/pkg/controller/http"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	discordsvc "github.com/gatewarden-bot/gatewarden/pkg/service/discord"
	"github.com/gatewarden-bot/gatewarden/pkg/service/report"
	"github.com/gatewarden-bot/gatewarden/pkg/service/scheduler"
	"github.com/gatewarden-bot/gatewarden/pkg/usecase"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var inactivityDays int
	var expireInterval time.Duration
	var quarantineInterval time.Duration
	var kickInterval time.Duration
	var guildsCfg config.Guilds
	var discordCfg config.Discord
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address for health checks",
			Value:       ":8080",
			Sources:     cli.EnvVars("GATEWARDEN_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "inactivity-days",
			Usage:       "Days a quarantined member may stay without introducing themselves",
			Value:       30,
			Sources:     cli.EnvVars("GATEWARDEN_INACTIVITY_DAYS"),
			Destination: &inactivityDays,
		},
		&cli.DurationFlag{
			Name:        "expire-interval",
			Usage:       "How often to run the message expiry sweep",
			Value:       time.Minute,
			Sources:     cli.EnvVars("GATEWARDEN_EXPIRE_INTERVAL"),
			Destination: &expireInterval,
		},
		&cli.DurationFlag{
			Name:        "quarantine-check-interval",
			Usage:       "How often to run the quarantine drift sweep",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("GATEWARDEN_QUARANTINE_CHECK_INTERVAL"),
			Destination: &quarantineInterval,
		},
		&cli.DurationFlag{
			Name:        "kick-interval",
			Usage:       "How often to run the inactivity kick sweep",
			Value:       time.Hour,
			Sources:     cli.EnvVars("GATEWARDEN_KICK_INTERVAL"),
			Destination: &kickInterval,
		},
	}
	flags = append(flags, guildsCfg.Flags()...)
	flags = append(flags, discordCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Connect to the gateway and run the bot",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := guildsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load guild configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			session, err := discordCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure discord session")
			}

			client := discordsvc.New(session)

			reporters := report.Multi{report.NewDiscord(client, cfg.ErrorsChannel)}
			sentryReporter, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			if sentryReporter != nil {
				defer safe.Close(ctx, sentryReporter)
				reporters = append(reporters, sentryReporter)
				logging.Default().Info("Sentry error tracking enabled")
			}

			uc := usecase.New(repo, client, cfg,
				usecase.WithInactivityLimit(time.Duration(inactivityDays)*24*time.Hour))

			handler := discordctrl.NewHandler(uc, client, reporters)

			// Signal handling drives shutdown of everything below
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler.Bind(ctx, session)

			if err := session.Open(); err != nil {
				return goerr.Wrap(err, "failed to open gateway connection")
			}
			defer safe.Close(ctx, session)
			logging.Default().Info("Connected to gateway", "user_id", client.BotUserID())

			if err := discordctrl.RegisterCommands(ctx, session, configuredGuilds(cfg, client)); err != nil {
				return err
			}

			sched := scheduler.New(reporters)
			sched.Register("expire_messages", expireInterval, uc.ExpireMessages)
			sched.Register("check_quarantine", quarantineInterval, uc.CheckQuarantine)
			sched.Register("kick_inactive", kickInterval, uc.KickInactive)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(),
				ReadHeaderTimeout: 30 * time.Second,
			}

			eg, ctx := errgroup.WithContext(ctx)

			eg.Go(func() error {
				sched.Run(ctx)
				return nil
			})

			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			eg.Go(func() error {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}

// configuredGuilds returns the connected guilds that have configuration.
// Commands are only registered where the bot can actually act.
func configuredGuilds(cfg *model.Config, client interfaces.Discord) []types.GuildID {
	var ids []types.GuildID
	for _, guildID := range client.Guilds() {
		if _, ok := cfg.Guilds[guildID]; ok {
			ids = append(ids, guildID)
		}
	}
	return ids
}
