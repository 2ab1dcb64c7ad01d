package report

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
)

// Sentry forwards errors to a Sentry project, tagged with their origin
type Sentry struct {
	hub *sentry.Hub
}

var _ interfaces.Reporter = &Sentry{}

// NewSentry initializes the Sentry client for the given DSN
func NewSentry(dsn, release string) (*Sentry, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry client")
	}

	return &Sentry{
		hub: sentry.NewHub(client, sentry.NewScope()),
	}, nil
}

// ReportTaskError captures a background task failure
func (r *Sentry) ReportTaskError(ctx context.Context, taskName string, err error) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("origin", "task")
		scope.SetTag("task", taskName)
		r.hub.CaptureException(err)
	})
}

// ReportInteractionError captures a command/interaction failure
func (r *Sentry) ReportInteractionError(ctx context.Context, reportID string, interaction *discordgo.Interaction, err error) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("origin", "interaction")
		scope.SetTag("report_id", reportID)
		if interaction != nil {
			scope.SetTag("guild_id", interaction.GuildID)
		}
		r.hub.CaptureException(err)
	})
}

// Close flushes buffered events
func (r *Sentry) Close() error {
	r.hub.Flush(2 * time.Second)
	return nil
}
