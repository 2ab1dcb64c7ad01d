package report

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
)

// Multi fans a report out to every configured sink
type Multi []interfaces.Reporter

var _ interfaces.Reporter = Multi{}

// NewMulti bundles reporters into one
func NewMulti(reporters ...interfaces.Reporter) Multi {
	return Multi(reporters)
}

// ReportTaskError forwards to every sink
func (m Multi) ReportTaskError(ctx context.Context, taskName string, err error) {
	for _, r := range m {
		r.ReportTaskError(ctx, taskName, err)
	}
}

// ReportInteractionError forwards to every sink
func (m Multi) ReportInteractionError(ctx context.Context, reportID string, interaction *discordgo.Interaction, err error) {
	for _, r := range m {
		r.ReportInteractionError(ctx, reportID, interaction, err)
	}
}
