package report

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// Discord posts operator error reports to the configured errors channel.
// Reporting is best-effort: a failure to deliver is logged, never returned.
type Discord struct {
	client  interfaces.Discord
	channel types.ChannelID
}

var _ interfaces.Reporter = &Discord{}

// NewDiscord creates a reporter posting to the given errors channel
func NewDiscord(client interfaces.Discord, channel types.ChannelID) *Discord {
	return &Discord{client: client, channel: channel}
}

// ReportTaskError posts a background task failure tagged with the task name
func (r *Discord) ReportTaskError(ctx context.Context, taskName string, err error) {
	logging.From(ctx).Error("background task error", "task", taskName, "error", err)

	header := fmt.Sprintf("**Background task error**\n`%s`\n", taskName)
	r.post(ctx, header, err)
}

// ReportInteractionError posts a command/interaction failure with the report
// ID that was shown to the user
func (r *Discord) ReportInteractionError(ctx context.Context, reportID string, interaction *discordgo.Interaction, err error) {
	logging.From(ctx).Error("interaction error", "report_id", reportID, "error", err)

	header := fmt.Sprintf("**Command error** `%s`\n%s\n", reportID, interactionSummary(interaction))
	r.post(ctx, header, err)
}

func (r *Discord) post(ctx context.Context, header string, err error) {
	limit := messageCodeLimit - len([]rune(header))
	text := header + codeBlockTruncated(limit, errorDetail(err))

	if _, sendErr := r.client.SendMessage(ctx, r.channel, &discordgo.MessageSend{Content: text}); sendErr != nil {
		logging.From(ctx).Error("failed to deliver error report", "error", sendErr)
	}
}
