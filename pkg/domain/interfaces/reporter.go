package interfaces

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Reporter forwards failure detail to operators. Implementations must never
// return the failure to end users; reporting is itself best-effort and only
// logs when it cannot deliver.
type Reporter interface {
	// ReportTaskError reports a background job failure tagged with the job name
	ReportTaskError(ctx context.Context, taskName string, err error)

	// ReportInteractionError reports a command/interaction failure. reportID
	// correlates the operator report with the apology shown to the user.
	ReportInteractionError(ctx context.Context, reportID string, interaction *discordgo.Interaction, err error)
}
