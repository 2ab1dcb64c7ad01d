package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/usecase"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/async"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// Handler connects gateway events to the onboarding use cases. Every event
// callback returns immediately; the work happens on a dispatched goroutine
// because discordgo serializes handler invocations per event type.
type Handler struct {
	uc       *usecase.UseCases
	client   interfaces.Discord
	reporter interfaces.Reporter
}

func NewHandler(uc *usecase.UseCases, client interfaces.Discord, reporter interfaces.Reporter) *Handler {
	return &Handler{
		uc:       uc,
		client:   client,
		reporter: reporter,
	}
}

// Bind registers the gateway event handlers on the session
func (h *Handler) Bind(ctx context.Context, session *discordgo.Session) {
	session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.uc.HandleMemberJoin(ctx, e.Member)
		})
	})

	session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.uc.HandleMemberLeave(ctx, types.GuildID(e.GuildID), types.UserID(e.User.ID))
		})
	})

	session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberUpdate) {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.uc.HandleMemberUpdate(ctx, e.Member)
		})
	})

	session.AddHandler(func(s *discordgo.Session, e *discordgo.InteractionCreate) {
		async.Dispatch(ctx, func(ctx context.Context) error {
			h.handleInteraction(ctx, e.Interaction)
			return nil
		})
	})
}

func (h *Handler) handleInteraction(ctx context.Context, interaction *discordgo.Interaction) {
	if err := h.dispatchInteraction(ctx, interaction); err != nil {
		h.reportInteractionError(ctx, interaction, err)
	}
}

func (h *Handler) dispatchInteraction(ctx context.Context, interaction *discordgo.Interaction) error {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		return h.handleCommand(ctx, interaction)

	case discordgo.InteractionMessageComponent:
		kind, err := types.ParseInteractionKind(interaction.MessageComponentData().CustomID)
		if err != nil {
			return err
		}
		return h.handleComponent(ctx, interaction, kind)

	case discordgo.InteractionModalSubmit:
		kind, err := types.ParseInteractionKind(interaction.ModalSubmitData().CustomID)
		if err != nil {
			return err
		}
		return h.handleModalSubmit(ctx, interaction, kind)

	default:
		return goerr.Wrap(types.ErrUnhandledInteraction, "unexpected interaction type",
			goerr.V("type", interaction.Type))
	}
}

func (h *Handler) handleComponent(ctx context.Context, interaction *discordgo.Interaction, kind types.InteractionKind) error {
	switch kind {
	case types.InteractionIntroButton:
		return h.client.RespondModal(ctx, interaction,
			introModal(types.InteractionIntroQuarantineModal, nil))
	default:
		return goerr.Wrap(types.ErrUnhandledInteraction, "unexpected component",
			goerr.V("kind", kind))
	}
}

func (h *Handler) handleModalSubmit(ctx context.Context, interaction *discordgo.Interaction, kind types.InteractionKind) error {
	intro, err := introFromModal(interaction)
	if err != nil {
		return err
	}

	switch kind {
	case types.InteractionIntroQuarantineModal:
		return h.uc.SubmitQuarantineIntro(ctx, interaction, intro)
	case types.InteractionIntroSlashModal:
		return h.uc.SubmitSlashIntro(ctx, interaction, intro)
	default:
		return goerr.Wrap(types.ErrUnhandledInteraction, "unexpected modal",
			goerr.V("kind", kind))
	}
}

// reportInteractionError shows the member a short apology with a report ID
// and ships the technical detail to the operators. The apology itself is
// best-effort: the interaction may already have been responded to.
func (h *Handler) reportInteractionError(ctx context.Context, interaction *discordgo.Interaction, err error) {
	reportID := uuid.NewString()

	apology := fmt.Sprintf("%s (report %s)", usecase.ApologyContent, reportID)
	if respondErr := h.client.RespondEphemeral(ctx, interaction, apology); respondErr != nil {
		logging.From(ctx).Warn("failed to deliver apology", "report_id", reportID, "error", respondErr)
	}

	h.reporter.ReportInteractionError(ctx, reportID, interaction, err)
}
