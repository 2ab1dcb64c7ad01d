package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/usecase"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

const (
	commandIntro  = "intro"
	commandSyncDB = "onboarding_sync_db"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	dmDenied := false

	return []*discordgo.ApplicationCommand{
		{
			Name:         commandIntro,
			Description:  "Edit your introduction",
			DMPermission: &dmDenied,
		},
		{
			Name:                     commandSyncDB,
			Description:              "Reconcile the introduction database with the intros channel",
			DMPermission:             &dmDenied,
			DefaultMemberPermissions: &adminOnly,
		},
	}
}

// RegisterCommands overwrites the command set in every configured guild the
// session is connected to. Guild-scoped registration propagates instantly,
// unlike global commands.
func RegisterCommands(ctx context.Context, session *discordgo.Session, guildIDs []types.GuildID) error {
	appID := session.State.User.ID
	commands := commandDefinitions()

	for _, guildID := range guildIDs {
		_, err := session.ApplicationCommandBulkOverwrite(appID, guildID.String(), commands, discordgo.WithContext(ctx))
		if err != nil {
			return goerr.Wrap(err, "failed to register commands", goerr.V("guild_id", guildID))
		}
		logging.From(ctx).Info("registered guild commands", "guild_id", guildID)
	}
	return nil
}

func (h *Handler) handleCommand(ctx context.Context, interaction *discordgo.Interaction) error {
	switch name := interaction.ApplicationCommandData().Name; name {
	case commandIntro:
		return h.handleIntroCommand(ctx, interaction)
	case commandSyncDB:
		return h.handleSyncCommand(ctx, interaction)
	default:
		return goerr.Wrap(types.ErrUnhandledInteraction, "unknown command", goerr.V("name", name))
	}
}

// handleIntroCommand opens the introduction modal, prefilled from the
// member's published introduction when one exists. A malformed published
// message only costs the prefill, never the modal.
func (h *Handler) handleIntroCommand(ctx context.Context, interaction *discordgo.Interaction) error {
	if interaction.Member == nil || interaction.Member.User == nil {
		return goerr.New("command used outside a guild", goerr.V("interaction_id", interaction.ID))
	}

	guildID := types.GuildID(interaction.GuildID)
	userID := types.UserID(interaction.Member.User.ID)

	prefill := h.publishedIntro(ctx, guildID, userID)
	return h.client.RespondModal(ctx, interaction, introModal(types.InteractionIntroSlashModal, prefill))
}

func (h *Handler) publishedIntro(ctx context.Context, guildID types.GuildID, userID types.UserID) *model.Intro {
	msg, err := h.uc.IntroFor(ctx, guildID, userID)
	if err != nil || msg == nil {
		if err != nil {
			logging.From(ctx).Warn("failed to load published intro", "error", err)
		}
		return nil
	}

	intro, err := usecase.IntroFromMessage(msg)
	if err != nil {
		logging.From(ctx).Warn("published intro is not parseable", "message_id", msg.ID, "error", err)
		return nil
	}
	return intro
}

func (h *Handler) handleSyncCommand(ctx context.Context, interaction *discordgo.Interaction) error {
	result, err := h.uc.SyncIntros(ctx, types.GuildID(interaction.GuildID))
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Sync complete: %d rows added, %d rows deleted.", result.Added, result.Deleted)
	return h.client.RespondEphemeral(ctx, interaction, summary)
}
