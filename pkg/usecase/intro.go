package usecase

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// SubmitQuarantineIntro handles an introduction submitted from the welcome
// message. The member is acked first so the modal closes promptly, then their
// introduction is published and they are released from quarantine.
func (uc *UseCases) SubmitQuarantineIntro(ctx context.Context, interaction *discordgo.Interaction, intro *model.Intro) error {
	member, guildID, err := interactionMember(interaction)
	if err != nil {
		return err
	}
	userID := types.UserID(member.User.ID)

	cfg, err := uc.config.Guild(guildID)
	if err != nil {
		return err
	}

	if err := uc.discord.RespondEphemeral(ctx, interaction, ackContent); err != nil {
		return err
	}

	if _, err := uc.publishIntro(ctx, guildID, cfg, member.User, intro); err != nil {
		return err
	}

	if err := uc.discord.RemoveRole(ctx, guildID, userID, cfg.QuarantineRole); err != nil {
		return err
	}
	logging.From(ctx).Info("released member from quarantine", "guild_id", guildID, "user_id", userID)

	if err := uc.discord.DeleteResponse(ctx, interaction); err != nil {
		logging.From(ctx).Warn("failed to delete ack response", "error", err)
	}

	return uc.deleteWelcome(ctx, guildID, userID)
}

// SubmitSlashIntro handles an introduction submitted via the /intro command
// and replies with a link to the published message.
func (uc *UseCases) SubmitSlashIntro(ctx context.Context, interaction *discordgo.Interaction, intro *model.Intro) error {
	member, guildID, err := interactionMember(interaction)
	if err != nil {
		return err
	}

	cfg, err := uc.config.Guild(guildID)
	if err != nil {
		return err
	}

	ref, err := uc.publishIntro(ctx, guildID, cfg, member.User, intro)
	if err != nil {
		return err
	}

	return uc.discord.Respond(ctx, interaction, "Introduction updated "+messageURL(guildID, ref))
}

// IntroFor returns the member's published introduction message, or nil if
// they have none. A cache row pointing at a message deleted on the platform
// is stale and is dropped on the way out.
func (uc *UseCases) IntroFor(ctx context.Context, guildID types.GuildID, userID types.UserID) (*discordgo.Message, error) {
	ref, err := uc.repo.Intro().Get(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}

	msg, err := uc.discord.Message(ctx, ref.Channel, ref.Message)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			logging.From(ctx).Info("dropping stale intro cache row",
				"guild_id", guildID, "user_id", userID, "message_id", ref.Message)
			if delErr := uc.repo.Intro().Delete(ctx, guildID, userID); delErr != nil && !errors.Is(delErr, types.ErrEntryNotFound) {
				return nil, delErr
			}
			return nil, nil
		}
		return nil, err
	}
	return msg, nil
}

// publishIntro edits the member's existing introduction in place, or sends a
// new one and records it. The send happens before the cache insert; a crash
// between the two leaves an uncached message that the sync sweep picks up.
func (uc *UseCases) publishIntro(ctx context.Context, guildID types.GuildID, cfg *model.GuildConfig, user *discordgo.User, intro *model.Intro) (*model.MessageRef, error) {
	ref, err := uc.repo.Intro().Get(ctx, guildID, types.UserID(user.ID))
	if err != nil {
		return nil, err
	}

	if ref != nil {
		if _, err := uc.discord.EditMessage(ctx, ref.Channel, ref.Message, introEdit(user, intro)); err != nil {
			return nil, err
		}
		return ref, nil
	}

	msg, err := uc.discord.SendMessage(ctx, cfg.IntrosChannel, introMessage(user, intro))
	if err != nil {
		return nil, err
	}

	newRef := model.MessageRef{
		Channel: cfg.IntrosChannel,
		Message: types.MessageID(msg.ID),
	}
	if err := uc.repo.Intro().Set(ctx, guildID, types.UserID(user.ID), newRef); err != nil {
		return nil, err
	}
	return &newRef, nil
}

func interactionMember(interaction *discordgo.Interaction) (*discordgo.Member, types.GuildID, error) {
	if interaction.Member == nil || interaction.Member.User == nil {
		return nil, "", goerr.New("interaction has no member", goerr.V("interaction_id", interaction.ID))
	}
	if interaction.GuildID == "" {
		return nil, "", goerr.New("interaction has no guild", goerr.V("interaction_id", interaction.ID))
	}
	member := interaction.Member
	member.GuildID = interaction.GuildID
	return member, types.GuildID(interaction.GuildID), nil
}
