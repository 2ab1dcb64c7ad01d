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

// HandleMemberJoin quarantines a new member and greets them in the quarantine
// channel. Members with an introduction already on record are left alone, so
// a rejoin after a kick or a gateway replay does not re-quarantine them.
func (uc *UseCases) HandleMemberJoin(ctx context.Context, member *discordgo.Member) error {
	if member.User == nil || member.User.Bot {
		return nil
	}

	guildID := types.GuildID(member.GuildID)
	userID := types.UserID(member.User.ID)

	cfg, err := uc.config.Guild(guildID)
	if err != nil {
		return err
	}

	intro, err := uc.repo.Intro().Get(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if intro != nil {
		logging.From(ctx).Info("member already introduced, skipping quarantine",
			"guild_id", guildID, "user_id", userID)
		return nil
	}

	if err := uc.discord.AddRole(ctx, guildID, userID, cfg.QuarantineRole); err != nil {
		return err
	}
	logging.From(ctx).Info("quarantined member", "guild_id", guildID, "user_id", userID)

	return uc.publishWelcome(ctx, guildID, cfg, userID)
}

// HandleMemberLeave cleans up the welcome message of a departing member.
// Both the remote message and the cache row may already be gone.
func (uc *UseCases) HandleMemberLeave(ctx context.Context, guildID types.GuildID, userID types.UserID) error {
	return uc.deleteWelcome(ctx, guildID, userID)
}

// HandleMemberUpdate re-renders the member's published introduction so the
// embed keeps tracking their current avatar. No introduction, no work.
func (uc *UseCases) HandleMemberUpdate(ctx context.Context, member *discordgo.Member) error {
	if member.User == nil || member.User.Bot {
		return nil
	}

	guildID := types.GuildID(member.GuildID)
	userID := types.UserID(member.User.ID)

	msg, err := uc.IntroFor(ctx, guildID, userID)
	if err != nil || msg == nil {
		return err
	}

	intro, err := IntroFromMessage(msg)
	if err != nil {
		return err
	}

	_, err = uc.discord.EditMessage(ctx, types.ChannelID(msg.ChannelID), types.MessageID(msg.ID),
		introEdit(member.User, intro))
	return err
}

// publishWelcome sends the welcome message and records it. An existing cache
// row means an earlier publish succeeded and the call is a no-op, which makes
// the drift sweep safe to run repeatedly.
func (uc *UseCases) publishWelcome(ctx context.Context, guildID types.GuildID, cfg *model.GuildConfig, userID types.UserID) error {
	existing, err := uc.repo.Welcome().Get(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	visible, err := uc.discord.CanViewChannel(ctx, cfg.QuarantineChannel, userID)
	if err != nil {
		return err
	}
	if !visible {
		return goerr.Wrap(types.ErrMissingPermission, "member cannot view the quarantine channel",
			goerr.V("guild_id", guildID),
			goerr.V("channel_id", cfg.QuarantineChannel),
			goerr.V("user_id", userID))
	}

	guildName, err := uc.discord.GuildName(ctx, guildID)
	if err != nil {
		return err
	}

	msg, err := uc.discord.SendMessage(ctx, cfg.QuarantineChannel, welcomeMessage(guildName, userID))
	if err != nil {
		return err
	}

	return uc.repo.Welcome().Set(ctx, guildID, userID, model.MessageRef{
		Channel: cfg.QuarantineChannel,
		Message: types.MessageID(msg.ID),
	})
}

// deleteWelcome removes the welcome message and its cache row. A message
// already deleted on the platform is not an error; the row is removed either
// way so the cache never outlives the message.
func (uc *UseCases) deleteWelcome(ctx context.Context, guildID types.GuildID, userID types.UserID) error {
	ref, err := uc.repo.Welcome().Get(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if ref == nil {
		return nil
	}

	if err := uc.discord.DeleteMessage(ctx, ref.Channel, ref.Message); err != nil && !errors.Is(err, types.ErrNotFound) {
		return err
	}

	if err := uc.repo.Welcome().Delete(ctx, guildID, userID); err != nil && !errors.Is(err, types.ErrEntryNotFound) {
		return err
	}
	return nil
}
