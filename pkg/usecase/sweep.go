package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// kickReason goes into the guild's audit log
const kickReason = "Did not finish onboarding in time"

// CheckQuarantine re-quarantines members who slipped through onboarding:
// anyone with no introduction on record and no quarantine role. Missed join
// events and manually removed roles both surface here. Safe to run repeatedly;
// members already handled are skipped on the next pass.
func (uc *UseCases) CheckQuarantine(ctx context.Context) error {
	return uc.sweepGuilds(ctx, func(ctx context.Context, guildID types.GuildID, cfg *model.GuildConfig, member *discordgo.Member) error {
		if slices.Contains(member.Roles, cfg.QuarantineRole.String()) {
			return nil
		}

		userID := types.UserID(member.User.ID)
		intro, err := uc.repo.Intro().Get(ctx, guildID, userID)
		if err != nil {
			return err
		}
		if intro != nil {
			return nil
		}

		if err := uc.discord.AddRole(ctx, guildID, userID, cfg.QuarantineRole); err != nil {
			return err
		}
		logging.From(ctx).Info("re-quarantined drifted member", "guild_id", guildID, "user_id", userID)

		return uc.publishWelcome(ctx, guildID, cfg, userID)
	})
}

// KickInactive removes members who have been quarantined longer than the
// inactivity limit. They get a farewell DM when one can be delivered, but an
// undeliverable DM never blocks the kick.
func (uc *UseCases) KickInactive(ctx context.Context) error {
	cutoff := uc.now().Add(-uc.inactivityLimit)

	return uc.sweepGuilds(ctx, func(ctx context.Context, guildID types.GuildID, cfg *model.GuildConfig, member *discordgo.Member) error {
		if !slices.Contains(member.Roles, cfg.QuarantineRole.String()) {
			return nil
		}
		if member.JoinedAt.IsZero() || !member.JoinedAt.Before(cutoff) {
			return nil
		}

		userID := types.UserID(member.User.ID)

		guildName, err := uc.discord.GuildName(ctx, guildID)
		if err != nil {
			return err
		}

		farewell := fmt.Sprintf(
			"You have been removed from %s because you didn't introduce yourself. You're welcome to rejoin and introduce yourself whenever you're ready!",
			guildName)
		if err := uc.discord.DirectMessage(ctx, userID, farewell); err != nil {
			logging.From(ctx).Warn("failed to deliver farewell DM",
				"guild_id", guildID, "user_id", userID, "error", err)
		}

		if err := uc.discord.Kick(ctx, guildID, userID, kickReason); err != nil {
			return err
		}
		logging.From(ctx).Info("kicked inactive member", "guild_id", guildID, "user_id", userID)

		return uc.deleteWelcome(ctx, guildID, userID)
	})
}

// sweepGuilds applies fn to every non-bot member of every guild that is both
// connected and configured. Connected guilds without configuration are left
// untouched.
func (uc *UseCases) sweepGuilds(ctx context.Context, fn func(ctx context.Context, guildID types.GuildID, cfg *model.GuildConfig, member *discordgo.Member) error) error {
	for _, guildID := range uc.discord.Guilds() {
		cfg, err := uc.config.Guild(guildID)
		if err != nil {
			if errors.Is(err, types.ErrNoGuildConfig) {
				logging.From(ctx).Warn("connected to unconfigured guild", "guild_id", guildID)
				continue
			}
			return err
		}

		for member, err := range uc.discord.Members(ctx, guildID) {
			if err != nil {
				return err
			}
			if member.User == nil || member.User.Bot {
				continue
			}
			if err := fn(ctx, guildID, cfg, member); err != nil {
				return err
			}
		}
	}
	return nil
}
