package usecase

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// SyncResult summarizes one database/channel reconciliation
type SyncResult struct {
	Added   int
	Deleted int
}

// SyncIntros rebuilds the intro cache from the intros channel. The channel is
// the source of truth: bot-authored embed messages mentioning exactly one user
// are treated as that user's introduction. Rows with no matching message are
// dropped, messages with no matching row are recorded. Discord itself is
// never mutated.
func (uc *UseCases) SyncIntros(ctx context.Context, guildID types.GuildID) (*SyncResult, error) {
	cfg, err := uc.config.Guild(guildID)
	if err != nil {
		return nil, err
	}

	published, err := uc.publishedIntros(ctx, cfg.IntrosChannel)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.Intro().GetAll(ctx, guildID)
	if err != nil {
		return nil, err
	}
	recorded := make(map[types.UserID]model.MessageRef, len(entries))
	for _, entry := range entries {
		recorded[entry.User] = entry.Ref
	}

	result := &SyncResult{}

	for userID, ref := range published {
		if _, ok := recorded[userID]; ok {
			continue
		}
		if err := uc.repo.Intro().Set(ctx, guildID, userID, ref); err != nil {
			return nil, err
		}
		logging.From(ctx).Info("recorded uncached introduction",
			"guild_id", guildID, "user_id", userID, "message_id", ref.Message)
		result.Added++
	}

	for userID := range recorded {
		if _, ok := published[userID]; ok {
			continue
		}
		if err := uc.repo.Intro().Delete(ctx, guildID, userID); err != nil {
			return nil, err
		}
		logging.From(ctx).Info("dropped orphaned intro row", "guild_id", guildID, "user_id", userID)
		result.Deleted++
	}

	return result, nil
}

// publishedIntros walks the full channel history, newest first, and keeps the
// newest introduction per user.
func (uc *UseCases) publishedIntros(ctx context.Context, channelID types.ChannelID) (map[types.UserID]model.MessageRef, error) {
	botID := uc.discord.BotUserID()
	intros := map[types.UserID]model.MessageRef{}

	before := types.MessageID("")
	for {
		page, err := uc.discord.MessagesBefore(ctx, channelID, before, 100)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return intros, nil
		}

		for _, msg := range page {
			if userID, ok := introAuthor(msg, botID); ok {
				if _, seen := intros[userID]; !seen {
					intros[userID] = model.MessageRef{
						Channel: channelID,
						Message: types.MessageID(msg.ID),
					}
				}
			}
		}
		before = types.MessageID(page[len(page)-1].ID)
	}
}

// introAuthor identifies an introduction message and the member it belongs to
func introAuthor(msg *discordgo.Message, botID types.UserID) (types.UserID, bool) {
	if msg.Author == nil || types.UserID(msg.Author.ID) != botID {
		return "", false
	}
	if len(msg.Embeds) == 0 {
		return "", false
	}
	if len(msg.Mentions) != 1 {
		return "", false
	}
	return types.UserID(msg.Mentions[0].ID), true
}
