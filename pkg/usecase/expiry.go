package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

const (
	expiryPageSize = 100

	// Discord rejects bulk deletion of messages older than two weeks.
	// The padding absorbs clock skew between us and the API.
	maxBulkDeleteAge     = 14 * 24 * time.Hour
	bulkDeleteAgePadding = time.Minute
)

// ExpireMessages deletes messages older than each auto-delete rule's maximum
// age. Each pass drains one rule's backlog page by page, always working from
// the oldest end of the channel.
func (uc *UseCases) ExpireMessages(ctx context.Context) error {
	now := uc.now()

	for _, rule := range uc.config.AutoDelete {
		cutoff := now.Add(-rule.MaxAge.Duration())

		for {
			page, err := uc.discord.MessagesAfter(ctx, rule.Channel, types.MessageID("0"), expiryPageSize)
			if err != nil {
				return err
			}

			sort.Slice(page, func(i, j int) bool {
				return page[i].Timestamp.Before(page[j].Timestamp)
			})

			// The page is ordered oldest first, so everything expired
			// forms a prefix.
			n := sort.Search(len(page), func(i int) bool {
				return !page[i].Timestamp.Before(cutoff)
			})
			if n == 0 {
				break
			}

			if err := uc.deleteExpired(ctx, rule.Channel, page[:n], now); err != nil {
				return err
			}
			logging.From(ctx).Info("expired messages", "channel_id", rule.Channel, "count", n)

			// A partial prefix means the rest of the channel is still young
			if n < len(page) {
				break
			}
		}
	}
	return nil
}

// deleteExpired removes an ascending-ordered batch of messages. Messages too
// old for the platform's bulk endpoint go one by one; the remainder goes in a
// single bulk call.
func (uc *UseCases) deleteExpired(ctx context.Context, channelID types.ChannelID, batch []*discordgo.Message, now time.Time) error {
	bulkFloor := now.Add(-(maxBulkDeleteAge - bulkDeleteAgePadding))

	split := sort.Search(len(batch), func(i int) bool {
		return !batch[i].Timestamp.Before(bulkFloor)
	})

	for _, msg := range batch[:split] {
		if err := uc.discord.DeleteMessage(ctx, channelID, types.MessageID(msg.ID)); err != nil {
			return err
		}
	}

	ids := make([]types.MessageID, 0, len(batch)-split)
	for _, msg := range batch[split:] {
		ids = append(ids, types.MessageID(msg.ID))
	}
	return uc.discord.DeleteMessages(ctx, channelID, ids)
}
