package usecase_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/gt"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

func introLikeEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Fields: []*discordgo.MessageEmbedField{
			{Name: model.LabelAboutMe, Value: "text"},
			{Name: model.LabelPolyamoryExperience, Value: "text"},
		},
	}
}

func TestSyncIntros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	botID := f.discord.BotUserID()

	// Published but never recorded: gets a row
	uncached := f.discord.addMessage(testIntros, botID, f.now, []types.UserID{"50"}, introLikeEmbed())

	// Published and recorded: untouched
	matched := f.discord.addMessage(testIntros, botID, f.now, []types.UserID{"51"}, introLikeEmbed())
	gt.NoError(t, f.repo.Intro().Set(ctx, testGuild, "51",
		model.MessageRef{Channel: testIntros, Message: types.MessageID(matched.ID)}))

	// Recorded but long deleted from the channel: row dropped
	gt.NoError(t, f.repo.Intro().Set(ctx, testGuild, "52",
		model.MessageRef{Channel: testIntros, Message: "40400"}))

	// Chatter in the channel is not an introduction
	f.discord.addMessage(testIntros, "53", f.now, []types.UserID{"53"}, introLikeEmbed()) // not the bot
	f.discord.addMessage(testIntros, botID, f.now, []types.UserID{"54"})                  // no embed
	f.discord.addMessage(testIntros, botID, f.now, nil, introLikeEmbed())                 // no mention
	f.discord.addMessage(testIntros, botID, f.now, []types.UserID{"55", "56"}, introLikeEmbed())

	result, err := f.uc.SyncIntros(ctx, testGuild)
	gt.NoError(t, err).Required()

	gt.Value(t, result.Added).Equal(1)
	gt.Value(t, result.Deleted).Equal(1)

	ref, err := f.repo.Intro().Get(ctx, testGuild, "50")
	gt.NoError(t, err)
	gt.Value(t, ref).NotNil()
	gt.Value(t, ref.Message).Equal(types.MessageID(uncached.ID))

	gone, err := f.repo.Intro().Get(ctx, testGuild, "52")
	gt.NoError(t, err)
	gt.Value(t, gone).Nil()

	// Discord itself was never touched
	gt.Array(t, f.discord.channelMessages(testIntros)).Length(6)
}

func TestSyncIntros_KeepsNewestPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	botID := f.discord.BotUserID()

	f.discord.addMessage(testIntros, botID, f.now, []types.UserID{"57"}, introLikeEmbed())
	newer := f.discord.addMessage(testIntros, botID, f.now.Add(1), []types.UserID{"57"}, introLikeEmbed())

	result, err := f.uc.SyncIntros(ctx, testGuild)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Added).Equal(1)

	ref, err := f.repo.Intro().Get(ctx, testGuild, "57")
	gt.NoError(t, err)
	gt.Value(t, ref.Message).Equal(types.MessageID(newer.ID))
}

func TestSyncIntros_EmptyChannelAndCache(t *testing.T) {
	f := newFixture(t)
	result, err := f.uc.SyncIntros(context.Background(), testGuild)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Added).Equal(0)
	gt.Value(t, result.Deleted).Equal(0)
}
