package usecase_test

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// fakeDiscord is an in-memory stand-in for the platform client. Channels hold
// messages in ascending creation order; members live in per-guild slices.
type fakeDiscord struct {
	botID      types.UserID
	now        time.Time
	guildNames map[types.GuildID]string
	members    map[types.GuildID][]*discordgo.Member
	channels   map[types.ChannelID][]*discordgo.Message

	viewDenied map[string]bool
	dmFail     map[types.UserID]bool

	dms           map[types.UserID][]string
	kicked        []string
	responses     []string
	ephemeral     []string
	deletedResps  int
	bulkDeletes   [][]types.MessageID
	singleDeletes []types.MessageID

	nextID int
}

var _ interfaces.Discord = &fakeDiscord{}

func newFakeDiscord(now time.Time) *fakeDiscord {
	return &fakeDiscord{
		botID:      "999",
		now:        now,
		guildNames: map[types.GuildID]string{},
		members:    map[types.GuildID][]*discordgo.Member{},
		channels:   map[types.ChannelID][]*discordgo.Message{},
		viewDenied: map[string]bool{},
		dmFail:     map[types.UserID]bool{},
		dms:        map[types.UserID][]string{},
	}
}

func (f *fakeDiscord) addGuild(guildID types.GuildID, name string) {
	f.guildNames[guildID] = name
	if _, ok := f.members[guildID]; !ok {
		f.members[guildID] = nil
	}
}

func (f *fakeDiscord) addMember(guildID types.GuildID, userID types.UserID, joinedAt time.Time, roles ...types.RoleID) *discordgo.Member {
	roleIDs := make([]string, len(roles))
	for i, r := range roles {
		roleIDs[i] = r.String()
	}
	member := &discordgo.Member{
		GuildID:  guildID.String(),
		JoinedAt: joinedAt,
		Roles:    roleIDs,
		User:     &discordgo.User{ID: userID.String(), Username: "user-" + userID.String()},
	}
	f.members[guildID] = append(f.members[guildID], member)
	return member
}

func (f *fakeDiscord) addMessage(channelID types.ChannelID, authorID types.UserID, ts time.Time, mentions []types.UserID, embeds ...*discordgo.MessageEmbed) *discordgo.Message {
	f.nextID++
	msg := &discordgo.Message{
		ID:        fmt.Sprintf("%d", f.nextID),
		ChannelID: channelID.String(),
		Timestamp: ts,
		Author:    &discordgo.User{ID: authorID.String()},
		Embeds:    embeds,
	}
	for _, m := range mentions {
		msg.Mentions = append(msg.Mentions, &discordgo.User{ID: m.String()})
	}
	f.channels[channelID] = append(f.channels[channelID], msg)
	return msg
}

func (f *fakeDiscord) channelMessages(channelID types.ChannelID) []*discordgo.Message {
	return f.channels[channelID]
}

func (f *fakeDiscord) findMember(guildID types.GuildID, userID types.UserID) *discordgo.Member {
	for _, m := range f.members[guildID] {
		if m.User.ID == userID.String() {
			return m
		}
	}
	return nil
}

func (f *fakeDiscord) BotUserID() types.UserID { return f.botID }

func (f *fakeDiscord) Guilds() []types.GuildID {
	ids := make([]types.GuildID, 0, len(f.guildNames))
	for id := range f.guildNames {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (f *fakeDiscord) GuildName(ctx context.Context, guildID types.GuildID) (string, error) {
	name, ok := f.guildNames[guildID]
	if !ok {
		return "", goerr.Wrap(types.ErrNotFound, "no such guild")
	}
	return name, nil
}

func (f *fakeDiscord) Member(ctx context.Context, guildID types.GuildID, userID types.UserID) (*discordgo.Member, error) {
	if m := f.findMember(guildID, userID); m != nil {
		return m, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "no such member")
}

func (f *fakeDiscord) Members(ctx context.Context, guildID types.GuildID) iter.Seq2[*discordgo.Member, error] {
	members := slices.Clone(f.members[guildID])
	return func(yield func(*discordgo.Member, error) bool) {
		for _, m := range members {
			if !yield(m, nil) {
				return
			}
		}
	}
}

func (f *fakeDiscord) AddRole(ctx context.Context, guildID types.GuildID, userID types.UserID, roleID types.RoleID) error {
	m := f.findMember(guildID, userID)
	if m == nil {
		return goerr.Wrap(types.ErrNotFound, "no such member")
	}
	if !slices.Contains(m.Roles, roleID.String()) {
		m.Roles = append(m.Roles, roleID.String())
	}
	return nil
}

func (f *fakeDiscord) RemoveRole(ctx context.Context, guildID types.GuildID, userID types.UserID, roleID types.RoleID) error {
	m := f.findMember(guildID, userID)
	if m == nil {
		return goerr.Wrap(types.ErrNotFound, "no such member")
	}
	m.Roles = slices.DeleteFunc(m.Roles, func(r string) bool { return r == roleID.String() })
	return nil
}

func (f *fakeDiscord) Kick(ctx context.Context, guildID types.GuildID, userID types.UserID, reason string) error {
	if f.findMember(guildID, userID) == nil {
		return goerr.Wrap(types.ErrNotFound, "no such member")
	}
	f.members[guildID] = slices.DeleteFunc(f.members[guildID], func(m *discordgo.Member) bool {
		return m.User.ID == userID.String()
	})
	f.kicked = append(f.kicked, userID.String())
	return nil
}

func (f *fakeDiscord) CanViewChannel(ctx context.Context, channelID types.ChannelID, userID types.UserID) (bool, error) {
	return !f.viewDenied[channelID.String()+"/"+userID.String()], nil
}

func (f *fakeDiscord) SendMessage(ctx context.Context, channelID types.ChannelID, send *discordgo.MessageSend) (*discordgo.Message, error) {
	f.nextID++
	msg := &discordgo.Message{
		ID:         fmt.Sprintf("%d", f.nextID),
		ChannelID:  channelID.String(),
		Timestamp:  f.now,
		Author:     &discordgo.User{ID: f.botID.String()},
		Content:    send.Content,
		Components: send.Components,
	}
	if send.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{send.Embed}
	}
	f.channels[channelID] = append(f.channels[channelID], msg)
	return msg, nil
}

func (f *fakeDiscord) EditMessage(ctx context.Context, channelID types.ChannelID, messageID types.MessageID, edit *discordgo.MessageEdit) (*discordgo.Message, error) {
	msg, err := f.Message(ctx, channelID, messageID)
	if err != nil {
		return nil, err
	}
	if edit.Content != nil {
		msg.Content = *edit.Content
	}
	if edit.Embeds != nil {
		msg.Embeds = *edit.Embeds
	}
	return msg, nil
}

func (f *fakeDiscord) Message(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) (*discordgo.Message, error) {
	for _, msg := range f.channels[channelID] {
		if msg.ID == messageID.String() {
			return msg, nil
		}
	}
	return nil, goerr.Wrap(types.ErrNotFound, "no such message")
}

func (f *fakeDiscord) MessagesAfter(ctx context.Context, channelID types.ChannelID, afterID types.MessageID, limit int) ([]*discordgo.Message, error) {
	msgs := f.channels[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return slices.Clone(msgs), nil
}

func (f *fakeDiscord) MessagesBefore(ctx context.Context, channelID types.ChannelID, beforeID types.MessageID, limit int) ([]*discordgo.Message, error) {
	msgs := f.channels[channelID]

	end := len(msgs)
	if beforeID != "" {
		end = 0
		for i, msg := range msgs {
			if msg.ID == beforeID.String() {
				end = i
				break
			}
		}
	}

	start := end - limit
	if start < 0 {
		start = 0
	}

	page := make([]*discordgo.Message, 0, end-start)
	for i := end - 1; i >= start; i-- {
		page = append(page, msgs[i])
	}
	return page, nil
}

func (f *fakeDiscord) DeleteMessage(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) error {
	before := len(f.channels[channelID])
	f.channels[channelID] = slices.DeleteFunc(f.channels[channelID], func(m *discordgo.Message) bool {
		return m.ID == messageID.String()
	})
	if len(f.channels[channelID]) == before {
		return goerr.Wrap(types.ErrNotFound, "no such message")
	}
	f.singleDeletes = append(f.singleDeletes, messageID)
	return nil
}

func (f *fakeDiscord) DeleteMessages(ctx context.Context, channelID types.ChannelID, messageIDs []types.MessageID) error {
	if len(messageIDs) == 0 {
		return nil
	}

	// The real endpoint rejects messages older than two weeks
	floor := f.now.Add(-14 * 24 * time.Hour)
	for _, id := range messageIDs {
		msg, err := f.Message(ctx, channelID, id)
		if err != nil {
			return err
		}
		if msg.Timestamp.Before(floor) {
			return goerr.New("message too old for bulk delete", goerr.V("message_id", id))
		}
	}

	for _, id := range messageIDs {
		f.channels[channelID] = slices.DeleteFunc(f.channels[channelID], func(m *discordgo.Message) bool {
			return m.ID == id.String()
		})
	}
	f.bulkDeletes = append(f.bulkDeletes, slices.Clone(messageIDs))
	return nil
}

func (f *fakeDiscord) DirectMessage(ctx context.Context, userID types.UserID, content string) error {
	if f.dmFail[userID] {
		return goerr.New("user blocks DMs")
	}
	f.dms[userID] = append(f.dms[userID], content)
	return nil
}

func (f *fakeDiscord) Respond(ctx context.Context, interaction *discordgo.Interaction, content string) error {
	f.responses = append(f.responses, content)
	return nil
}

func (f *fakeDiscord) RespondEphemeral(ctx context.Context, interaction *discordgo.Interaction, content string) error {
	f.ephemeral = append(f.ephemeral, content)
	return nil
}

func (f *fakeDiscord) RespondModal(ctx context.Context, interaction *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	return nil
}

func (f *fakeDiscord) DeleteResponse(ctx context.Context, interaction *discordgo.Interaction) error {
	f.deletedResps++
	return nil
}
