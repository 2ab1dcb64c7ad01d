package discord

import (
	"context"
	"iter"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/interfaces"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

const (
	membersPageSize  = 1000
	messagesPageSize = 100
)

// Client implements interfaces.Discord over a discordgo session
type Client struct {
	session *discordgo.Session
}

var _ interfaces.Discord = &Client{}

// New wraps an opened discordgo session
func New(session *discordgo.Session) *Client {
	return &Client{session: session}
}

// BotUserID returns the bot's own user ID
func (c *Client) BotUserID() types.UserID {
	if c.session.State == nil || c.session.State.User == nil {
		return ""
	}
	return types.UserID(c.session.State.User.ID)
}

// Guilds returns the guilds the gateway session is currently connected to
func (c *Client) Guilds() []types.GuildID {
	c.session.State.RLock()
	defer c.session.State.RUnlock()

	ids := make([]types.GuildID, 0, len(c.session.State.Guilds))
	for _, g := range c.session.State.Guilds {
		ids = append(ids, types.GuildID(g.ID))
	}
	return ids
}

// GuildName returns the display name of a guild
func (c *Client) GuildName(ctx context.Context, guildID types.GuildID) (string, error) {
	if guild, err := c.session.State.Guild(guildID.String()); err == nil && guild.Name != "" {
		return guild.Name, nil
	}

	guild, err := c.session.Guild(guildID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return "", translateErr(err, "failed to get guild")
	}
	return guild.Name, nil
}

// Member fetches one guild member
func (c *Client) Member(ctx context.Context, guildID types.GuildID, userID types.UserID) (*discordgo.Member, error) {
	member, err := c.session.GuildMember(guildID.String(), userID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateErr(err, "failed to get guild member")
	}
	return member, nil
}

// Members iterates the guild member list lazily, one page per request
func (c *Client) Members(ctx context.Context, guildID types.GuildID) iter.Seq2[*discordgo.Member, error] {
	return func(yield func(*discordgo.Member, error) bool) {
		after := ""
		for {
			page, err := c.session.GuildMembers(guildID.String(), after, membersPageSize, discordgo.WithContext(ctx))
			if err != nil {
				yield(nil, translateErr(err, "failed to list guild members"))
				return
			}

			for _, member := range page {
				if !yield(member, nil) {
					return
				}
			}

			if len(page) < membersPageSize {
				return
			}
			after = page[len(page)-1].User.ID
		}
	}
}

// AddRole assigns a role to a member
func (c *Client) AddRole(ctx context.Context, guildID types.GuildID, userID types.UserID, roleID types.RoleID) error {
	err := c.session.GuildMemberRoleAdd(guildID.String(), userID.String(), roleID.String(), discordgo.WithContext(ctx))
	return translateErr(err, "failed to add role")
}

// RemoveRole removes a role from a member
func (c *Client) RemoveRole(ctx context.Context, guildID types.GuildID, userID types.UserID, roleID types.RoleID) error {
	err := c.session.GuildMemberRoleRemove(guildID.String(), userID.String(), roleID.String(), discordgo.WithContext(ctx))
	return translateErr(err, "failed to remove role")
}

// Kick removes a member from the guild with an audit log reason
func (c *Client) Kick(ctx context.Context, guildID types.GuildID, userID types.UserID, reason string) error {
	err := c.session.GuildMemberDeleteWithReason(guildID.String(), userID.String(), reason, discordgo.WithContext(ctx))
	return translateErr(err, "failed to kick member")
}

// CanViewChannel reports whether the member can view the channel
func (c *Client) CanViewChannel(ctx context.Context, channelID types.ChannelID, userID types.UserID) (bool, error) {
	perms, err := c.session.UserChannelPermissions(userID.String(), channelID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return false, translateErr(err, "failed to compute channel permissions")
	}
	return perms&discordgo.PermissionViewChannel != 0, nil
}

// SendMessage posts a message to a channel
func (c *Client) SendMessage(ctx context.Context, channelID types.ChannelID, send *discordgo.MessageSend) (*discordgo.Message, error) {
	msg, err := c.session.ChannelMessageSendComplex(channelID.String(), send, discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateErr(err, "failed to send message")
	}
	return msg, nil
}

// EditMessage edits an existing message in place
func (c *Client) EditMessage(ctx context.Context, channelID types.ChannelID, messageID types.MessageID, edit *discordgo.MessageEdit) (*discordgo.Message, error) {
	edit.Channel = channelID.String()
	edit.ID = messageID.String()

	msg, err := c.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateErr(err, "failed to edit message")
	}
	return msg, nil
}

// Message fetches a single message
func (c *Client) Message(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) (*discordgo.Message, error) {
	msg, err := c.session.ChannelMessage(channelID.String(), messageID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateErr(err, "failed to get message")
	}
	return msg, nil
}

// MessagesAfter fetches up to limit messages newer than afterID
func (c *Client) MessagesAfter(ctx context.Context, channelID types.ChannelID, afterID types.MessageID, limit int) ([]*discordgo.Message, error) {
	if limit <= 0 || limit > messagesPageSize {
		limit = messagesPageSize
	}
	msgs, err := c.session.ChannelMessages(channelID.String(), limit, "", afterID.String(), "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateErr(err, "failed to list messages")
	}
	return msgs, nil
}

// MessagesBefore fetches up to limit messages older than beforeID
func (c *Client) MessagesBefore(ctx context.Context, channelID types.ChannelID, beforeID types.MessageID, limit int) ([]*discordgo.Message, error) {
	if limit <= 0 || limit > messagesPageSize {
		limit = messagesPageSize
	}
	msgs, err := c.session.ChannelMessages(channelID.String(), limit, beforeID.String(), "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateErr(err, "failed to list messages")
	}
	return msgs, nil
}

// DeleteMessage deletes one message
func (c *Client) DeleteMessage(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) error {
	err := c.session.ChannelMessageDelete(channelID.String(), messageID.String(), discordgo.WithContext(ctx))
	return translateErr(err, "failed to delete message")
}

// DeleteMessages bulk-deletes messages. A single ID degrades to a plain
// delete since the platform rejects bulk calls with fewer than two messages.
func (c *Client) DeleteMessages(ctx context.Context, channelID types.ChannelID, messageIDs []types.MessageID) error {
	switch len(messageIDs) {
	case 0:
		return nil
	case 1:
		return c.DeleteMessage(ctx, channelID, messageIDs[0])
	}

	ids := make([]string, len(messageIDs))
	for i, id := range messageIDs {
		ids[i] = id.String()
	}

	err := c.session.ChannelMessagesBulkDelete(channelID.String(), ids, discordgo.WithContext(ctx))
	return translateErr(err, "failed to bulk delete messages")
}

// DirectMessage sends a DM to a user
func (c *Client) DirectMessage(ctx context.Context, userID types.UserID, content string) error {
	channel, err := c.session.UserChannelCreate(userID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return translateErr(err, "failed to open DM channel")
	}

	if _, err := c.session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx)); err != nil {
		return translateErr(err, "failed to send DM")
	}
	return nil
}

// Respond replies to an interaction with a regular channel message
func (c *Client) Respond(ctx context.Context, interaction *discordgo.Interaction, content string) error {
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return goerr.Wrap(err, "failed to respond to interaction")
	}
	return nil
}

// RespondEphemeral replies to an interaction with an ephemeral message
func (c *Client) RespondEphemeral(ctx context.Context, interaction *discordgo.Interaction, content string) error {
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return goerr.Wrap(err, "failed to respond to interaction")
	}
	return nil
}

// RespondModal replies to an interaction by opening a modal
func (c *Client) RespondModal(ctx context.Context, interaction *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return goerr.Wrap(err, "failed to open modal")
	}
	return nil
}

// DeleteResponse deletes the original interaction response
func (c *Client) DeleteResponse(ctx context.Context, interaction *discordgo.Interaction) error {
	err := c.session.InteractionResponseDelete(interaction, discordgo.WithContext(ctx))
	return translateErr(err, "failed to delete interaction response")
}
