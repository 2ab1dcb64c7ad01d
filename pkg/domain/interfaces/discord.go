package interfaces

import (
	"context"
	"iter"

	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

// Discord is the surface of the chat platform this bot consumes. Discordgo
// request/response types cross the boundary as-is; only identifiers are
// wrapped in domain types.
//
// Any call may fail with a transport error. Calls on messages and roles
// translate a platform 404 into a wrapped types.ErrNotFound, which callers
// must treat as a distinguished, recoverable case.
type Discord interface {
	// BotUserID returns the bot's own user ID
	BotUserID() types.UserID

	// Guilds returns the guilds the process is currently connected to
	Guilds() []types.GuildID

	// GuildName returns the display name of a guild
	GuildName(ctx context.Context, guildID types.GuildID) (string, error)

	// Member fetches one guild member
	Member(ctx context.Context, guildID types.GuildID, userID types.UserID) (*discordgo.Member, error)

	// Members iterates the guild member list lazily, one page at a time.
	// Iteration stops at the first page fetch error, which is yielded last.
	Members(ctx context.Context, guildID types.GuildID) iter.Seq2[*discordgo.Member, error]

	// AddRole assigns a role to a member. Adding an already-held role is a no-op.
	AddRole(ctx context.Context, guildID types.GuildID, userID types.UserID, roleID types.RoleID) error

	// RemoveRole removes a role from a member
	RemoveRole(ctx context.Context, guildID types.GuildID, userID types.UserID, roleID types.RoleID) error

	// Kick removes a member from the guild with an audit log reason
	Kick(ctx context.Context, guildID types.GuildID, userID types.UserID, reason string) error

	// CanViewChannel reports whether the member holds VIEW_CHANNEL in the channel
	CanViewChannel(ctx context.Context, channelID types.ChannelID, userID types.UserID) (bool, error)

	// SendMessage posts a message to a channel
	SendMessage(ctx context.Context, channelID types.ChannelID, send *discordgo.MessageSend) (*discordgo.Message, error)

	// EditMessage edits an existing message in place
	EditMessage(ctx context.Context, channelID types.ChannelID, messageID types.MessageID, edit *discordgo.MessageEdit) (*discordgo.Message, error)

	// Message fetches a single message
	Message(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) (*discordgo.Message, error)

	// MessagesAfter fetches up to limit messages newer than afterID, oldest
	// side of the channel first. afterID zero fetches the oldest messages.
	MessagesAfter(ctx context.Context, channelID types.ChannelID, afterID types.MessageID, limit int) ([]*discordgo.Message, error)

	// MessagesBefore fetches up to limit messages older than beforeID,
	// reverse-chronological. Empty beforeID starts from the newest.
	MessagesBefore(ctx context.Context, channelID types.ChannelID, beforeID types.MessageID, limit int) ([]*discordgo.Message, error)

	// DeleteMessage deletes one message
	DeleteMessage(ctx context.Context, channelID types.ChannelID, messageID types.MessageID) error

	// DeleteMessages bulk-deletes messages. The platform rejects messages
	// older than its bulk-delete age limit; callers split beforehand.
	DeleteMessages(ctx context.Context, channelID types.ChannelID, messageIDs []types.MessageID) error

	// DirectMessage sends a DM to a user
	DirectMessage(ctx context.Context, userID types.UserID, content string) error

	// Respond replies to an interaction with a regular channel message
	Respond(ctx context.Context, interaction *discordgo.Interaction, content string) error

	// RespondEphemeral replies to an interaction with an ephemeral message
	RespondEphemeral(ctx context.Context, interaction *discordgo.Interaction, content string) error

	// RespondModal replies to an interaction by opening a modal
	RespondModal(ctx context.Context, interaction *discordgo.Interaction, data *discordgo.InteractionResponseData) error

	// DeleteResponse deletes the original interaction response
	DeleteResponse(ctx context.Context, interaction *discordgo.Interaction) error
}
