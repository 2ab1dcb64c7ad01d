package usecase

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

const (
	ackContent = "Thanks for submitting your introduction. In the next few seconds, you'll get access to the rest of the server."

	// ApologyContent is the non-technical reply shown when handling an
	// interaction fails. The report ID lets operators find the details.
	ApologyContent = "😵‍💫 Something went wrong. I'll let my admins know about it."
)

func mention(userID types.UserID) string {
	return fmt.Sprintf("<@%s>", userID)
}

func welcomeContent(guildName string, userID types.UserID) string {
	return fmt.Sprintf("Welcome to %s, %s! Please introduce yourself before you can start chatting.\n"+
		"\n"+
		"**Rules**\n"+
		"1. **DM = BAN**. This server is not for dating or hookups.\n"+
		"2. You must be at least 18 years old.\n"+
		"3. Always follow the Code of Conduct, available at https://polyam.eu/coc.html.\n"+
		"4. Speak English in the common channels.", guildName, mention(userID))
}

// IntroButton is the "Introduce yourself" button attached to welcome messages
func IntroButton() discordgo.Button {
	return discordgo.Button{
		CustomID: types.InteractionIntroButton.String(),
		Label:    model.LabelIntroduceYourself,
		Style:    discordgo.PrimaryButton,
		Emoji:    &discordgo.ComponentEmoji{Name: "👋"},
	}
}

func welcomeMessage(guildName string, userID types.UserID) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: welcomeContent(guildName, userID),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{IntroButton()},
			},
		},
	}
}

func introEmbed(user *discordgo.User, intro *model.Intro) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: mention(types.UserID(user.ID)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: model.LabelAboutMe, Value: intro.AboutMe},
			{Name: model.LabelPolyamoryExperience, Value: intro.PolyamoryExperience},
		},
	}
	if avatar := user.AvatarURL(""); avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}
	return embed
}

func introMessage(user *discordgo.User, intro *model.Intro) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("Introduction: %s", mention(types.UserID(user.ID))),
		Embed:   introEmbed(user, intro),
	}
}

func introEdit(user *discordgo.User, intro *model.Intro) *discordgo.MessageEdit {
	return &discordgo.MessageEdit{
		Embeds: &[]*discordgo.MessageEmbed{introEmbed(user, intro)},
	}
}

// IntroFromMessage parses a published introduction back out of its embed.
// The embed field labels map one-to-one onto the modal field IDs, so a
// published message is a full substitute for lost database state.
func IntroFromMessage(msg *discordgo.Message) (*model.Intro, error) {
	if len(msg.Embeds) == 0 {
		return nil, goerr.New("message has no embeds", goerr.V("message_id", msg.ID))
	}

	fields := map[string]string{}
	for _, field := range msg.Embeds[0].Fields {
		if id := model.IntroFieldIDByLabel(field.Name); id != "" {
			fields[id] = field.Value
		}
	}

	return model.IntroFromFields(fields)
}

func messageURL(guildID types.GuildID, ref *model.MessageRef) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, ref.Channel, ref.Message)
}
