package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/gatewarden-bot/gatewarden/pkg/domain/model"
	"github.com/gatewarden-bot/gatewarden/pkg/domain/types"
)

const (
	aboutMeMinLength = 50
	introMaxLength   = 1000

	aboutMePlaceholder    = "I like long walks on the beach... 🏖"
	experiencePlaceholder = "It's okay if you have none 💕"
)

// introModal builds the introduction form. The same form serves both entry
// points; only the custom ID differs, so the submit handler knows whether to
// release the member from quarantine afterwards.
func introModal(kind types.InteractionKind, prefill *model.Intro) *discordgo.InteractionResponseData {
	aboutMe := discordgo.TextInput{
		CustomID:    model.FieldAboutMe,
		Label:       model.LabelAboutMe,
		Style:       discordgo.TextInputParagraph,
		Placeholder: aboutMePlaceholder,
		Required:    true,
		MinLength:   aboutMeMinLength,
		MaxLength:   introMaxLength,
	}
	experience := discordgo.TextInput{
		CustomID:    model.FieldPolyamoryExperience,
		Label:       model.LabelPolyamoryExperience,
		Style:       discordgo.TextInputParagraph,
		Placeholder: experiencePlaceholder,
		Required:    true,
		MaxLength:   introMaxLength,
	}
	if prefill != nil {
		aboutMe.Value = prefill.AboutMe
		experience.Value = prefill.PolyamoryExperience
	}

	return &discordgo.InteractionResponseData{
		CustomID: kind.String(),
		Title:    model.LabelIntroduceYourself,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{aboutMe}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{experience}},
		},
	}
}

// introFromModal decodes the submitted form fields into an Intro. Components
// arrive as pointers when decoded from the wire and as values when built
// locally; both shapes are accepted.
func introFromModal(interaction *discordgo.Interaction) (*model.Intro, error) {
	fields := map[string]string{}

	for _, row := range interaction.ModalSubmitData().Components {
		for _, component := range rowComponents(row) {
			switch input := component.(type) {
			case *discordgo.TextInput:
				fields[input.CustomID] = input.Value
			case discordgo.TextInput:
				fields[input.CustomID] = input.Value
			}
		}
	}

	return model.IntroFromFields(fields)
}

func rowComponents(component discordgo.MessageComponent) []discordgo.MessageComponent {
	switch row := component.(type) {
	case *discordgo.ActionsRow:
		return row.Components
	case discordgo.ActionsRow:
		return row.Components
	default:
		return nil
	}
}
