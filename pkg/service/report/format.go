package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
)

// messageCodeLimit is the platform's message length limit in codepoints
const messageCodeLimit = 2000

// errorDetail renders an error with its structured values and stack for the
// operator report. End users never see this.
func errorDetail(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())

	if ge := goerr.Unwrap(err); ge != nil {
		if values := ge.Values(); len(values) > 0 {
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			b.WriteString("\n\nvalues:")
			for _, k := range keys {
				fmt.Fprintf(&b, "\n  %s = %v", k, values[k])
			}
		}

		if stacks := ge.Stacks(); len(stacks) > 0 {
			b.WriteString("\n\nstack:")
			for _, frame := range stacks {
				fmt.Fprintf(&b, "\n  %v", frame)
			}
		}
	}

	return b.String()
}

// codeBlockTruncated wraps text in a code block, truncating it to fit within
// limit codepoints. Truncation prefers a line boundary and reports how much
// was dropped, unless the dropped tail was only whitespace.
func codeBlockTruncated(limit int, text string) string {
	const padding = len("```\n\n```\n(999999 bytes truncated)\n")

	budget := limit - padding
	if budget < 0 {
		budget = 0
	}

	runes := []rune(text)
	if len(runes) <= budget {
		return fmt.Sprintf("```\n%s\n```\n", strings.TrimRight(text, " \t\n"))
	}

	shown := string(runes[:budget])
	if idx := strings.LastIndexByte(shown, '\n'); idx > 0 {
		shown = shown[:idx]
	}
	hidden := text[len(shown):]

	out := fmt.Sprintf("```\n%s\n```\n", strings.TrimRight(shown, " \t\n"))
	if strings.TrimSpace(hidden) != "" {
		out += fmt.Sprintf("(%d bytes truncated)\n", len(hidden))
	}
	return out
}

// interactionSummary describes where an interaction came from, for operators
func interactionSummary(interaction *discordgo.Interaction) string {
	if interaction == nil {
		return "unknown interaction"
	}

	var b strings.Builder

	user := interaction.User
	if interaction.Member != nil {
		user = interaction.Member.User
	}
	if user != nil {
		fmt.Fprintf(&b, "<@%s>", user.ID)
	} else {
		b.WriteString("unknown user")
	}

	if interaction.GuildID != "" {
		fmt.Fprintf(&b, " in guild `%s`", interaction.GuildID)
	} else {
		b.WriteString(" in DM")
	}
	if interaction.ChannelID != "" {
		fmt.Fprintf(&b, " <#%s>", interaction.ChannelID)
	}

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		fmt.Fprintf(&b, "\n`/%s`", interaction.ApplicationCommandData().Name)
	case discordgo.InteractionMessageComponent:
		fmt.Fprintf(&b, "\ncomponent `%s`", interaction.MessageComponentData().CustomID)
	case discordgo.InteractionModalSubmit:
		fmt.Fprintf(&b, "\nmodal `%s`", interaction.ModalSubmitData().CustomID)
	}

	return b.String()
}
