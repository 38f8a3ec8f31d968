package embeds

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RegisterButtons is the call-to-action row shown to unregistered users.
func RegisterButtons(registerID, learnMoreID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Register Now!",
					Style:    discordgo.SuccessButton,
					CustomID: registerID,
					Emoji:    &discordgo.ComponentEmoji{Name: "🚀"},
				},
				discordgo.Button{
					Label:    "Learn More",
					Style:    discordgo.SecondaryButton,
					CustomID: learnMoreID,
					Emoji:    &discordgo.ComponentEmoji{Name: "ℹ️"},
				},
			},
		},
	}
}

// RegisterOnlyButton is the row under the "About" message.
func RegisterOnlyButton(registerID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Register Now!",
					Style:    discordgo.SuccessButton,
					CustomID: registerID,
					Emoji:    &discordgo.ComponentEmoji{Name: "🚀"},
				},
			},
		},
	}
}

// ConfirmButtons is a confirm/cancel pair.
func ConfirmButtons(confirmID, confirmLabel string, confirmStyle discordgo.ButtonStyle, cancelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    confirmLabel,
					Style:    confirmStyle,
					CustomID: confirmID,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: cancelID,
				},
			},
		},
	}
}

// Pagination returns the Previous / "n / m" / Next row, or nil when there is a
// single page. pageID maps a page number to the button's custom id.
func Pagination(page, pages int, pageID func(page int) string) []discordgo.MessageComponent {
	if pages <= 1 {
		return nil
	}

	row := discordgo.ActionsRow{}
	if page > 1 {
		row.Components = append(row.Components, discordgo.Button{
			Label:    "◀️ Previous",
			Style:    discordgo.PrimaryButton,
			CustomID: pageID(page - 1),
		})
	}
	// Custom ids must be unique within a message, so the indicator gets its own.
	row.Components = append(row.Components, discordgo.Button{
		Label:    fmt.Sprintf("%d / %d", page, pages),
		Style:    discordgo.SecondaryButton,
		CustomID: pageID(0),
		Disabled: true,
	})
	if page < pages {
		row.Components = append(row.Components, discordgo.Button{
			Label:    "Next ▶️",
			Style:    discordgo.PrimaryButton,
			CustomID: pageID(page + 1),
		})
	}
	return []discordgo.MessageComponent{row}
}
