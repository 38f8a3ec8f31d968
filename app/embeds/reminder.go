package embeds

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Reminder is the scheduled workout nudge. label is the rotation entry for
// today ("legs") and may be empty.
func Reminder(username, label string) *discordgo.MessageEmbed {
	desc := "It's time for your scheduled workout! 💪"
	if username != "" {
		desc = fmt.Sprintf("Hey %s, it's time for your scheduled workout! 💪", username)
	}
	if label != "" {
		desc += fmt.Sprintf("\n**Today:** %s", label)
	}
	return &discordgo.MessageEmbed{
		Title:       "🏋️ Workout Reminder!",
		Description: desc,
		Color:       ColorStreak,
		Fields: []*discordgo.MessageEmbedField{
			field("💪 Ready to crush it?", "Use `/checkin` to log your workout when you're done!", false),
			field("📸 Share your progress", "Don't forget to take a photo and share it with the community!", false),
		},
	}
}
