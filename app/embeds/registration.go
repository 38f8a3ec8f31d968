package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const nextStepsValue = "• Use `/checkin` to log your gym sessions\n• Try `/profile` to see your stats\n• Use `/streak` to track your progress\n• Send `/cheer` to motivate friends!"

// RegistrationRequired is the local call-to-action used when the backend
// register embed is unavailable. header identifies the user(s) involved and
// action completes "before you can ...".
func RegistrationRequired(header, action string, benefits []string) *discordgo.MessageEmbed {
	bullets := make([]string, 0, len(benefits))
	for _, b := range benefits {
		bullets = append(bullets, "• "+b)
	}
	return &discordgo.MessageEmbed{
		Title: "🔐 Registration Required",
		Description: fmt.Sprintf("%s\n\nYou need to register with WaddleTracker before you can %s.\n"+
			"Click the \"Register Now!\" button below to get started!", header, action),
		Color: ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			field("🔗 What You'll Get", strings.Join(bullets, "\n"), false),
		},
	}
}

func Welcome(discordID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎉 Welcome to WaddleTracker!",
		Description: userLine(discordID) + "\n\n" +
			"Congratulations! You've been successfully registered with WaddleTracker.\n" +
			"You can now use all bot features!",
		Color:  ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{field("🚀 What's Next?", nextStepsValue, false)},
	}
}

func AlreadyRegistered(discordID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✅ Already Registered!",
		Description: userLine(discordID) + "\n\n" +
			"You're already registered with WaddleTracker!\n" +
			"You can now use all bot features.",
		Color:  ColorInfo,
		Fields: []*discordgo.MessageEmbedField{field("🚀 Ready to Go!", nextStepsValue, false)},
	}
}

func RegistrationError(discordID, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "❌ Registration Error",
		Description: fmt.Sprintf("%s\n\nRegistration failed: %s\n"+
			"Please try again or contact support if the issue persists.", userLine(discordID), orDefault(message, "Unknown error")),
		Color: ColorError,
	}
}

func LearnMore(discordID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "ℹ️ About WaddleTracker",
		Description: userLine(discordID) + "\n\n" +
			"WaddleTracker is a fitness accountability platform that helps you stay motivated and track your gym progress.",
		Color: ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			field("🏋️ Features", "• Log gym check-ins with photos\n• Track streaks and achievements\n• Get motivation from the community\n• View detailed analytics", false),
			field("🎯 Benefits", "• Stay accountable to your fitness goals\n• Build consistent workout habits\n• Connect with like-minded people\n• Celebrate your progress", false),
			field("🚀 Ready to Start?", "Click \"Register Now!\" to join the WaddleTracker community!", false),
		},
	}
}

// NotYourButton is shown when someone clicks a button meant for another user.
func NotYourButton() *discordgo.MessageEmbed {
	return Error("Not Your Button", "Only the person who ran the command can use these buttons.")
}
