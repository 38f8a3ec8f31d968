package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/fitness"
)

func StatusEmoji(status string) string {
	switch status {
	case fitness.StatusWent:
		return "💪"
	case fitness.StatusRest:
		return "😴"
	default:
		return "😔"
	}
}

func statusColor(status string) int {
	if status == fitness.StatusWent {
		return ColorSuccess
	}
	return ColorError
}

func statusLabel(status string) string {
	switch status {
	case fitness.StatusWent:
		return "Went to gym"
	case fitness.StatusRest:
		return "Rest day"
	default:
		return "Missed workout"
	}
}

// CheckIn is the data shown on check-in previews and results.
type CheckIn struct {
	DiscordID   string
	AvatarURL   string
	Status      string
	WorkoutType string
	Notes       string
	PhotoURL    string
}

// CheckInPreview asks the user to confirm before anything is recorded.
func CheckInPreview(c CheckIn) *discordgo.MessageEmbed {
	lines := []string{
		"**Status:** " + statusLabel(c.Status),
		userLine(c.DiscordID),
	}
	if c.WorkoutType != "" {
		lines = append(lines, "**Workout:** "+c.WorkoutType)
	}
	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Confirm Check-in", StatusEmoji(c.Status)),
		Description: strings.Join(lines, "\n"),
		Color:       statusColor(c.Status),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Nothing is saved until you confirm."},
	}
	if c.Notes != "" {
		e.Fields = append(e.Fields, field("📝 Notes", c.Notes, false))
	}
	if c.PhotoURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: c.PhotoURL}
	}
	return e
}

// CheckInLogged is the local fallback for a recorded check-in or workout.
func CheckInLogged(c CheckIn) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Color:     statusColor(c.Status),
		Thumbnail: Thumbnail(c.AvatarURL),
	}
	switch {
	case c.WorkoutType != "":
		e.Title = "💪 Workout Logged!"
		e.Description = userLine(c.DiscordID) + "\n\nGreat workout! Keep up the momentum! 🔥"
		e.Fields = []*discordgo.MessageEmbedField{
			field("💪 Workout Type", c.WorkoutType, true),
			field("📝 Notes", orDefault(c.Notes, "No additional notes"), true),
			field("🔥 Keep Going!", "Every workout counts towards your fitness goals!", false),
		}
	case c.Status == fitness.StatusWent:
		e.Title = "💪 Check-in Successful"
		e.Description = fmt.Sprintf("**Status:** %s\n%s", statusLabel(c.Status), userLine(c.DiscordID))
	default:
		e.Title = "😔 Check-in Recorded"
		e.Description = fmt.Sprintf("**Status:** %s\n%s\n\nTomorrow is a new chance. 💪", statusLabel(c.Status), userLine(c.DiscordID))
	}
	if c.Notes != "" && c.WorkoutType == "" {
		e.Fields = append(e.Fields, field("📝 Notes", c.Notes, false))
	}
	if c.PhotoURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: c.PhotoURL}
	}
	return e
}

func CheckInCancelled() *discordgo.MessageEmbed {
	return Error("Check-in Cancelled", "Your check-in has been cancelled.")
}

// CheckInExpired is shown when the pending check-in is gone from the store.
func CheckInExpired() *discordgo.MessageEmbed {
	return Error("Check-in Expired", "This check-in preview has expired. Run `/checkin` again.")
}

func AlreadyCheckedIn(discordID, avatarURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏰ Already Checked In!",
		Description: userLine(discordID) + "\n\nYou've already logged a check-in for today. Come back tomorrow!",
		Color:       ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			field("💡 Tip", "You can only check in once per day. Try again tomorrow!", false),
		},
		Thumbnail: Thumbnail(avatarURL),
	}
}

// RestDayScheduled answers /checkin on a day the user's schedule marks as rest.
func RestDayScheduled(discordID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "😴 Rest Day - Streak Continues!",
		Description: userLine(discordID) + "\n\nToday is a rest day on your schedule. No check-in needed, your streak is safe! 💤",
		Color:       ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			field("💡 Recovery Tips", recoveryTips, false),
		},
	}
}

const recoveryTips = "• Stay hydrated\n• Get good sleep\n• Light stretching\n• Mental relaxation"

func RestDayLogged(discordID, avatarURL, notes string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "😴 Rest Day Logged!",
		Description: userLine(discordID) + "\n\nRest day logged - recovery is important! 💤",
		Color:       ColorWarning,
		Thumbnail:   Thumbnail(avatarURL),
		Fields: []*discordgo.MessageEmbedField{
			field("😴 Rest Day", "Recovery & Rest", true),
			field("💡 Recovery Tips", recoveryTips, false),
		},
	}
	if notes != "" {
		e.Fields = append(e.Fields, field("📝 Notes", notes, false))
	}
	return e
}

// Troubleshooting describes a failed backend call for one command.
type Troubleshooting struct {
	Title     string // e.g. "Workout Error"
	Action    string // completes "Unable to ..."
	Command   string // slash command name without the slash
	DiscordID string
	AvatarURL string
	Err       string
}

func TroubleshootingError(t Troubleshooting) *discordgo.MessageEmbed {
	var b strings.Builder
	if t.DiscordID != "" {
		b.WriteString(userLine(t.DiscordID))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Unable to %s. This could be due to:\n", t.Action)
	b.WriteString("• Network connectivity issues\n• Server maintenance\n• Account synchronization delay\n\n")
	fmt.Fprintf(&b, "**Error:** %s\n\n", orDefault(t.Err, "Unknown error"))
	b.WriteString("Please try again in a few moments. If the problem persists, contact support.")

	return &discordgo.MessageEmbed{
		Title:       "❌ " + t.Title,
		Description: b.String(),
		Color:       ColorError,
		Fields: []*discordgo.MessageEmbedField{
			field("🔧 Troubleshooting", fmt.Sprintf("• Try `/%s` again in a few seconds\n• Check if other commands work\n• Contact support if the issue continues", t.Command), false),
		},
		Thumbnail: Thumbnail(t.AvatarURL),
	}
}

// CheckInPhoto is posted to the gym-pics channel.
func CheckInPhoto(discordID, username, photoURL, workoutType string) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("<@%s> just checked in! 💪", discordID)
	if workoutType != "" {
		desc += "\n**Workout:** " + workoutType
	}
	return &discordgo.MessageEmbed{
		Title:       "📸 New Gym Check-in!",
		Description: desc,
		Color:       ColorSuccess,
		Image:       &discordgo.MessageEmbedImage{URL: photoURL},
		Footer:      &discordgo.MessageEmbedFooter{Text: orDefault(username, "WaddleTracker")},
	}
}
