package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/fitness"
)

// Profile is the local fallback shown when the backend profile embed lacks data.
func Profile(discordID, avatarURL string, isSelf bool) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏋️ %s Profile", possessive(isSelf)),
		Description: userLine(discordID),
		Color:       ColorInfo,
		Thumbnail:   Thumbnail(avatarURL),
	}
}

// TodayActivity turns a scheduled day type into display text.
func TodayActivity(scheduledType string) string {
	switch fitness.DayType(scheduledType) {
	case fitness.DayWorkout:
		return "Workout Day 💪"
	case fitness.DayRest:
		return "Rest Day 😴"
	default:
		return "No activity scheduled"
	}
}

// TodayField describes today's schedule; workoutType may be empty.
func TodayField(today *api.TodaySchedule) *discordgo.MessageEmbedField {
	value := TodayActivity(today.ScheduledType)
	if today.WorkoutType != "" && fitness.DayType(today.ScheduledType) == fitness.DayWorkout {
		value += " (" + today.WorkoutType + ")"
	}
	return field("📅 Today", value, false)
}

// StreakMotivation picks the encouragement line for a current streak.
func StreakMotivation(current int) string {
	switch {
	case current <= 0:
		return "Start your fitness journey today! Every streak begins with a single step."
	case current < 7:
		return "Great start! Keep building that momentum!"
	case current < 30:
		return "Amazing! You're building a solid habit!"
	default:
		return "Incredible! You're a fitness champion! 🏆"
	}
}

func Streak(discordID, avatarURL string, isSelf bool, s api.StreakData) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🔥 %s Streak Information", possessive(isSelf)),
		Description: userLine(discordID),
		Color:       ColorStreak,
		Fields: []*discordgo.MessageEmbedField{
			field("🔥 Current Streak", FormatStreak(s.CurrentStreak), true),
			field("🏆 Longest Streak", FormatStreak(s.LongestStreak), true),
			field("📊 Total Check-ins", fmt.Sprintf("%d", s.TotalCheckIns), true),
			field("💪 Motivation", StreakMotivation(s.CurrentStreak), false),
		},
		Thumbnail: Thumbnail(avatarURL),
	}
}

// Cheer is one cheer between two users.
type Cheer struct {
	FromID   string
	FromName string
	ToID     string
	Message  string
}

func CheerPreview(c Cheer) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎉 Send this cheer?",
		Description: fmt.Sprintf("**From:** <@%s>\n**To:** <@%s>\n**Message:** %s",
			c.FromID, c.ToID, c.Message),
		Color:  ColorGold,
		Footer: &discordgo.MessageEmbedFooter{Text: "The cheer is posted publicly once you press Send."},
	}
}

func CheerSent(c Cheer, avatarURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎉 Cheer Sent!",
		Description: fmt.Sprintf("**From:** <@%s>\n**To:** <@%s>\n**Message:** %s",
			c.FromID, c.ToID, c.Message),
		Color:     ColorSuccess,
		Thumbnail: Thumbnail(avatarURL),
	}
}

// CheerReceived is the direct message delivered to the cheered user.
func CheerReceived(c Cheer) *discordgo.MessageEmbed {
	from := c.FromName
	if from == "" {
		from = fmt.Sprintf("<@%s>", c.FromID)
	}
	return &discordgo.MessageEmbed{
		Title:       "🎉 You received a cheer!",
		Description: fmt.Sprintf("**From:** %s\n**Message:** %s", from, c.Message),
		Color:       ColorGold,
	}
}

func CheerCancelled() *discordgo.MessageEmbed {
	return Error("Cheer Cancelled", "Your cheer has been cancelled.")
}

// CheerRegistrationHeader identifies both sides of a blocked cheer.
func CheerRegistrationHeader(fromID, toID string) string {
	return fmt.Sprintf("**From:** <@%s>\n**To:** <@%s>", fromID, toID)
}

// LeaderboardPageSize is how many entries one leaderboard page shows.
const LeaderboardPageSize = 10

// Leaderboard describes one rendered leaderboard page.
type Leaderboard struct {
	Title string
	Color int
	Unit  string // appended to each value, e.g. "days"
	Limit int
	Page  int
	Data  *api.LeaderboardData
}

// LeaderboardPage renders entries locally, ten per page, and layers the
// backend's title, colour and footer on top when it sent an embed. It returns
// the embed and the total page count.
func LeaderboardPage(lb Leaderboard) (*discordgo.MessageEmbed, int) {
	var entries []api.LeaderboardEntry
	var dto *api.Embed
	if lb.Data != nil {
		entries = lb.Data.Entries
		dto = lb.Data.Embed
	}

	pages := (len(entries) + LeaderboardPageSize - 1) / LeaderboardPageSize
	if pages == 0 {
		pages = 1
	}
	page := clampPage(lb.Page, pages)

	e := &discordgo.MessageEmbed{
		Title:  lb.Title,
		Color:  lb.Color,
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Showing top %d users", lb.Limit)},
	}

	if len(entries) == 0 {
		e.Description = "No data available"
		if dto != nil {
			return Merge(dto, e), 1
		}
		return e, 1
	}

	start := (page - 1) * LeaderboardPageSize
	end := min(start+LeaderboardPageSize, len(entries))
	lines := make([]string, 0, end-start)
	for i, entry := range entries[start:end] {
		rank := entry.Rank
		if rank == 0 {
			rank = start + i + 1
		}
		value := fmt.Sprintf("%d", entry.Value)
		if lb.Unit != "" {
			value += " " + lb.Unit
		}
		lines = append(lines, fmt.Sprintf("%s <@%s> - **%s**", rankBadge(rank), entry.UserID, value))
	}
	e.Description = strings.Join(lines, "\n")

	if dto != nil {
		// Entries are rendered locally so paging works; only the dressing comes from the backend.
		dressing := *dto
		dressing.Description = ""
		dressing.Fields = nil
		e = Merge(&dressing, e)
	}
	if pages > 1 {
		e.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d • Showing top %d users", page, pages, lb.Limit)}
	}
	return e, pages
}

func rankBadge(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("**#%d**", rank)
	}
}

func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}
