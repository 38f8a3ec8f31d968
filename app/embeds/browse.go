package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/fitness"
)

// Discord rejects field values above this length.
const maxFieldValue = 1024

func Gallery(discordID string, isSelf bool, status string, page api.GalleryPage) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📸 %s Photo Gallery", possessive(isSelf)),
		Description: fmt.Sprintf("%s\n**Total Photos:** %d", userLine(discordID), page.Pagination.Total),
		Color:       ColorInfo,
	}

	if len(page.Photos) == 0 {
		msg := "No photos have been uploaded yet."
		if status != "" && status != "all" {
			msg = "No photos found with status: " + status
		}
		e.Fields = []*discordgo.MessageEmbedField{field("📷 No Photos Found", msg, false)}
		return e
	}

	offset := pageOffset(page.Pagination)
	lines := make([]string, 0, len(page.Photos))
	for i, photo := range page.Photos {
		emoji := "❌"
		if photo.Status == fitness.StatusWent {
			emoji = "✅"
		}
		lines = append(lines, fmt.Sprintf("**%d.** %s %s", offset+i+1, emoji, formatDate(photo.Date)))
	}
	e.Fields = []*discordgo.MessageEmbedField{
		field(fmt.Sprintf("📷 Photos (page %d of %d)", max(page.Pagination.Page, 1), max(page.Pagination.Pages, 1)),
			truncate(strings.Join(lines, "\n")), false),
	}
	for _, photo := range page.Photos {
		if photo.PhotoURL != "" {
			e.Image = &discordgo.MessageEmbedImage{URL: photo.PhotoURL}
			break
		}
	}
	return e
}

// NotificationEmoji maps a notification type to its icon.
func NotificationEmoji(kind string) string {
	switch kind {
	case "cheer":
		return "🎉"
	case "achievement":
		return "🏆"
	case "reminder":
		return "⏰"
	case "system":
		return "⚙️"
	default:
		return "📢"
	}
}

func readMarker(read bool) string {
	if read {
		return "✅"
	}
	return "🔴"
}

func Notifications(page api.NotificationPage, unreadOnly bool) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "🔔 Your Notifications",
		Description: fmt.Sprintf("**Total:** %d notifications\n**Unread:** %d", page.Pagination.Total, page.UnreadCount),
		Color:       ColorInfo,
	}

	if len(page.Notifications) == 0 {
		msg := "No notifications found."
		if unreadOnly {
			msg = "No unread notifications."
		}
		e.Fields = []*discordgo.MessageEmbedField{field("📭 No Notifications", msg, false)}
		return e
	}

	offset := pageOffset(page.Pagination)
	items := make([]string, 0, len(page.Notifications))
	for i, n := range page.Notifications {
		items = append(items, fmt.Sprintf("**%d.** %s %s %s\n   %s\n   *%s* • `%s`",
			offset+i+1, readMarker(n.Read), NotificationEmoji(n.Type), n.Title, n.Message, formatDate(n.CreatedAt), n.ID))
	}
	e.Fields = []*discordgo.MessageEmbedField{
		field(fmt.Sprintf("📋 Notifications (page %d of %d)", max(page.Pagination.Page, 1), max(page.Pagination.Pages, 1)),
			truncate(strings.Join(items, "\n\n")), false),
	}
	return e
}

func NotificationsMarkedRead(count int) *discordgo.MessageEmbed {
	return Success("Notifications Marked as Read", fmt.Sprintf("Successfully marked %d notification(s) as read.", count))
}

func AllNotificationsMarkedRead() *discordgo.MessageEmbed {
	return Success("All Notifications Marked as Read", "All your notifications have been marked as read.")
}

// ConsistencyMotivation picks the encouragement line for a consistency rate in percent.
func ConsistencyMotivation(rate float64) string {
	switch {
	case rate >= 90:
		return "🏆 Outstanding! You're a fitness champion!"
	case rate >= 75:
		return "💪 Great job! You're building a solid habit!"
	case rate >= 50:
		return "👍 Good progress! Keep pushing forward!"
	default:
		return "💪 You can do this! Every step counts!"
	}
}

func Analytics(period int, a api.Analytics) *discordgo.MessageEmbed {
	weekly := make([]string, 0, len(a.WeeklyBreakdown))
	for _, d := range a.WeeklyBreakdown {
		weekly = append(weekly, fmt.Sprintf("%s: %d check-ins", d.Day, d.Count))
	}

	trends := a.CheckInTrends
	if len(trends) > 7 {
		trends = trends[len(trends)-7:]
	}
	recent := make([]string, 0, len(trends))
	for _, t := range trends {
		recent = append(recent, fmt.Sprintf("%s: %d check-ins", t.Date, t.Count))
	}

	return &discordgo.MessageEmbed{
		Title:       "📊 Your Analytics",
		Description: fmt.Sprintf("**Period:** Last %d days", period),
		Color:       ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			field("📈 Overall Stats", fmt.Sprintf("**Total Check-ins:** %d\n**Went to Gym:** %d\n**Missed:** %d",
				a.TotalCheckIns, a.WentCount, a.MissedCount), true),
			field("🎯 Performance", fmt.Sprintf("**Consistency Rate:** %.1f%%\n**Average Streak:** %.1f days\n**Best Streak:** %s",
				a.ConsistencyRate, a.AverageStreak, FormatStreak(a.BestStreak)), true),
			field("📅 Weekly Breakdown", orDefault(strings.Join(weekly, "\n"), "No data yet"), false),
			field("📊 Recent Trend (Last 7 Days)", orDefault(strings.Join(recent, "\n"), "No data yet"), false),
			field("💪 Motivation", ConsistencyMotivation(a.ConsistencyRate), false),
		},
	}
}

func pageOffset(p api.Pagination) int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxFieldValue {
		return s
	}
	return string(r[:maxFieldValue-1]) + "…"
}
