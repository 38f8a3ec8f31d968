package embeds

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var commandHelp = map[string]string{
	"checkin": "**Description:** Log your gym check-in\n\n" +
		"**Usage:** `/checkin [status:<went|missed>] [photo_url] [notes]`\n\n" +
		"**Options:**\n• `status` - Whether you went to the gym or missed your workout (default: went)\n• `photo_url` - Optional URL of your gym photo\n• `notes` - Optional notes\n\n" +
		"**Examples:**\n• `/checkin status:went`\n• `/checkin status:went photo_url:https://example.com/photo.jpg`\n\n" +
		"On a scheduled rest day there is nothing to log: your streak continues automatically.",
	"workout": "**Description:** Log a workout with its type\n\n" +
		"**Usage:** `/workout type:<type> [notes] [photo_url]`\n\n" +
		"**Examples:**\n• `/workout type:push`\n• `/workout type:cardio notes:5k run`",
	"rest-day": "**Description:** Log a rest day without breaking your streak\n\n" +
		"**Usage:** `/rest-day [notes]`",
	"profile": "**Description:** View user profile and stats\n\n" +
		"**Usage:** `/profile [user]`\n\n" +
		"**Options:**\n• `user` - User to view profile for (defaults to yourself)\n\n" +
		"**Examples:**\n• `/profile` - View your own profile\n• `/profile @username` - View another user's profile",
	"cheer": "**Description:** Send encouragement to another user\n\n" +
		"**Usage:** `/cheer user:<@user> message:<text>`\n\n" +
		"**Options:**\n• `user` - User to cheer for (required)\n• `message` - Your encouraging message (3-500 characters)\n\n" +
		"**Examples:**\n• `/cheer user:@username message:Great job on your streak! 💪`",
	"streak": "**Description:** View streak information\n\n" +
		"**Usage:** `/streak [user]`\n\n" +
		"**Options:**\n• `user` - User to view streak for (defaults to yourself)\n\n" +
		"**Examples:**\n• `/streak` - View your own streak\n• `/streak @username` - View another user's streak",
	"leaderboard": "**Description:** View leaderboards\n\n" +
		"**Usage:** `/leaderboard <streaks|checkins> [options]`\n\n" +
		"**Subcommands:**\n• `streaks` - View streak leaderboard\n• `checkins` - View check-in leaderboard\n\n" +
		"**Options:**\n• `type` - Type of streak leaderboard (current/longest)\n• `period` - Time period for check-in leaderboard (all/week/month/year)\n• `limit` - Number of users to show (1-50)\n\n" +
		"**Examples:**\n• `/leaderboard streaks type:current limit:10`\n• `/leaderboard checkins period:week limit:5`",
	"schedule": "**Description:** Manage your gym schedule\n\n" +
		"**Usage:** `/schedule <rotation|weekly|set|view|today|delete>`\n\n" +
		"**Subcommands:**\n• `rotation` - Cycle through a pattern such as upper,lower,rest\n• `weekly` - Work out on fixed days\n• `set` - Fill in a quick weekly form\n• `view` - View your current schedule\n• `today` - See what today is\n• `delete` - Delete your schedule\n\n" +
		"**Examples:**\n• `/schedule weekly days:Monday,Wednesday,Friday reminder_time:18:00`\n• `/schedule rotation pattern:upper,lower,rest reminder_time:07:30 timezone:Europe/London`",
	"gallery": "**Description:** View user photo gallery\n\n" +
		"**Usage:** `/gallery [user] [options]`\n\n" +
		"**Options:**\n• `user` - User to view gallery for (defaults to yourself)\n• `status` - Filter by check-in status (all/went/missed)\n• `page` - Page number (default: 1)\n• `limit` - Photos per page (1-20)\n\n" +
		"**Examples:**\n• `/gallery` - View your own gallery\n• `/gallery @username status:went page:2`",
	"notifications": "**Description:** Manage your notifications\n\n" +
		"**Usage:** `/notifications <view|mark_read>`\n\n" +
		"**Subcommands:**\n• `view` - View your notifications\n• `mark_read` - Mark notifications as read\n\n" +
		"**Options for 'view':**\n• `type` - Filter by notification type\n• `unread_only` - Show only unread notifications\n• `page` - Page number\n\n" +
		"**Examples:**\n• `/notifications view type:cheer unread_only:true`\n• `/notifications mark_read`",
	"analytics": "**Description:** View your analytics and stats\n\n" +
		"**Usage:** `/analytics [period]`\n\n" +
		"**Options:**\n• `period` - Number of days to analyze (1-365, default: 30)\n\n" +
		"**Examples:**\n• `/analytics` - View last 30 days\n• `/analytics period:90` - View last 90 days",
}

// HelpTopics lists the commands that have a detailed help page.
func HelpTopics() []string {
	return []string{"checkin", "workout", "rest-day", "profile", "cheer", "streak", "leaderboard", "schedule", "gallery", "notifications", "analytics"}
}

func Help() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🤖 WaddleTracker Bot Help",
		Description: "Here are all the available commands:",
		Color:       ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			field("🏋️ Core Commands", "`/checkin` - Log your gym check-in\n`/workout` - Log a workout by type\n`/rest-day` - Log a rest day\n`/profile` - View user profile and stats\n`/cheer` - Send encouragement to another user\n`/streak` - View streak information", false),
			field("📊 Advanced Commands", "`/leaderboard` - View streak and check-in leaderboards\n`/schedule` - Manage your gym schedule\n`/gallery` - View user photo gallery\n`/notifications` - Manage your notifications\n`/analytics` - View your analytics and stats", false),
			field("❓ Help", "`/help [command]` - Get help with specific commands", false),
			field("🔗 Quick Links", fmt.Sprintf("[Website](%s) • [Support](%s) • [GitHub](%s)", websiteURL, supportURL, githubURL), false),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Use /help [command] for detailed information about a specific command"},
	}
}

// CommandHelp renders the help page for one command.
func CommandHelp(command string) *discordgo.MessageEmbed {
	text, ok := commandHelp[command]
	if !ok {
		text = "Command not found. Use `/help` to see all available commands."
	}
	return Info("Help: /"+command, text)
}
