package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/fitness"
)

// Option bounds shared by the schema and the handlers.
const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
	defaultGalleryLimit     = 5
	maxGalleryLimit         = 20
	notificationsPageSize   = 10
	defaultAnalyticsPeriod  = 30
	maxAnalyticsPeriod      = 365
)

func floatPtr(v float64) *float64 { return &v }

func choices(values ...string) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, v := range values {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v})
	}
	return out
}

func userOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    required,
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func intOption(name, description string, minValue, maxValue float64) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		MinValue:    floatPtr(minValue),
	}
	if maxValue > 0 {
		opt.MaxValue = maxValue
	}
	return opt
}

func subcommand(name, description string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     opts,
	}
}

// Definitions returns the slash command set registered with Discord.
func Definitions() []*discordgo.ApplicationCommand {
	status := stringOption("status", "Did you go to the gym?", false)
	status.Choices = choices(fitness.CheckInStatuses...)

	workoutType := stringOption("type", "Type of workout", true)
	workoutType.Choices = choices(fitness.WorkoutTypes...)

	cheerMessage := stringOption("message", "Your encouraging message", true)
	cheerMessage.MinLength = intPtr(fitness.MinCheerLength)
	cheerMessage.MaxLength = fitness.MaxCheerLength

	streakType := stringOption("type", "Current or longest streaks", false)
	streakType.Choices = choices("current", "longest")

	period := stringOption("period", "Time period", false)
	period.Choices = choices("all", "week", "month", "year")

	galleryStatus := stringOption("status", "Filter by check-in status", false)
	galleryStatus.Choices = choices("all", fitness.StatusWent, fitness.StatusMissed)

	notificationType := stringOption("type", "Filter by notification type", false)
	notificationType.Choices = choices("all", "cheer", "achievement", "reminder", "system")

	helpTopic := stringOption("command", "Command to get help for", false)
	helpTopic.Choices = choices(embeds.HelpTopics()...)

	timezone := func() *discordgo.ApplicationCommandOption {
		return stringOption("timezone", "IANA timezone, e.g. America/New_York (default UTC)", false)
	}
	reminderTime := func() *discordgo.ApplicationCommandOption {
		return stringOption("reminder_time", "Reminder time in 24-hour format, e.g. 18:00", true)
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "checkin",
			Description: "Log your gym check-in",
			Options: []*discordgo.ApplicationCommandOption{
				status,
				stringOption("photo_url", "URL of your gym photo", false),
				stringOption("notes", "Any notes about your session", false),
			},
		},
		{
			Name:        "workout",
			Description: "Log a workout with its type",
			Options: []*discordgo.ApplicationCommandOption{
				workoutType,
				stringOption("notes", "Any notes about your workout", false),
				stringOption("photo_url", "URL of your gym photo", false),
			},
		},
		{
			Name:        "rest-day",
			Description: "Log a rest day without breaking your streak",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("notes", "Any notes about your rest day", false),
			},
		},
		{
			Name:        "profile",
			Description: "View user profile and stats",
			Options:     []*discordgo.ApplicationCommandOption{userOption("User to view (defaults to you)", false)},
		},
		{
			Name:        "cheer",
			Description: "Send encouragement to another user",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to cheer for", true),
				cheerMessage,
			},
		},
		{
			Name:        "streak",
			Description: "View streak information",
			Options:     []*discordgo.ApplicationCommandOption{userOption("User to view (defaults to you)", false)},
		},
		{
			Name:        "leaderboard",
			Description: "View leaderboards",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("streaks", "Streak leaderboard",
					streakType,
					intOption("limit", "Number of users to show", 1, maxLeaderboardLimit),
				),
				subcommand("checkins", "Check-in leaderboard",
					period,
					intOption("limit", "Number of users to show", 1, maxLeaderboardLimit),
				),
			},
		},
		{
			Name:        "schedule",
			Description: "Manage your gym schedule",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("rotation", "Cycle through a workout pattern",
					stringOption("pattern", "Comma separated rotation, e.g. upper,lower,rest", true),
					reminderTime(),
					timezone(),
				),
				subcommand("weekly", "Work out on fixed days",
					stringOption("days", "Comma separated days, e.g. Monday,Wednesday,Friday", true),
					reminderTime(),
					timezone(),
				),
				subcommand("set", "Fill in a quick weekly schedule form"),
				subcommand("view", "View your current schedule"),
				subcommand("today", "See what today is on your schedule"),
				subcommand("delete", "Delete your schedule"),
			},
		},
		{
			Name:        "gallery",
			Description: "View user photo gallery",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to view (defaults to you)", false),
				galleryStatus,
				intOption("page", "Page number", 1, 0),
				intOption("limit", "Photos per page", 1, maxGalleryLimit),
			},
		},
		{
			Name:        "notifications",
			Description: "Manage your notifications",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("view", "View your notifications",
					notificationType,
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "unread_only",
						Description: "Show only unread notifications",
					},
					intOption("page", "Page number", 1, 0),
				),
				subcommand("mark_read", "Mark notifications as read",
					stringOption("notification_ids", "Comma separated ids (leave empty for all)", false),
				),
			},
		},
		{
			Name:        "analytics",
			Description: "View your analytics and stats",
			Options: []*discordgo.ApplicationCommandOption{
				intOption("period", "Number of days to analyze", 1, maxAnalyticsPeriod),
			},
		},
		{
			Name:        "help",
			Description: "Get help with bot commands",
			Options:     []*discordgo.ApplicationCommandOption{helpTopic},
		},
	}
}

func intPtr(v int) *int { return &v }
