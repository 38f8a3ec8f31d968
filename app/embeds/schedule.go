package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/fitness"
)

func scheduleFields(s api.Schedule) []*discordgo.MessageEmbedField {
	var fields []*discordgo.MessageEmbedField
	switch fitness.ScheduleType(s.ScheduleType) {
	case fitness.ScheduleRotating:
		fields = append(fields, field("🔄 Rotation", strings.Join(s.RotationPattern, " → "), false))
	default:
		fields = append(fields, field("📆 Workout Days", orDefault(strings.Join(s.WorkoutDays, ", "), "None"), false))
	}
	fields = append(fields,
		field("⏰ Reminder Time", orDefault(s.ReminderTime, "Not set"), true),
		field("🌍 Timezone", orDefault(s.Timezone, "UTC"), true),
	)
	return fields
}

func ScheduleView(discordID string, s api.Schedule) *discordgo.MessageEmbed {
	fields := scheduleFields(s)
	fields = append(fields, field("🔔 Reminders",
		fmt.Sprintf("You'll get a reminder at %s (%s) on workout days.", orDefault(s.ReminderTime, "your reminder time"), orDefault(s.Timezone, "UTC")), false))
	return &discordgo.MessageEmbed{
		Title:       "📅 Your Gym Schedule",
		Description: userLine(discordID) + "\n\nHere's your current gym schedule:",
		Color:       ColorInfo,
		Fields:      fields,
	}
}

// NoSchedule is shown by view/today/delete when the user has nothing set.
func NoSchedule(discordID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📅 No Schedule Yet",
		Description: userLine(discordID) + "\n\nYou haven't set a gym schedule yet.",
		Color:       ColorWarning,
		Fields:      []*discordgo.MessageEmbedField{createScheduleField()},
	}
}

func createScheduleField() *discordgo.MessageEmbedField {
	return field("🔗 Create New Schedule",
		"• `/schedule rotation` - Create a rotation pattern\n• `/schedule weekly` - Set specific days\n• `/schedule set` - Fill in a quick form", false)
}

func ScheduleCreated(discordID string, res api.ScheduleResult, req api.ScheduleRequest) *discordgo.MessageEmbed {
	s := api.Schedule{
		ScheduleType:    req.ScheduleType,
		RotationPattern: req.RotationPattern,
		WorkoutDays:     req.WorkoutDays,
		ReminderTime:    req.ReminderTime,
		Timezone:        req.Timezone,
	}
	if res.Schedule != nil {
		s = *res.Schedule
	}
	fields := scheduleFields(s)
	fields = append(fields, field("📅 Today's Activity", TodayActivity(res.TodayScheduledType), false))
	return &discordgo.MessageEmbed{
		Title:       "✅ Schedule Created!",
		Description: orDefault(res.Message, userLine(discordID)+"\n\nYour schedule has been saved."),
		Color:       ColorSuccess,
		Fields:      fields,
	}
}

func ScheduleToday(discordID string, today api.TodaySchedule) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "📅 Today's Plan",
		Description: userLine(discordID),
		Color:       ColorInfo,
		Fields:      []*discordgo.MessageEmbedField{TodayField(&today)},
	}
	switch fitness.DayType(today.ScheduledType) {
	case fitness.DayWorkout:
		e.Fields = append(e.Fields, field("💪 Ready?", "Use `/checkin` or `/workout` once you're done!", false))
	case fitness.DayRest:
		e.Fields = append(e.Fields, field("💡 Recovery Tips", recoveryTips, false))
	}
	return e
}

func ScheduleDeletePrompt() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🗑️ Delete Schedule",
		Description: "Are you sure you want to delete your gym schedule?",
		Color:       ColorStreak,
		Fields: []*discordgo.MessageEmbedField{
			field("⚠️ Warning", "This will stop all workout reminders. You can always set a new schedule later.", false),
		},
	}
}

func ScheduleDeleted(discordID, avatarURL, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✅ Schedule Deleted",
		Description: fmt.Sprintf("%s\n\n%s\nYou can create a new schedule anytime using `/schedule rotation` or `/schedule weekly`.",
			userLine(discordID), orDefault(message, "Your schedule has been deleted.")),
		Color:     ColorSuccess,
		Fields:    []*discordgo.MessageEmbedField{createScheduleField()},
		Thumbnail: Thumbnail(avatarURL),
	}
}

func ScheduleDeleteCancelled() *discordgo.MessageEmbed {
	return Error("Schedule Deletion Cancelled", "Your schedule deletion has been cancelled.")
}

// Schedule modal input ids.
const (
	ScheduleModalDays     = "schedule_days"
	ScheduleModalTime     = "schedule_time"
	ScheduleModalTimezone = "schedule_timezone"
)

// ScheduleModal is the form opened by /schedule set.
func ScheduleModal(customID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    "Set Gym Schedule",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    ScheduleModalDays,
					Label:       "Days of the week",
					Style:       discordgo.TextInputShort,
					Placeholder: "Monday,Wednesday,Friday",
					Required:    true,
					MaxLength:   100,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    ScheduleModalTime,
					Label:       "Time (24-hour format)",
					Style:       discordgo.TextInputShort,
					Placeholder: "18:00",
					Required:    true,
					MaxLength:   5,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    ScheduleModalTimezone,
					Label:       "Timezone",
					Style:       discordgo.TextInputShort,
					Placeholder: "UTC",
					Required:    false,
					MaxLength:   64,
				},
			}},
		},
	}
}
