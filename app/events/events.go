package events

import "time"

// Topics on the internal bus.
const (
	ReminderDue     = "reminders.due"
	CheerSent       = "cheers.sent"
	CheckInRecorded = "checkins.recorded"
)

// ReminderDuePayload asks for one personalized workout reminder.
type ReminderDuePayload struct {
	DiscordID  string    `json:"discord_id"`
	Username   string    `json:"username,omitempty"`
	Label      string    `json:"label,omitempty"`
	Occurrence string    `json:"occurrence"`
	DueAt      time.Time `json:"due_at"`
}

// CheerSentPayload is published after the backend accepted a cheer.
type CheerSentPayload struct {
	CheerID  string `json:"cheer_id,omitempty"`
	FromID   string `json:"from_id"`
	FromName string `json:"from_name,omitempty"`
	ToID     string `json:"to_id"`
	Message  string `json:"message"`
}

// CheckInRecordedPayload is published for check-ins that carry a photo.
type CheckInRecordedPayload struct {
	DiscordID   string `json:"discord_id"`
	Username    string `json:"username,omitempty"`
	Status      string `json:"status"`
	WorkoutType string `json:"workout_type,omitempty"`
	PhotoURL    string `json:"photo_url"`
}
