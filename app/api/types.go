package api

import (
	"time"

	"github.com/waddletracker/discord-bot/app/fitness"
)

// Embed is a ready-made embed description the backend may return. Every
// field is optional; the bot fills the gaps with its own fallback.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Thumbnail   *EmbedImage  `json:"thumbnail,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedImage struct {
	URL string `json:"url"`
}

type User struct {
	ID        string    `json:"id"`
	DiscordID string    `json:"discord_id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the Discord identity sent with registration and logging calls.
type Identity struct {
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type RegisterResult struct {
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	// AlreadyRegistered is set when the backend reported an existing account.
	AlreadyRegistered bool `json:"-"`
}

type CheckIn struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Date             time.Time `json:"date"`
	Status           string    `json:"status"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	DiscordMessageID string    `json:"discord_message_id,omitempty"`
	WorkoutType      string    `json:"workout_type,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

type CheckInRequest struct {
	Identity
	Status      string    `json:"status"`
	WorkoutType string    `json:"workout_type,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Date        time.Time `json:"date"`
}

type RestDayRequest struct {
	Identity
	Notes string    `json:"notes,omitempty"`
	Date  time.Time `json:"date"`
}

type StreakData struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalCheckIns int `json:"total_checkins"`
}

type CheerRequest struct {
	FromDiscordID string `json:"from_discord_id"`
	FromUsername  string `json:"from_username"`
	ToDiscordID   string `json:"to_discord_id"`
	ToUsername    string `json:"to_username,omitempty"`
	Message       string `json:"message"`
}

type CheerResult struct {
	CheerID string `json:"cheer_id,omitempty"`
	Embed   *Embed `json:"embed,omitempty"`
}

type LeaderboardEntry struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Value     int    `json:"value"`
	Rank      int    `json:"rank"`
}

type LeaderboardData struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
	Embed   *Embed             `json:"embed,omitempty"`
}

// Schedule mirrors the backend schedule record.
type Schedule struct {
	DiscordID       string    `json:"discord_id,omitempty"`
	ScheduleType    string    `json:"schedule_type"`
	RotationPattern []string  `json:"rotation_pattern,omitempty"`
	WorkoutDays     []string  `json:"workout_days,omitempty"`
	ReminderTime    string    `json:"reminder_time"`
	Timezone        string    `json:"timezone"`
	RestDaysAllowed bool      `json:"rest_days_allowed"`
	StartDate       Date      `json:"start_date,omitzero"`
}

// Plan converts the record into the form the fitness package reasons about.
func (s Schedule) Plan() fitness.Plan {
	return fitness.Plan{
		Type:            fitness.ScheduleType(s.ScheduleType),
		RotationPattern: s.RotationPattern,
		WorkoutDays:     s.WorkoutDays,
		ReminderTime:    s.ReminderTime,
		Timezone:        s.Timezone,
		StartDate:       s.StartDate.Time,
	}
}

type ScheduleRequest struct {
	DiscordID       string   `json:"discord_id"`
	ScheduleType    string   `json:"schedule_type"`
	RotationPattern []string `json:"rotation_pattern,omitempty"`
	WorkoutDays     []string `json:"workout_days,omitempty"`
	Timezone        string   `json:"timezone"`
	ReminderTime    string   `json:"reminder_time"`
	RestDaysAllowed bool     `json:"rest_days_allowed"`
}

type ScheduleResult struct {
	Message            string    `json:"message"`
	Schedule           *Schedule `json:"schedule,omitempty"`
	TodayScheduledType string    `json:"today_scheduled_type,omitempty"`
}

type TodaySchedule struct {
	ScheduledType string `json:"scheduled_type"`
	WorkoutType   string `json:"workout_type,omitempty"`
}

// IsRest reports whether the backend flagged today as a rest day.
func (t *TodaySchedule) IsRest() bool {
	return t != nil && t.ScheduledType == string(fitness.DayRest)
}

type ReminderSchedule struct {
	DiscordID string   `json:"discord_id"`
	Username  string   `json:"username,omitempty"`
	Schedule  Schedule `json:"schedule"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type GalleryQuery struct {
	Page   int
	Limit  int
	Status string
}

type GalleryPage struct {
	Photos     []CheckIn  `json:"photos"`
	Pagination Pagination `json:"pagination"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationQuery struct {
	Page       int
	Limit      int
	Type       string
	UnreadOnly bool
}

type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
	UnreadCount   int            `json:"unread_count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Analytics struct {
	Period          int         `json:"period"`
	TotalCheckIns   int         `json:"total_checkins"`
	WentCount       int         `json:"went_count"`
	MissedCount     int         `json:"missed_count"`
	ConsistencyRate float64     `json:"consistency_rate"`
	AverageStreak   float64     `json:"average_streak"`
	BestStreak      int         `json:"best_streak"`
	CheckInTrends   []DateCount `json:"checkin_trends"`
	WeeklyBreakdown []DayCount  `json:"weekly_breakdown"`
}
