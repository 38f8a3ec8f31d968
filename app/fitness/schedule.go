package fitness

import (
	"strings"
	"time"
)

type ScheduleType string

const (
	ScheduleRotating ScheduleType = "rotating"
	ScheduleWeekly   ScheduleType = "weekly"
	ScheduleCustom   ScheduleType = "custom"
)

// DayType is what a schedule says a given calendar day is.
type DayType string

const (
	DayWorkout DayType = "workout"
	DayRest    DayType = "rest"
	DayNone    DayType = "none"
)

// Plan is the part of a user's schedule the bot reasons about locally.
type Plan struct {
	Type            ScheduleType
	RotationPattern []string
	WorkoutDays     []string
	ReminderTime    string
	Timezone        string
	StartDate       time.Time
}

// Location falls back to UTC for an empty or unknown zone.
func (p Plan) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayAt reports the day type for the user's local calendar day containing t,
// plus the rotation label ("upper", "legs") when there is one.
func (p Plan) DayAt(t time.Time) (DayType, string) {
	local := t.In(p.Location())

	switch p.Type {
	case ScheduleRotating:
		if len(p.RotationPattern) == 0 {
			return DayNone, ""
		}
		offset := civilDay(local)
		if !p.StartDate.IsZero() {
			offset -= civilDay(p.StartDate.In(p.Location()))
		}
		idx := int(offset % int64(len(p.RotationPattern)))
		if idx < 0 {
			idx += len(p.RotationPattern)
		}
		entry := p.RotationPattern[idx]
		if strings.EqualFold(entry, StatusRest) {
			return DayRest, ""
		}
		return DayWorkout, entry

	case ScheduleWeekly:
		if len(p.WorkoutDays) == 0 {
			return DayNone, ""
		}
		for _, name := range p.WorkoutDays {
			if d, ok := ParseWeekday(name); ok && d == local.Weekday() {
				return DayWorkout, ""
			}
		}
		return DayRest, ""
	}

	return DayNone, ""
}

// Occurrence identifies one firing of a user's reminder in their local calendar.
type Occurrence struct {
	Date string // YYYY-MM-DD, local
	Time string // HH:MM, local
}

// Key is stable for the occurrence so a ledger can deduplicate deliveries.
func (o Occurrence) Key(discordID string) string {
	return discordID + "|" + o.Date + "|" + o.Time
}

// ReminderDue reports whether the plan's reminder fires at now's local minute.
// Rest days never fire.
func (p Plan) ReminderDue(now time.Time) (Occurrence, bool) {
	if p.ReminderTime == "" || ValidateTimeOfDay(p.ReminderTime) != nil {
		return Occurrence{}, false
	}
	local := now.In(p.Location())
	hhmm := local.Format("15:04")
	if hhmm != NormalizeTimeOfDay(p.ReminderTime) {
		return Occurrence{}, false
	}
	if day, _ := p.DayAt(now); day == DayRest {
		return Occurrence{}, false
	}
	return Occurrence{Date: local.Format("2006-01-02"), Time: hhmm}, true
}

// civilDay counts whole calendar days since the Unix epoch for t's wall-clock date.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
