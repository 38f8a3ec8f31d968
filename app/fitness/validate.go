// Package fitness holds the small amount of domain logic the bot owns: input
// validation performed before any backend call, and schedule arithmetic used to
// decide what today is for a user and when their reminder is due.
package fitness

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinCheerLength = 3
	MaxCheerLength = 500
)

// Check-in statuses accepted by /checkin.
const (
	StatusWent   = "went"
	StatusMissed = "missed"
	StatusRest   = "rest"
)

// CheckInStatuses are the statuses a user may pick on /checkin; rest is logged through /rest-day.
var CheckInStatuses = []string{StatusWent, StatusMissed}

// WorkoutTypes are the choices offered by /workout.
var WorkoutTypes = []string{"upper", "lower", "push", "pull", "legs", "cardio", "full_body", "core", "other"}

var timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidationError is returned for user input that violates a local rule.
// Title is suitable as an embed title, Message as its description.
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateCheer enforces the message bounds on the raw text, rejects blank
// messages and forbids cheering yourself.
func ValidateCheer(authorID, targetID, message string) error {
	if authorID == targetID {
		return &ValidationError{Field: "user", Title: "Invalid Target", Message: "You can't cheer for yourself! Try cheering for someone else."}
	}
	n := utf8.RuneCountInString(message)
	if n < MinCheerLength || n > MaxCheerLength || strings.TrimSpace(message) == "" {
		return &ValidationError{
			Field:   "message",
			Title:   "Invalid Message",
			Message: fmt.Sprintf("Cheer message must be between %d and %d characters.", MinCheerLength, MaxCheerLength),
		}
	}
	return nil
}

// ValidatePhotoURL accepts an empty value or an absolute URL with a host.
func ValidatePhotoURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: "photo_url", Title: "Invalid Photo URL", Message: "Please provide a valid URL for your gym photo."}
	}
	return nil
}

// ValidateStatus checks membership in the allowed literals.
func ValidateStatus(status string, allowed []string) error {
	if slices.Contains(allowed, status) {
		return nil
	}
	return &ValidationError{
		Field:   "status",
		Title:   "Invalid Status",
		Message: fmt.Sprintf("Status must be one of: %s.", strings.Join(allowed, ", ")),
	}
}

// ValidateTimeOfDay requires 24-hour HH:MM (a single-digit hour is tolerated).
func ValidateTimeOfDay(s string) error {
	if !timeOfDayPattern.MatchString(s) {
		return &ValidationError{Field: "time", Title: "Invalid Time Format", Message: "Please use 24-hour format (e.g., 18:00)."}
	}
	return nil
}

// NormalizeTimeOfDay zero-pads the hour so "6:05" compares equal to "06:05".
func NormalizeTimeOfDay(s string) string {
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}

// ValidateTimezone loads an IANA zone; empty means UTC.
func ValidateTimezone(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &ValidationError{Field: "timezone", Title: "Invalid Timezone", Message: fmt.Sprintf("%q is not a known timezone. Try something like America/New_York or UTC.", tz)}
	}
	return loc, nil
}

var weekdayNames = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
}

// ParseWeekday accepts full names and three-letter abbreviations in any case.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for _, d := range weekdayNames {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

// ParseWeekdays splits a comma separated list into canonical, de-duplicated day names.
func ParseWeekdays(raw string) ([]string, error) {
	var days []string
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, ok := ParseWeekday(part)
		if !ok {
			return nil, &ValidationError{Field: "days", Title: "Invalid Days", Message: fmt.Sprintf("%q is not a day of the week.", strings.TrimSpace(part))}
		}
		if !slices.Contains(days, d.String()) {
			days = append(days, d.String())
		}
	}
	if len(days) == 0 {
		return nil, &ValidationError{Field: "days", Title: "Invalid Days", Message: "Please list at least one workout day, e.g. Monday, Wednesday, Friday."}
	}
	return days, nil
}

// ParseRotationPattern splits "upper, lower, rest" into lower-cased entries.
func ParseRotationPattern(raw string) ([]string, error) {
	var pattern []string
	for _, part := range strings.Split(raw, ",") {
		entry := strings.ToLower(strings.TrimSpace(part))
		if entry == "" {
			continue
		}
		pattern = append(pattern, entry)
	}
	if len(pattern) == 0 {
		return nil, &ValidationError{Field: "pattern", Title: "Invalid Rotation", Message: "Please provide a rotation such as upper,lower,rest."}
	}
	return pattern, nil
}
