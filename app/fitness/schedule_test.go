package fitness

import (
	"testing"
	"time"
)

// mustLocal builds a wall-clock time in tz.
func mustLocal(t *testing.T, tz string, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func TestPlan_DayAt_Rotation(t *testing.T) {
	start := mustLocal(t, "Europe/Berlin", 2025, time.March, 3, 0, 0)
	p := Plan{
		Type:            ScheduleRotating,
		RotationPattern: []string{"upper", "lower", "rest"},
		Timezone:        "Europe/Berlin",
		StartDate:       start,
	}

	tests := []struct {
		day       int
		wantType  DayType
		wantLabel string
	}{
		{day: 3, wantType: DayWorkout, wantLabel: "upper"},
		{day: 4, wantType: DayWorkout, wantLabel: "lower"},
		{day: 5, wantType: DayRest},
		{day: 6, wantType: DayWorkout, wantLabel: "upper"},
		{day: 2, wantType: DayRest}, // before start wraps backwards
	}

	for _, tt := range tests {
		now := mustLocal(t, "Europe/Berlin", 2025, time.March, tt.day, 23, 30)
		gotType, gotLabel := p.DayAt(now)
		if gotType != tt.wantType || gotLabel != tt.wantLabel {
			t.Errorf("day %d: DayAt() = (%s, %q), want (%s, %q)", tt.day, gotType, gotLabel, tt.wantType, tt.wantLabel)
		}
	}
}

func TestPlan_DayAt_UsesUserTimezone(t *testing.T) {
	p := Plan{Type: ScheduleWeekly, WorkoutDays: []string{"Monday"}, Timezone: "Asia/Tokyo"}

	// Sunday 20:00 UTC is already Monday 05:00 in Tokyo.
	now := time.Date(2025, time.March, 9, 20, 0, 0, 0, time.UTC)
	if got, _ := p.DayAt(now); got != DayWorkout {
		t.Fatalf("expected workout day in Tokyo, got %s", got)
	}

	p.Timezone = "UTC"
	if got, _ := p.DayAt(now); got != DayRest {
		t.Fatalf("expected rest day in UTC, got %s", got)
	}
}

func TestPlan_DayAt_NoSchedule(t *testing.T) {
	for _, p := range []Plan{
		{Type: ScheduleCustom},
		{Type: ScheduleRotating},
		{Type: ScheduleWeekly},
	} {
		if got, _ := p.DayAt(time.Now()); got != DayNone {
			t.Errorf("%s with no data: got %s, want none", p.Type, got)
		}
	}
}

func TestPlan_ReminderDue(t *testing.T) {
	weekly := Plan{
		Type:         ScheduleWeekly,
		WorkoutDays:  []string{"Mon", "Wed", "Fri"},
		ReminderTime: "7:30",
		Timezone:     "America/New_York",
	}

	tests := []struct {
		name     string
		plan     Plan
		now      time.Time
		wantDue  bool
		wantDate string
	}{
		{
			name:     "local minute matches on a workout day",
			plan:     weekly,
			now:      mustLocal(t, "America/New_York", 2025, time.March, 10, 7, 30),
			wantDue:  true,
			wantDate: "2025-03-10",
		},
		{
			name:    "seconds within the minute still match",
			plan:    weekly,
			now:     mustLocal(t, "America/New_York", 2025, time.March, 10, 7, 30).Add(42 * time.Second),
			wantDue: true, wantDate: "2025-03-10",
		},
		{
			name: "wrong minute",
			plan: weekly,
			now:  mustLocal(t, "America/New_York", 2025, time.March, 10, 7, 31),
		},
		{
			name: "rest day never fires",
			plan: weekly,
			now:  mustLocal(t, "America/New_York", 2025, time.March, 11, 7, 30),
		},
		{
			name: "same instant in UTC is not the local reminder time",
			plan: weekly,
			now:  time.Date(2025, time.March, 10, 7, 30, 0, 0, time.UTC),
		},
		{
			name: "invalid reminder time",
			plan: Plan{Type: ScheduleWeekly, WorkoutDays: []string{"Monday"}, ReminderTime: "25:00"},
			now:  time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "custom schedule fires every day",
			plan:     Plan{Type: ScheduleCustom, ReminderTime: "18:00"},
			now:      time.Date(2025, time.March, 11, 18, 0, 0, 0, time.UTC),
			wantDue:  true,
			wantDate: "2025-03-11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, due := tt.plan.ReminderDue(tt.now)
			if due != tt.wantDue {
				t.Fatalf("ReminderDue() due = %v, want %v", due, tt.wantDue)
			}
			if due && occ.Date != tt.wantDate {
				t.Fatalf("ReminderDue() date = %q, want %q", occ.Date, tt.wantDate)
			}
		})
	}
}

func TestOccurrenceKey(t *testing.T) {
	occ := Occurrence{Date: "2025-03-10", Time: "07:30"}
	if got := occ.Key("42"); got != "42|2025-03-10|07:30" {
		t.Fatalf("Key() = %q", got)
	}
}
