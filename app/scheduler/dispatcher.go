package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/events"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/mock_dispatcher.go -package=mocks

// ReminderSource lists every user with an active reminder.
type ReminderSource interface {
	ListReminderSchedules(ctx context.Context) ([]api.ReminderSchedule, error)
}

// Publisher hands due reminders to the event bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Ledger records which occurrences were already dispatched.
type Ledger interface {
	Claim(key string) (bool, error)
	Release(key string)
}

// Dispatcher finds the reminders due at the current minute and publishes
// each occurrence at most once.
type Dispatcher struct {
	Source    ReminderSource
	Publisher Publisher
	Ledger    Ledger
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	Now       func() time.Time
}

// Tick runs one pass and returns how many reminders were published.
func (d *Dispatcher) Tick(ctx context.Context) (int, error) {
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	schedules, err := d.Source.ListReminderSchedules(ctx)
	if err != nil {
		d.Metrics.RecordReminder("list_failed")
		return 0, fmt.Errorf("failed to list reminder schedules: %w", err)
	}

	published := 0
	for _, rs := range schedules {
		if rs.DiscordID == "" {
			continue
		}
		plan := rs.Schedule.Plan()
		occ, due := plan.ReminderDue(now)
		if !due {
			continue
		}

		key := occ.Key(rs.DiscordID)
		claimed, err := d.Ledger.Claim(key)
		if err != nil {
			d.Logger.ErrorContext(ctx, "Failed to claim reminder occurrence", attr.UserID(rs.DiscordID), attr.Error(err))
			continue
		}
		if !claimed {
			d.Metrics.RecordReminder("duplicate")
			continue
		}

		_, label := plan.DayAt(now)
		payload := events.ReminderDuePayload{
			DiscordID:  rs.DiscordID,
			Username:   rs.Username,
			Label:      label,
			Occurrence: key,
			DueAt:      now.UTC(),
		}
		if err := d.Publisher.Publish(ctx, events.ReminderDue, payload); err != nil {
			d.Ledger.Release(key)
			d.Metrics.RecordReminder("publish_failed")
			d.Logger.ErrorContext(ctx, "Failed to publish reminder", attr.UserID(rs.DiscordID), attr.Error(err))
			continue
		}
		published++
	}

	if published > 0 {
		d.Logger.InfoContext(ctx, "Reminders dispatched", attr.Int("count", published))
	}
	return published, nil
}
