package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// Scheduler runs the reminder dispatcher on a fixed interval aligned to the
// start of the next minute. Ticks never overlap.
type Scheduler struct {
	scheduler  gocron.Scheduler
	dispatcher *Dispatcher
	logger     *slog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

func New(dispatcher *Dispatcher, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		interval = time.Minute
	}

	s, err := gocron.NewScheduler(gocron.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched := &Scheduler{scheduler: s, dispatcher: dispatcher, logger: logger, ctx: ctx, cancel: cancel}

	start := time.Now().Truncate(time.Minute).Add(time.Minute)
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sched.run),
		gocron.WithName("workout-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartDateTime(start)),
	)
	if err != nil {
		cancel()
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to register reminder job: %w", err)
	}
	return sched, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(s.ctx, time.Minute)
	defer cancel()

	if _, err := s.dispatcher.Tick(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Reminder tick failed", attr.Error(err))
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("Starting reminder scheduler")
	s.scheduler.Start()
}

// Shutdown cancels an in-flight tick and waits for the job to stop.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	return s.scheduler.Shutdown()
}
