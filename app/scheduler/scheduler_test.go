package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/waddletracker/discord-bot/app/scheduler/mocks"
	"go.uber.org/mock/gomock"
)

func TestScheduler_StartAndShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockReminderSource(ctrl)
	source.EXPECT().ListReminderSchedules(gomock.Any()).Return(nil, nil).AnyTimes()

	s, err := New(&Dispatcher{Source: source, Logger: testLogger()}, time.Minute, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Start()
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if s.ctx.Err() != context.Canceled {
		t.Fatalf("expected tick context to be cancelled on shutdown")
	}
}

func TestScheduler_RunSwallowsTickErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockReminderSource(ctrl)
	source.EXPECT().ListReminderSchedules(gomock.Any()).Return(nil, context.DeadlineExceeded)

	s, err := New(&Dispatcher{Source: source, Logger: testLogger()}, 0, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Shutdown()

	s.run()
}
