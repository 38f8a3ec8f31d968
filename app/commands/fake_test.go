package commands

import (
	"context"
	"sync"

	"github.com/waddletracker/discord-bot/app/api"
)

// fakeBackend is a programmable Backend. Unset funcs return empty successes,
// except GetTodaySchedule and GetRegisterEmbed which report "not found".
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	RegisterUserFunc          func(ctx context.Context, id api.Identity) (*api.RegisterResult, error)
	GetRegisterEmbedFunc      func(ctx context.Context, id api.Identity) (*api.Embed, error)
	GetProfileEmbedFunc       func(ctx context.Context, discordID string) (*api.Embed, error)
	LogCheckInFunc            func(ctx context.Context, req api.CheckInRequest) (*api.Embed, error)
	LogRestDayFunc            func(ctx context.Context, req api.RestDayRequest) (*api.Embed, error)
	GetStreakFunc             func(ctx context.Context, discordID string) (*api.StreakData, error)
	SendCheerFunc             func(ctx context.Context, req api.CheerRequest) (*api.CheerResult, error)
	GetStreakLeaderboardFunc  func(ctx context.Context, limit int, streakType string) (*api.LeaderboardData, error)
	GetCheckInLeaderboardFunc func(ctx context.Context, limit int, period string) (*api.LeaderboardData, error)
	CreateScheduleFunc        func(ctx context.Context, req api.ScheduleRequest) (*api.ScheduleResult, error)
	GetScheduleFunc           func(ctx context.Context, discordID string) (*api.Schedule, error)
	DeleteScheduleFunc        func(ctx context.Context, discordID string) (*api.MessageResult, error)
	GetTodayScheduleFunc      func(ctx context.Context, discordID string) (*api.TodaySchedule, error)
	GetGalleryFunc            func(ctx context.Context, discordID string, q api.GalleryQuery) (*api.GalleryPage, error)
	GetNotificationsFunc      func(ctx context.Context, discordID string, q api.NotificationQuery) (*api.NotificationPage, error)
	MarkNotificationsReadFunc func(ctx context.Context, discordID string, ids []string) error
	MarkAllReadFunc           func(ctx context.Context, discordID string) error
	GetAnalyticsFunc          func(ctx context.Context, discordID string, period int) (*api.Analytics, error)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int)}
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

// Calls reports how often name was called.
func (f *fakeBackend) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// TotalCalls reports every backend call made.
func (f *fakeBackend) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

var errNotFound = &api.Error{Message: "Not found", StatusCode: 404, Kind: api.KindNotFound}

func (f *fakeBackend) RegisterUser(ctx context.Context, id api.Identity) (*api.RegisterResult, error) {
	f.record("RegisterUser")
	if f.RegisterUserFunc != nil {
		return f.RegisterUserFunc(ctx, id)
	}
	return &api.RegisterResult{Message: "User registered successfully"}, nil
}

func (f *fakeBackend) GetRegisterEmbed(ctx context.Context, id api.Identity) (*api.Embed, error) {
	f.record("GetRegisterEmbed")
	if f.GetRegisterEmbedFunc != nil {
		return f.GetRegisterEmbedFunc(ctx, id)
	}
	return nil, errNotFound
}

func (f *fakeBackend) GetProfileEmbed(ctx context.Context, discordID string) (*api.Embed, error) {
	f.record("GetProfileEmbed")
	if f.GetProfileEmbedFunc != nil {
		return f.GetProfileEmbedFunc(ctx, discordID)
	}
	return &api.Embed{}, nil
}

func (f *fakeBackend) LogCheckIn(ctx context.Context, req api.CheckInRequest) (*api.Embed, error) {
	f.record("LogCheckIn")
	if f.LogCheckInFunc != nil {
		return f.LogCheckInFunc(ctx, req)
	}
	return &api.Embed{}, nil
}

func (f *fakeBackend) LogRestDay(ctx context.Context, req api.RestDayRequest) (*api.Embed, error) {
	f.record("LogRestDay")
	if f.LogRestDayFunc != nil {
		return f.LogRestDayFunc(ctx, req)
	}
	return &api.Embed{}, nil
}

func (f *fakeBackend) GetStreak(ctx context.Context, discordID string) (*api.StreakData, error) {
	f.record("GetStreak")
	if f.GetStreakFunc != nil {
		return f.GetStreakFunc(ctx, discordID)
	}
	return &api.StreakData{}, nil
}

func (f *fakeBackend) SendCheer(ctx context.Context, req api.CheerRequest) (*api.CheerResult, error) {
	f.record("SendCheer")
	if f.SendCheerFunc != nil {
		return f.SendCheerFunc(ctx, req)
	}
	return &api.CheerResult{CheerID: "cheer-1"}, nil
}

func (f *fakeBackend) GetStreakLeaderboard(ctx context.Context, limit int, streakType string) (*api.LeaderboardData, error) {
	f.record("GetStreakLeaderboard")
	if f.GetStreakLeaderboardFunc != nil {
		return f.GetStreakLeaderboardFunc(ctx, limit, streakType)
	}
	return &api.LeaderboardData{}, nil
}

func (f *fakeBackend) GetCheckInLeaderboard(ctx context.Context, limit int, period string) (*api.LeaderboardData, error) {
	f.record("GetCheckInLeaderboard")
	if f.GetCheckInLeaderboardFunc != nil {
		return f.GetCheckInLeaderboardFunc(ctx, limit, period)
	}
	return &api.LeaderboardData{}, nil
}

func (f *fakeBackend) CreateSchedule(ctx context.Context, req api.ScheduleRequest) (*api.ScheduleResult, error) {
	f.record("CreateSchedule")
	if f.CreateScheduleFunc != nil {
		return f.CreateScheduleFunc(ctx, req)
	}
	return &api.ScheduleResult{}, nil
}

func (f *fakeBackend) GetSchedule(ctx context.Context, discordID string) (*api.Schedule, error) {
	f.record("GetSchedule")
	if f.GetScheduleFunc != nil {
		return f.GetScheduleFunc(ctx, discordID)
	}
	return &api.Schedule{}, nil
}

func (f *fakeBackend) DeleteSchedule(ctx context.Context, discordID string) (*api.MessageResult, error) {
	f.record("DeleteSchedule")
	if f.DeleteScheduleFunc != nil {
		return f.DeleteScheduleFunc(ctx, discordID)
	}
	return &api.MessageResult{}, nil
}

func (f *fakeBackend) GetTodaySchedule(ctx context.Context, discordID string) (*api.TodaySchedule, error) {
	f.record("GetTodaySchedule")
	if f.GetTodayScheduleFunc != nil {
		return f.GetTodayScheduleFunc(ctx, discordID)
	}
	return nil, errNotFound
}

func (f *fakeBackend) GetGallery(ctx context.Context, discordID string, q api.GalleryQuery) (*api.GalleryPage, error) {
	f.record("GetGallery")
	if f.GetGalleryFunc != nil {
		return f.GetGalleryFunc(ctx, discordID, q)
	}
	return &api.GalleryPage{}, nil
}

func (f *fakeBackend) GetNotifications(ctx context.Context, discordID string, q api.NotificationQuery) (*api.NotificationPage, error) {
	f.record("GetNotifications")
	if f.GetNotificationsFunc != nil {
		return f.GetNotificationsFunc(ctx, discordID, q)
	}
	return &api.NotificationPage{}, nil
}

func (f *fakeBackend) MarkNotificationsRead(ctx context.Context, discordID string, ids []string) error {
	f.record("MarkNotificationsRead")
	if f.MarkNotificationsReadFunc != nil {
		return f.MarkNotificationsReadFunc(ctx, discordID, ids)
	}
	return nil
}

func (f *fakeBackend) MarkAllNotificationsRead(ctx context.Context, discordID string) error {
	f.record("MarkAllNotificationsRead")
	if f.MarkAllReadFunc != nil {
		return f.MarkAllReadFunc(ctx, discordID)
	}
	return nil
}

func (f *fakeBackend) GetAnalytics(ctx context.Context, discordID string, period int) (*api.Analytics, error) {
	f.record("GetAnalytics")
	if f.GetAnalyticsFunc != nil {
		return f.GetAnalyticsFunc(ctx, discordID, period)
	}
	return &api.Analytics{}, nil
}

var _ Backend = (*fakeBackend)(nil)

type publishedEvent struct {
	topic   string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, payload: payload})
	return nil
}

func (p *fakePublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
