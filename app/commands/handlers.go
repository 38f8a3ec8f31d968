// Package commands implements the slash command, button and modal handlers.
// Every handler follows the same pipeline: read options, validate locally,
// call the backend, then render the outcome through the decision tree.
package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/fitness"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"github.com/waddletracker/discord-bot/app/shared/storage"
)

// Today-schedule lookups are raced against these; losing the race means "no data".
const (
	checkInScheduleTimeout = time.Second
	profileScheduleTimeout = 2 * time.Second
)

// Backend is the subset of the API client the handlers use.
type Backend interface {
	RegisterUser(ctx context.Context, id api.Identity) (*api.RegisterResult, error)
	GetRegisterEmbed(ctx context.Context, id api.Identity) (*api.Embed, error)
	GetProfileEmbed(ctx context.Context, discordID string) (*api.Embed, error)
	LogCheckIn(ctx context.Context, req api.CheckInRequest) (*api.Embed, error)
	LogRestDay(ctx context.Context, req api.RestDayRequest) (*api.Embed, error)
	GetStreak(ctx context.Context, discordID string) (*api.StreakData, error)
	SendCheer(ctx context.Context, req api.CheerRequest) (*api.CheerResult, error)
	GetStreakLeaderboard(ctx context.Context, limit int, streakType string) (*api.LeaderboardData, error)
	GetCheckInLeaderboard(ctx context.Context, limit int, period string) (*api.LeaderboardData, error)
	CreateSchedule(ctx context.Context, req api.ScheduleRequest) (*api.ScheduleResult, error)
	GetSchedule(ctx context.Context, discordID string) (*api.Schedule, error)
	DeleteSchedule(ctx context.Context, discordID string) (*api.MessageResult, error)
	GetTodaySchedule(ctx context.Context, discordID string) (*api.TodaySchedule, error)
	GetGallery(ctx context.Context, discordID string, q api.GalleryQuery) (*api.GalleryPage, error)
	GetNotifications(ctx context.Context, discordID string, q api.NotificationQuery) (*api.NotificationPage, error)
	MarkNotificationsRead(ctx context.Context, discordID string, ids []string) error
	MarkAllNotificationsRead(ctx context.Context, discordID string) error
	GetAnalytics(ctx context.Context, discordID string, period int) (*api.Analytics, error)
}

// EventPublisher publishes domain events for background delivery.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Handlers holds the dependencies shared by every command.
type Handlers struct {
	backend Backend
	store   storage.ISInterface[any]
	events  EventPublisher
	logger  *slog.Logger
	now     func() time.Time

	checkInRace time.Duration
	profileRace time.Duration
}

// New wires the handlers. events may be nil, in which case nothing is published.
func New(backend Backend, store storage.ISInterface[any], events EventPublisher, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Handlers{
		backend:     backend,
		store:       store,
		events:      events,
		logger:      logger,
		now:         time.Now,
		checkInRace: checkInScheduleTimeout,
		profileRace: profileScheduleTimeout,
	}
}

// Register adds every command, button and modal handler to b.
func (h *Handlers) Register(b *interactions.Builder) *interactions.Builder {
	return b.
		Command("checkin", interactions.Command{Handler: h.CheckIn, Ephemeral: true}).
		Command("workout", interactions.Command{Handler: h.Workout, Ephemeral: true}).
		Command("rest-day", interactions.Command{Handler: h.RestDay, Ephemeral: true}).
		Command("profile", interactions.Command{Handler: h.Profile}).
		Command("cheer", interactions.Command{Handler: h.Cheer, Ephemeral: true}).
		Command("streak", interactions.Command{Handler: h.Streak}).
		Command("leaderboard", interactions.Command{Handler: h.Leaderboard}).
		Command("schedule", interactions.Command{Handler: h.Schedule, ManualAck: true}).
		Command("gallery", interactions.Command{Handler: h.Gallery, ManualAck: true}).
		Command("notifications", interactions.Command{Handler: h.Notifications, Ephemeral: true}).
		Command("analytics", interactions.Command{Handler: h.Analytics, Ephemeral: true}).
		Command("help", interactions.Command{Handler: h.Help, Ephemeral: true}).
		Component(interactions.KindCheckInConfirm, h.ConfirmCheckIn).
		Component(interactions.KindCheckInCancel, h.CancelCheckIn).
		Component(interactions.KindCheerSend, h.SendCheer).
		Component(interactions.KindCheerCancel, h.CancelCheer).
		Component(interactions.KindScheduleDeleteConfirm, h.ConfirmScheduleDelete).
		Component(interactions.KindScheduleDeleteCancel, h.CancelScheduleDelete).
		Component(interactions.KindRegister, h.RegisterButton).
		Component(interactions.KindLearnMore, h.LearnMoreButton).
		Component(interactions.KindPage, h.Page).
		Modal(interactions.ScheduleModalID, h.ScheduleModal)
}

// failure describes how a command presents a backend error.
type failure struct {
	title   string // troubleshooting title, e.g. "Check-in Error"
	action  string // completes "Unable to ..." and "before you can ..."
	command string
	// header replaces the default user line of the registration prompt.
	header string
	// subject is the user the registration prompt is for; defaults to the invoker.
	subject *discordgo.User
}

var defaultBenefits = []string{
	"Track your gym check-ins",
	"Build and maintain streaks",
	"Cheer on your friends",
	"Compete on the leaderboards",
}

// respondError renders the failure half of the decision tree. Components of
// the message being answered are replaced, so stale buttons never survive.
func (h *Handlers) respondError(ctx context.Context, req *interactions.Request, f failure, err error) error {
	user := req.User()
	switch api.KindOf(err) {
	case api.KindNotRegistered:
		req.Logger.InfoContext(ctx, "User is not registered", attr.String("command", f.command))
		return req.Responder.Send(h.registrationPrompt(ctx, req, f))
	case api.KindDuplicateCheckIn:
		return req.Responder.Send(interactions.Message{
			Embeds:     []*discordgo.MessageEmbed{h.stamp(embeds.AlreadyCheckedIn(user.ID, user.AvatarURL("")))},
			Components: interactions.NoComponents(),
		})
	}

	req.Logger.ErrorContext(ctx, "Backend call failed", attr.String("command", f.command), attr.Error(err))
	return req.Responder.Send(interactions.Message{
		Embeds: []*discordgo.MessageEmbed{embeds.TroubleshootingError(embeds.Troubleshooting{
			Title:     f.title,
			Action:    f.action,
			Command:   f.command,
			DiscordID: user.ID,
			AvatarURL: user.AvatarURL(""),
			Err:       errorMessage(err),
		})},
		Components: interactions.NoComponents(),
	})
}

// registrationPrompt prefers the backend's register embed and falls back to
// the local call-to-action when it is unavailable.
func (h *Handlers) registrationPrompt(ctx context.Context, req *interactions.Request, f failure) interactions.Message {
	subject := f.subject
	if subject == nil {
		subject = req.User()
	}
	header := f.header
	if header == "" {
		header = "<@" + subject.ID + ">"
	}

	fallback := embeds.RegistrationRequired(header, f.action, defaultBenefits)
	dto, err := h.backend.GetRegisterEmbed(ctx, identity(subject))
	if err != nil {
		req.Logger.WarnContext(ctx, "Register embed unavailable, using fallback", attr.Error(err))
		dto = nil
	}
	return interactions.Message{
		Embeds: []*discordgo.MessageEmbed{embeds.Merge(dto, fallback)},
		Components: embeds.RegisterButtons(
			interactions.Encode(interactions.KindRegister, subject.ID),
			interactions.Encode(interactions.KindLearnMore, subject.ID),
		),
	}
}

// rejectInput answers a local validation failure with an ephemeral error and
// reports whether err was one.
func rejectInput(req *interactions.Request, err error) (bool, error) {
	var verr *fitness.ValidationError
	if !errors.As(err, &verr) {
		return false, err
	}
	return true, req.Responder.Private(interactions.Message{
		Embeds: []*discordgo.MessageEmbed{embeds.Error(verr.Title, verr.Message)},
	})
}

// notYours answers a button press by someone other than its owner.
func notYours(req *interactions.Request) error {
	return req.Responder.Reply(interactions.Message{
		Embeds:    []*discordgo.MessageEmbed{embeds.NotYourButton()},
		Ephemeral: true,
	})
}

// todaySchedule races the today-schedule lookup against timeout. Any error or
// a lost race yields nil.
func (h *Handlers) todaySchedule(ctx context.Context, req *interactions.Request, discordID string, timeout time.Duration) *api.TodaySchedule {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		today *api.TodaySchedule
		err   error
	}
	done := make(chan result, 1)
	go func() {
		today, err := h.backend.GetTodaySchedule(ctx, discordID)
		done <- result{today, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			req.Logger.DebugContext(ctx, "Today's schedule unavailable", attr.Error(r.err))
			return nil
		}
		return r.today
	case <-ctx.Done():
		req.Logger.DebugContext(ctx, "Today's schedule lookup timed out", attr.Duration("timeout", timeout))
		return nil
	}
}

func (h *Handlers) publish(ctx context.Context, req *interactions.Request, topic string, payload any) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(ctx, topic, payload); err != nil {
		req.Logger.ErrorContext(ctx, "Failed to publish event", attr.Topic(topic), attr.Error(err))
	}
}

func (h *Handlers) stamp(e *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	return embeds.Stamp(e, h.now())
}

func (h *Handlers) embedMessage(e *discordgo.MessageEmbed) interactions.Message {
	return interactions.Message{Embeds: []*discordgo.MessageEmbed{h.stamp(e)}}
}

func identity(u *discordgo.User) api.Identity {
	return api.Identity{DiscordID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL("")}
}

func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
