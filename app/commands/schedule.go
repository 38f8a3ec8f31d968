package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/fitness"
	"github.com/waddletracker/discord-bot/app/interactions"
)

var scheduleFailure = failure{title: "Schedule Error", action: "manage your schedule", command: "schedule"}

// Schedule acknowledges manually: "set" answers with a modal, which must be
// the first response, and the create subcommands validate before deferring.
func (h *Handlers) Schedule(ctx context.Context, req *interactions.Request) error {
	sub, opts := commandOptions(req)
	switch sub {
	case "set":
		return req.Responder.Modal(embeds.ScheduleModal(interactions.ScheduleModalID))
	case "rotation":
		return h.createRotation(ctx, req, opts)
	case "weekly":
		return h.createWeekly(ctx, req, opts.str("days", ""), opts.str("reminder_time", ""), opts.str("timezone", ""))
	case "view":
		return h.viewSchedule(ctx, req)
	case "today":
		return h.scheduleToday(ctx, req)
	case "delete":
		return h.promptScheduleDelete(ctx, req)
	default:
		return fmt.Errorf("unknown schedule subcommand %q", sub)
	}
}

// ScheduleModal creates a weekly schedule from the /schedule set form.
func (h *Handlers) ScheduleModal(ctx context.Context, req *interactions.Request) error {
	values := modalValues(req)
	return h.createWeekly(ctx, req, values[embeds.ScheduleModalDays], values[embeds.ScheduleModalTime], values[embeds.ScheduleModalTimezone])
}

func validateReminder(reminderTime, timezone string) (string, string, error) {
	if err := fitness.ValidateTimeOfDay(reminderTime); err != nil {
		return "", "", err
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := fitness.ValidateTimezone(timezone); err != nil {
		return "", "", err
	}
	return fitness.NormalizeTimeOfDay(reminderTime), timezone, nil
}

func (h *Handlers) createRotation(ctx context.Context, req *interactions.Request, opts options) error {
	pattern, err := fitness.ParseRotationPattern(opts.str("pattern", ""))
	if err != nil {
		_, err = rejectInput(req, err)
		return err
	}
	reminderTime, timezone, err := validateReminder(opts.str("reminder_time", ""), opts.str("timezone", ""))
	if err != nil {
		_, err = rejectInput(req, err)
		return err
	}
	return h.createSchedule(ctx, req, api.ScheduleRequest{
		DiscordID:       req.UserID(),
		ScheduleType:    string(fitness.ScheduleRotating),
		RotationPattern: pattern,
		Timezone:        timezone,
		ReminderTime:    reminderTime,
		RestDaysAllowed: true,
	})
}

func (h *Handlers) createWeekly(ctx context.Context, req *interactions.Request, rawDays, rawTime, rawTimezone string) error {
	days, err := fitness.ParseWeekdays(rawDays)
	if err != nil {
		_, err = rejectInput(req, err)
		return err
	}
	reminderTime, timezone, err := validateReminder(rawTime, rawTimezone)
	if err != nil {
		_, err = rejectInput(req, err)
		return err
	}
	return h.createSchedule(ctx, req, api.ScheduleRequest{
		DiscordID:       req.UserID(),
		ScheduleType:    string(fitness.ScheduleWeekly),
		WorkoutDays:     days,
		Timezone:        timezone,
		ReminderTime:    reminderTime,
		RestDaysAllowed: true,
	})
}

func (h *Handlers) createSchedule(ctx context.Context, req *interactions.Request, sr api.ScheduleRequest) error {
	if err := req.Responder.Defer(true); err != nil {
		return err
	}
	res, err := h.backend.CreateSchedule(ctx, sr)
	if err != nil {
		return h.respondError(ctx, req, scheduleFailure, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.ScheduleCreated(sr.DiscordID, *res, sr)))
}

// respondScheduleError shows the empty-schedule hint on 404 and the regular
// decision tree otherwise.
func (h *Handlers) respondScheduleError(ctx context.Context, req *interactions.Request, err error) error {
	if api.IsKind(err, api.KindNotFound) {
		msg := h.embedMessage(embeds.NoSchedule(req.UserID()))
		msg.Components = interactions.NoComponents()
		return req.Responder.Send(msg)
	}
	return h.respondError(ctx, req, scheduleFailure, err)
}

func (h *Handlers) viewSchedule(ctx context.Context, req *interactions.Request) error {
	if err := req.Responder.Defer(true); err != nil {
		return err
	}
	s, err := h.backend.GetSchedule(ctx, req.UserID())
	if err != nil {
		return h.respondScheduleError(ctx, req, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.ScheduleView(req.UserID(), *s)))
}

func (h *Handlers) scheduleToday(ctx context.Context, req *interactions.Request) error {
	if err := req.Responder.Defer(true); err != nil {
		return err
	}
	today, err := h.backend.GetTodaySchedule(ctx, req.UserID())
	if err != nil {
		return h.respondScheduleError(ctx, req, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.ScheduleToday(req.UserID(), *today)))
}

// promptScheduleDelete confirms that a schedule exists before asking.
func (h *Handlers) promptScheduleDelete(ctx context.Context, req *interactions.Request) error {
	if err := req.Responder.Defer(true); err != nil {
		return err
	}
	userID := req.UserID()
	if _, err := h.backend.GetSchedule(ctx, userID); err != nil {
		return h.respondScheduleError(ctx, req, err)
	}
	return req.Responder.Send(interactions.Message{
		Embeds: []*discordgo.MessageEmbed{embeds.ScheduleDeletePrompt()},
		Components: embeds.ConfirmButtons(
			interactions.Encode(interactions.KindScheduleDeleteConfirm, userID),
			"Delete Schedule", discordgo.DangerButton,
			interactions.Encode(interactions.KindScheduleDeleteCancel, userID),
		),
	})
}

func (h *Handlers) ConfirmScheduleDelete(ctx context.Context, req *interactions.Request) error {
	if req.CustomID.Payload != req.UserID() {
		return notYours(req)
	}
	if err := req.Responder.DeferUpdate(); err != nil {
		return err
	}
	res, err := h.backend.DeleteSchedule(ctx, req.UserID())
	if err != nil {
		return h.respondScheduleError(ctx, req, err)
	}
	user := req.User()
	return req.Responder.Edit(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{h.stamp(embeds.ScheduleDeleted(user.ID, user.AvatarURL(""), res.Message))},
		Components: interactions.NoComponents(),
	})
}

func (h *Handlers) CancelScheduleDelete(_ context.Context, req *interactions.Request) error {
	if req.CustomID.Payload != req.UserID() {
		return notYours(req)
	}
	return req.Responder.Update(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{embeds.ScheduleDeleteCancelled()},
		Components: interactions.NoComponents(),
	})
}
