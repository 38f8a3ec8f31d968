package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/events"
	"github.com/waddletracker/discord-bot/app/fitness"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"github.com/waddletracker/discord-bot/app/shared/storage"
)

// pendingCheckIn is stored between the preview and the confirm button.
type pendingCheckIn struct {
	OwnerID string
	Request api.CheckInRequest
}

var (
	checkInFailure = failure{title: "Check-in Error", action: "log your check-in", command: "checkin"}
	workoutFailure = failure{title: "Workout Error", action: "log your workout", command: "workout"}
	restDayFailure = failure{title: "Rest Day Error", action: "log your rest day", command: "rest-day"}
)

// CheckIn previews a check-in and waits for confirmation. On a scheduled rest
// day nothing is logged and the user is told their streak is safe.
func (h *Handlers) CheckIn(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	status := opts.str("status", fitness.StatusWent)
	photoURL := opts.str("photo_url", "")
	notes := opts.str("notes", "")

	if err := fitness.ValidateStatus(status, fitness.CheckInStatuses); err != nil {
		_, err = rejectInput(req, err)
		return err
	}
	if err := fitness.ValidatePhotoURL(photoURL); err != nil {
		_, err = rejectInput(req, err)
		return err
	}

	user := req.User()
	if today := h.todaySchedule(ctx, req, user.ID, h.checkInRace); today.IsRest() {
		req.Logger.InfoContext(ctx, "Check-in skipped on scheduled rest day")
		return req.Responder.Send(h.embedMessage(embeds.RestDayScheduled(user.ID)))
	}

	pending := pendingCheckIn{
		OwnerID: user.ID,
		Request: api.CheckInRequest{
			Identity: identity(user),
			Status:   status,
			Notes:    notes,
			PhotoURL: photoURL,
		},
	}
	id := req.Interaction.ID
	if err := h.store.Set(ctx, id, pending); err != nil {
		return fmt.Errorf("failed to store pending check-in: %w", err)
	}

	return req.Responder.Send(interactions.Message{
		Embeds: []*discordgo.MessageEmbed{embeds.CheckInPreview(embeds.CheckIn{
			DiscordID: user.ID,
			Status:    status,
			Notes:     notes,
			PhotoURL:  photoURL,
		})},
		Components: embeds.ConfirmButtons(
			interactions.Encode(interactions.KindCheckInConfirm, id),
			"Confirm", discordgo.SuccessButton,
			interactions.Encode(interactions.KindCheckInCancel, id),
		),
	})
}

// claimPendingCheckIn removes the pending check-in for a button press from the
// store and returns it. Only the owner can claim it and only once, so a double
// click submits a single check-in. It reports false after answering the press
// itself.
func (h *Handlers) claimPendingCheckIn(ctx context.Context, req *interactions.Request) (pendingCheckIn, bool, error) {
	expired := func() error {
		return req.Responder.Update(interactions.Message{
			Embeds:     []*discordgo.MessageEmbed{embeds.CheckInExpired()},
			Components: interactions.NoComponents(),
		})
	}

	v, err := h.store.Get(ctx, req.CustomID.Payload)
	if errors.Is(err, storage.ErrNotFound) {
		return pendingCheckIn{}, false, expired()
	}
	if err != nil {
		return pendingCheckIn{}, false, fmt.Errorf("failed to load pending check-in: %w", err)
	}
	pending, ok := v.(pendingCheckIn)
	if !ok {
		return pendingCheckIn{}, false, fmt.Errorf("unexpected pending check-in type %T", v)
	}
	if pending.OwnerID != req.UserID() {
		return pendingCheckIn{}, false, notYours(req)
	}

	if _, err := h.store.Take(ctx, req.CustomID.Payload); errors.Is(err, storage.ErrNotFound) {
		return pendingCheckIn{}, false, expired()
	} else if err != nil {
		return pendingCheckIn{}, false, fmt.Errorf("failed to claim pending check-in: %w", err)
	}
	return pending, true, nil
}

func (h *Handlers) ConfirmCheckIn(ctx context.Context, req *interactions.Request) error {
	pending, ok, err := h.claimPendingCheckIn(ctx, req)
	if !ok {
		return err
	}
	if err := req.Responder.DeferUpdate(); err != nil {
		return err
	}

	checkIn := pending.Request
	checkIn.Date = h.now()
	dto, err := h.backend.LogCheckIn(ctx, checkIn)
	if err != nil {
		return h.respondError(ctx, req, checkInFailure, err)
	}

	req.Logger.InfoContext(ctx, "Check-in logged", attr.String("status", checkIn.Status))
	h.publishPhoto(ctx, req, checkIn)

	e := embeds.Merge(dto, embeds.CheckInLogged(embeds.CheckIn{
		DiscordID: checkIn.DiscordID,
		AvatarURL: checkIn.AvatarURL,
		Status:    checkIn.Status,
		Notes:     checkIn.Notes,
		PhotoURL:  checkIn.PhotoURL,
	}))
	return req.Responder.Edit(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{h.stamp(e)},
		Components: interactions.NoComponents(),
	})
}

func (h *Handlers) CancelCheckIn(ctx context.Context, req *interactions.Request) error {
	if _, ok, err := h.claimPendingCheckIn(ctx, req); !ok {
		return err
	}
	return req.Responder.Update(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{embeds.CheckInCancelled()},
		Components: interactions.NoComponents(),
	})
}

// Workout logs a typed workout immediately.
func (h *Handlers) Workout(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	workoutType := opts.str("type", "")
	notes := opts.str("notes", "")
	photoURL := opts.str("photo_url", "")

	if err := fitness.ValidatePhotoURL(photoURL); err != nil {
		_, err = rejectInput(req, err)
		return err
	}

	user := req.User()
	checkIn := api.CheckInRequest{
		Identity:    identity(user),
		Status:      fitness.StatusWent,
		WorkoutType: workoutType,
		Notes:       notes,
		PhotoURL:    photoURL,
		Date:        h.now(),
	}
	dto, err := h.backend.LogCheckIn(ctx, checkIn)
	if err != nil {
		return h.respondError(ctx, req, workoutFailure, err)
	}

	h.publishPhoto(ctx, req, checkIn)
	return req.Responder.Send(h.embedMessage(embeds.Merge(dto, embeds.CheckInLogged(embeds.CheckIn{
		DiscordID:   user.ID,
		AvatarURL:   checkIn.AvatarURL,
		Status:      checkIn.Status,
		WorkoutType: workoutType,
		Notes:       notes,
		PhotoURL:    photoURL,
	}))))
}

func (h *Handlers) RestDay(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	notes := opts.str("notes", "")
	user := req.User()

	dto, err := h.backend.LogRestDay(ctx, api.RestDayRequest{
		Identity: identity(user),
		Notes:    notes,
		Date:     h.now(),
	})
	if err != nil {
		return h.respondError(ctx, req, restDayFailure, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.Merge(dto, embeds.RestDayLogged(user.ID, user.AvatarURL(""), notes))))
}

func (h *Handlers) publishPhoto(ctx context.Context, req *interactions.Request, c api.CheckInRequest) {
	if c.PhotoURL == "" {
		return
	}
	h.publish(ctx, req, events.CheckInRecorded, events.CheckInRecordedPayload{
		DiscordID:   c.DiscordID,
		Username:    c.Username,
		Status:      c.Status,
		WorkoutType: c.WorkoutType,
		PhotoURL:    c.PhotoURL,
	})
}
