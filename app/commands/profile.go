package commands

import (
	"context"

	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/interactions"
	"golang.org/x/sync/errgroup"
)

var (
	profileFailure = failure{title: "Profile Error", action: "view profiles", command: "profile"}
	streakFailure  = failure{title: "Streak Error", action: "view streaks", command: "streak"}
)

// Profile shows the backend profile embed, with today's schedule added when
// it arrives within the race window.
func (h *Handlers) Profile(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	target, isSelf := targetUser(req, opts)

	var (
		dto   *api.Embed
		today *api.TodaySchedule
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		dto, err = h.backend.GetProfileEmbed(ctx, target.ID)
		return err
	})
	g.Go(func() error {
		today = h.todaySchedule(ctx, req, target.ID, h.profileRace)
		return nil
	})
	if err := g.Wait(); err != nil {
		f := profileFailure
		f.subject = target
		return h.respondError(ctx, req, f, err)
	}

	e := embeds.Merge(dto, embeds.Profile(target.ID, target.AvatarURL(""), isSelf))
	if today != nil {
		e.Fields = append(e.Fields, embeds.TodayField(today))
	}
	return req.Responder.Send(h.embedMessage(e))
}

func (h *Handlers) Streak(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	target, isSelf := targetUser(req, opts)

	data, err := h.backend.GetStreak(ctx, target.ID)
	if err != nil {
		f := streakFailure
		f.subject = target
		return h.respondError(ctx, req, f, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.Streak(target.ID, target.AvatarURL(""), isSelf, *data)))
}
