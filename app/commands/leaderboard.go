package commands

import (
	"context"
	"strings"

	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/interactions"
)

var leaderboardFailure = failure{title: "Leaderboard Error", action: "view leaderboards", command: "leaderboard"}

// Page scopes of the two leaderboards.
const (
	scopeStreaks  = "lb-streaks"
	scopeCheckIns = "lb-checkins"
)

type leaderboardQuery struct {
	scope  string
	filter string // streak type or period
	limit  int
}

func (h *Handlers) Leaderboard(ctx context.Context, req *interactions.Request) error {
	sub, opts := commandOptions(req)
	q := leaderboardQuery{
		scope:  scopeStreaks,
		filter: opts.str("type", "current"),
		limit:  clamp(opts.num("limit", defaultLeaderboardLimit), 1, maxLeaderboardLimit),
	}
	if sub == "checkins" {
		q.scope = scopeCheckIns
		q.filter = opts.str("period", "all")
	}

	msg, err := h.leaderboardMessage(ctx, q, 1)
	if err != nil {
		return h.respondError(ctx, req, leaderboardFailure, err)
	}
	return req.Responder.Send(msg)
}

func (h *Handlers) leaderboardMessage(ctx context.Context, q leaderboardQuery, page int) (interactions.Message, error) {
	lb := embeds.Leaderboard{Limit: q.limit, Page: page}
	var (
		data *api.LeaderboardData
		err  error
	)
	switch q.scope {
	case scopeCheckIns:
		data, err = h.backend.GetCheckInLeaderboard(ctx, q.limit, q.filter)
		lb.Title = "📊 Check-in Leaderboard (" + titleCase(q.filter) + ")"
		lb.Color = embeds.ColorSuccess
		lb.Unit = "check-ins"
	default:
		data, err = h.backend.GetStreakLeaderboard(ctx, q.limit, q.filter)
		lb.Title = "🔥 Streak Leaderboard (" + titleCase(q.filter) + ")"
		lb.Color = embeds.ColorStreak
		lb.Unit = "days"
	}
	if err != nil {
		return interactions.Message{}, err
	}
	lb.Data = data

	e, pages := embeds.LeaderboardPage(lb)
	page = clamp(page, 1, pages)
	msg := h.embedMessage(e)
	msg.Components = paginationRow(page, pages, q.scope, q.filter, itoa(q.limit))
	return msg, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
