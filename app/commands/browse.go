package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/fitness"
	"github.com/waddletracker/discord-bot/app/interactions"
)

const (
	scopeGallery       = "gallery"
	scopeNotifications = "notifications"
)

var (
	galleryFailure       = failure{title: "Gallery Error", action: "view galleries", command: "gallery"}
	notificationsFailure = failure{title: "Notifications Error", action: "view notifications", command: "notifications"}
	analyticsFailure     = failure{title: "Analytics Error", action: "view analytics", command: "analytics"}
)

var galleryStatuses = []string{"all", fitness.StatusWent, fitness.StatusMissed}

type galleryQuery struct {
	userID string
	isSelf bool
	status string
	limit  int
}

// Gallery validates its filter before acknowledging, so a bad filter gets a
// private error while the gallery itself is posted publicly.
func (h *Handlers) Gallery(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	target, isSelf := targetUser(req, opts)
	q := galleryQuery{
		userID: target.ID,
		isSelf: isSelf,
		status: opts.str("status", "all"),
		limit:  clamp(opts.num("limit", defaultGalleryLimit), 1, maxGalleryLimit),
	}
	if err := fitness.ValidateStatus(q.status, galleryStatuses); err != nil {
		_, err = rejectInput(req, err)
		return err
	}
	if err := req.Responder.Defer(false); err != nil {
		return err
	}

	msg, err := h.galleryMessage(ctx, q, max(opts.num("page", 1), 1))
	if err != nil {
		f := galleryFailure
		f.subject = target
		return h.respondError(ctx, req, f, err)
	}
	return req.Responder.Send(msg)
}

func (h *Handlers) galleryMessage(ctx context.Context, q galleryQuery, page int) (interactions.Message, error) {
	if q.limit < 1 {
		q.limit = defaultGalleryLimit
	}
	data, err := h.backend.GetGallery(ctx, q.userID, api.GalleryQuery{Page: page, Limit: q.limit, Status: q.status})
	if err != nil {
		return interactions.Message{}, err
	}
	msg := h.embedMessage(embeds.Gallery(q.userID, q.isSelf, q.status, *data))
	msg.Components = paginationRow(max(data.Pagination.Page, page), data.Pagination.Pages, scopeGallery, q.userID, q.status, itoa(q.limit))
	return msg, nil
}

type notificationsQuery struct {
	kind       string
	unreadOnly bool
}

func (h *Handlers) Notifications(ctx context.Context, req *interactions.Request) error {
	sub, opts := commandOptions(req)
	user := req.User()

	if sub == "mark_read" {
		return h.markNotificationsRead(ctx, req, opts.str("notification_ids", ""))
	}

	q := notificationsQuery{kind: opts.str("type", "all"), unreadOnly: opts.flag("unread_only")}
	msg, err := h.notificationsMessage(ctx, user.ID, q, max(opts.num("page", 1), 1))
	if err != nil {
		return h.respondError(ctx, req, notificationsFailure, err)
	}
	return req.Responder.Send(msg)
}

func (h *Handlers) notificationsMessage(ctx context.Context, discordID string, q notificationsQuery, page int) (interactions.Message, error) {
	data, err := h.backend.GetNotifications(ctx, discordID, api.NotificationQuery{
		Page:       page,
		Limit:      notificationsPageSize,
		Type:       q.kind,
		UnreadOnly: q.unreadOnly,
	})
	if err != nil {
		return interactions.Message{}, err
	}
	msg := h.embedMessage(embeds.Notifications(*data, q.unreadOnly))
	msg.Components = paginationRow(max(data.Pagination.Page, page), data.Pagination.Pages, scopeNotifications, q.kind, strconv.FormatBool(q.unreadOnly))
	return msg, nil
}

// markNotificationsRead marks the listed ids, or everything when none are given.
func (h *Handlers) markNotificationsRead(ctx context.Context, req *interactions.Request, raw string) error {
	discordID := req.UserID()
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		if err := h.backend.MarkAllNotificationsRead(ctx, discordID); err != nil {
			return h.respondError(ctx, req, notificationsFailure, err)
		}
		return req.Responder.Send(h.embedMessage(embeds.AllNotificationsMarkedRead()))
	}

	if err := h.backend.MarkNotificationsRead(ctx, discordID, ids); err != nil {
		return h.respondError(ctx, req, notificationsFailure, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.NotificationsMarkedRead(len(ids))))
}

func (h *Handlers) Analytics(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	period := clamp(opts.num("period", defaultAnalyticsPeriod), 1, maxAnalyticsPeriod)

	data, err := h.backend.GetAnalytics(ctx, req.UserID(), period)
	if err != nil {
		return h.respondError(ctx, req, analyticsFailure, err)
	}
	return req.Responder.Send(h.embedMessage(embeds.Analytics(period, *data)))
}

func (h *Handlers) Help(_ context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	if topic := opts.str("command", ""); topic != "" {
		return req.Responder.Send(interactions.Message{Embeds: []*discordgo.MessageEmbed{embeds.CommandHelp(topic)}})
	}
	return req.Responder.Send(interactions.Message{Embeds: []*discordgo.MessageEmbed{embeds.Help()}})
}
