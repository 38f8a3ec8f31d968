package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// Page payloads are "<scope>:<args...>:<page>"; the page state travels in the
// customId so a click never has to recover it from the rendered embed.
func pageID(scope string, args ...string) func(page int) string {
	prefix := strings.Join(append([]string{scope}, args...), ":")
	return func(page int) string {
		return interactions.Encode(interactions.KindPage, prefix+":"+strconv.Itoa(page))
	}
}

// paginationRow returns the navigation row, or an empty slice that clears the
// buttons when everything fits on one page.
func paginationRow(page, pages int, scope string, args ...string) []discordgo.MessageComponent {
	row := embeds.Pagination(page, pages, pageID(scope, args...))
	if row == nil {
		return interactions.NoComponents()
	}
	return row
}

type pageRequest struct {
	scope string
	args  []string
	page  int
}

func parsePage(payload string) (pageRequest, error) {
	parts := strings.Split(payload, ":")
	if len(parts) < 2 {
		return pageRequest{}, fmt.Errorf("malformed page payload %q", payload)
	}
	page, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return pageRequest{}, fmt.Errorf("malformed page number in %q: %w", payload, err)
	}
	return pageRequest{scope: parts[0], args: parts[1 : len(parts)-1], page: page}, nil
}

// Page re-renders a paginated message at the requested page.
func (h *Handlers) Page(ctx context.Context, req *interactions.Request) error {
	p, err := parsePage(req.CustomID.Payload)
	if err != nil {
		return err
	}
	if err := req.Responder.DeferUpdate(); err != nil {
		return err
	}
	if p.page < 1 {
		// The page indicator is disabled; nothing to do.
		return nil
	}

	var (
		msg interactions.Message
		f   failure
	)
	switch p.scope {
	case scopeStreaks, scopeCheckIns:
		if len(p.args) != 2 {
			return fmt.Errorf("malformed leaderboard page %q", req.CustomID.Payload)
		}
		f = leaderboardFailure
		msg, err = h.leaderboardMessage(ctx, leaderboardQuery{scope: p.scope, filter: p.args[0], limit: atoi(p.args[1])}, p.page)
	case scopeGallery:
		if len(p.args) != 3 {
			return fmt.Errorf("malformed gallery page %q", req.CustomID.Payload)
		}
		f = galleryFailure
		msg, err = h.galleryMessage(ctx, galleryQuery{
			userID: p.args[0],
			isSelf: p.args[0] == req.UserID(),
			status: p.args[1],
			limit:  atoi(p.args[2]),
		}, p.page)
	case scopeNotifications:
		if len(p.args) != 2 {
			return fmt.Errorf("malformed notifications page %q", req.CustomID.Payload)
		}
		f = notificationsFailure
		msg, err = h.notificationsMessage(ctx, req.UserID(), notificationsQuery{kind: p.args[0], unreadOnly: p.args[1] == "true"}, p.page)
	default:
		req.Logger.WarnContext(ctx, "Unknown page scope", attr.CustomID(req.CustomID.String()))
		return nil
	}
	if err != nil {
		return h.respondError(ctx, req, f, err)
	}
	return req.Responder.Edit(msg)
}

func itoa(v int) string { return strconv.Itoa(v) }

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
