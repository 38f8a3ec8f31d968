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

type pendingCheer struct {
	From    api.Identity
	To      api.Identity
	Message string
}

func (p pendingCheer) embed() embeds.Cheer {
	return embeds.Cheer{FromID: p.From.DiscordID, FromName: p.From.Username, ToID: p.To.DiscordID, Message: p.Message}
}

var cheerFailure = failure{title: "Cheer Error", action: "send cheers", command: "cheer"}

// Cheer validates the cheer and shows a preview with send and cancel buttons.
func (h *Handlers) Cheer(ctx context.Context, req *interactions.Request) error {
	_, opts := commandOptions(req)
	author := req.User()
	target := opts.user(req, "user")
	message := opts.text("message")

	if target == nil {
		_, err := rejectInput(req, &fitness.ValidationError{Field: "user", Title: "Invalid Target", Message: "Pick someone to cheer for."})
		return err
	}
	if err := fitness.ValidateCheer(author.ID, target.ID, message); err != nil {
		_, err = rejectInput(req, err)
		return err
	}

	pending := pendingCheer{From: identity(author), To: identity(target), Message: message}
	id := req.Interaction.ID
	if err := h.store.Set(ctx, id, pending); err != nil {
		return fmt.Errorf("failed to store pending cheer: %w", err)
	}

	return req.Responder.Send(interactions.Message{
		Embeds: []*discordgo.MessageEmbed{embeds.CheerPreview(pending.embed())},
		Components: embeds.ConfirmButtons(
			interactions.Encode(interactions.KindCheerSend, id),
			"Send Cheer", discordgo.PrimaryButton,
			interactions.Encode(interactions.KindCheerCancel, id),
		),
	})
}

// claimPendingCheer removes the owner's pending cheer from the store and
// returns it, so a cheer is sent at most once.
func (h *Handlers) claimPendingCheer(ctx context.Context, req *interactions.Request) (pendingCheer, bool, error) {
	expired := func() error {
		return req.Responder.Update(interactions.Message{
			Embeds:     []*discordgo.MessageEmbed{embeds.Error("Cheer Expired", "This cheer preview has expired. Run `/cheer` again.")},
			Components: interactions.NoComponents(),
		})
	}

	v, err := h.store.Get(ctx, req.CustomID.Payload)
	if errors.Is(err, storage.ErrNotFound) {
		return pendingCheer{}, false, expired()
	}
	if err != nil {
		return pendingCheer{}, false, fmt.Errorf("failed to load pending cheer: %w", err)
	}
	pending, ok := v.(pendingCheer)
	if !ok {
		return pendingCheer{}, false, fmt.Errorf("unexpected pending cheer type %T", v)
	}
	if pending.From.DiscordID != req.UserID() {
		return pendingCheer{}, false, notYours(req)
	}

	if _, err := h.store.Take(ctx, req.CustomID.Payload); errors.Is(err, storage.ErrNotFound) {
		return pendingCheer{}, false, expired()
	} else if err != nil {
		return pendingCheer{}, false, fmt.Errorf("failed to claim pending cheer: %w", err)
	}
	return pending, true, nil
}

// SendCheer records the cheer, posts it publicly and queues the recipient's DM.
func (h *Handlers) SendCheer(ctx context.Context, req *interactions.Request) error {
	pending, ok, err := h.claimPendingCheer(ctx, req)
	if !ok {
		return err
	}
	if err := req.Responder.DeferUpdate(); err != nil {
		return err
	}

	res, err := h.backend.SendCheer(ctx, api.CheerRequest{
		FromDiscordID: pending.From.DiscordID,
		FromUsername:  pending.From.Username,
		ToDiscordID:   pending.To.DiscordID,
		ToUsername:    pending.To.Username,
		Message:       pending.Message,
	})
	if err != nil {
		f := cheerFailure
		f.header = embeds.CheerRegistrationHeader(pending.From.DiscordID, pending.To.DiscordID)
		return h.respondError(ctx, req, f, err)
	}

	if err := req.Responder.Edit(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{embeds.Success("Cheer Sent", fmt.Sprintf("Your cheer is on its way to <@%s>!", pending.To.DiscordID))},
		Components: interactions.NoComponents(),
	}); err != nil {
		return err
	}

	c := pending.embed()
	public := embeds.Merge(res.Embed, embeds.CheerSent(c, pending.From.AvatarURL))
	if err := req.Responder.FollowUp(h.embedMessage(public)); err != nil {
		return err
	}

	req.Logger.InfoContext(ctx, "Cheer sent", attr.String("to_user_id", pending.To.DiscordID))
	h.publish(ctx, req, events.CheerSent, events.CheerSentPayload{
		CheerID:  res.CheerID,
		FromID:   c.FromID,
		FromName: c.FromName,
		ToID:     c.ToID,
		Message:  c.Message,
	})
	return nil
}

func (h *Handlers) CancelCheer(ctx context.Context, req *interactions.Request) error {
	if _, ok, err := h.claimPendingCheer(ctx, req); !ok {
		return err
	}
	return req.Responder.Update(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{embeds.CheerCancelled()},
		Components: interactions.NoComponents(),
	})
}
