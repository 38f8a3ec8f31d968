package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// RegisterButton registers the owner of the prompt and swaps the prompt for
// the welcome message.
func (h *Handlers) RegisterButton(ctx context.Context, req *interactions.Request) error {
	user := req.User()
	if req.CustomID.Payload != user.ID {
		return notYours(req)
	}
	if err := req.Responder.DeferUpdate(); err != nil {
		return err
	}

	var e *discordgo.MessageEmbed
	res, err := h.backend.RegisterUser(ctx, identity(user))
	switch {
	case err != nil:
		req.Logger.ErrorContext(ctx, "Registration failed", attr.Error(err))
		e = embeds.RegistrationError(user.ID, errorMessage(err))
	case res.AlreadyRegistered:
		e = embeds.AlreadyRegistered(user.ID)
	default:
		req.Logger.InfoContext(ctx, "User registered")
		e = embeds.Welcome(user.ID)
	}
	return req.Responder.Edit(interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{h.stamp(e)},
		Components: interactions.NoComponents(),
	})
}

// LearnMoreButton explains the platform. The owner's prompt is replaced; anyone
// else gets a private copy with their own register button.
func (h *Handlers) LearnMoreButton(_ context.Context, req *interactions.Request) error {
	userID := req.UserID()
	msg := interactions.Message{
		Embeds:     []*discordgo.MessageEmbed{embeds.LearnMore(userID)},
		Components: embeds.RegisterOnlyButton(interactions.Encode(interactions.KindRegister, userID)),
	}
	if req.CustomID.Payload != userID {
		msg.Ephemeral = true
		return req.Responder.Reply(msg)
	}
	return req.Responder.Update(msg)
}
