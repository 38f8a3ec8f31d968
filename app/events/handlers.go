package events

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// Handlers delivers bus events to Discord.
type Handlers struct {
	Discord        discord.Operations
	Logger         *slog.Logger
	Metrics        *observability.Metrics
	GeneralChannel string
	GymPicsChannel string
}

// HandleReminderDue DMs the reminder and falls back to a mention in the
// general channel when the DM cannot be delivered.
func (h *Handlers) HandleReminderDue(msg *message.Message) error {
	var payload ReminderDuePayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return err
	}
	ctx := msg.Context()
	logger := h.Logger.With(attr.UserID(payload.DiscordID), attr.CorrelationIDFromMsg(msg))

	reminder := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embeds.Reminder(payload.Username, payload.Label)},
	}
	_, err := h.Discord.SendDM(ctx, payload.DiscordID, reminder)
	if err == nil {
		h.Metrics.RecordReminder("dm")
		return nil
	}
	if h.GeneralChannel == "" {
		h.Metrics.RecordReminder("failed")
		logger.WarnContext(ctx, "Reminder DM failed and no general channel is configured", attr.Error(err))
		return nil
	}
	logger.InfoContext(ctx, "Reminder DM failed, falling back to general channel", attr.Error(err))

	fallback := &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>", payload.DiscordID),
		Embeds:  reminder.Embeds,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{payload.DiscordID},
		},
	}
	if _, err := h.Discord.SendChannel(ctx, h.GeneralChannel, fallback); err != nil {
		h.Metrics.RecordReminder("failed")
		return fmt.Errorf("failed to deliver reminder: %w", err)
	}
	h.Metrics.RecordReminder("channel")
	return nil
}

// HandleCheerSent DMs the cheer to its recipient. Closed DMs are not retried.
func (h *Handlers) HandleCheerSent(msg *message.Message) error {
	var payload CheerSentPayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return err
	}
	ctx := msg.Context()

	cheer := embeds.CheerReceived(embeds.Cheer{
		FromID:   payload.FromID,
		FromName: payload.FromName,
		ToID:     payload.ToID,
		Message:  payload.Message,
	})
	if _, err := h.Discord.SendDM(ctx, payload.ToID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{cheer}}); err != nil {
		h.Logger.WarnContext(ctx, "Could not DM cheer recipient",
			attr.UserID(payload.ToID),
			attr.CorrelationIDFromMsg(msg),
			attr.Error(err),
		)
	}
	return nil
}

// HandleCheckInRecorded posts photo check-ins to the gym-pics channel.
func (h *Handlers) HandleCheckInRecorded(msg *message.Message) error {
	var payload CheckInRecordedPayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return err
	}
	if h.GymPicsChannel == "" || payload.PhotoURL == "" {
		return nil
	}

	photo := embeds.CheckInPhoto(payload.DiscordID, payload.Username, payload.PhotoURL, payload.WorkoutType)
	_, err := h.Discord.SendChannel(msg.Context(), h.GymPicsChannel, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{photo},
	})
	if err != nil {
		return fmt.Errorf("failed to post check-in photo: %w", err)
	}
	return nil
}

func unmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}
