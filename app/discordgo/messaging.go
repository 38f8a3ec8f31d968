// discord/messaging.go
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// SendDM sends a direct message to a user.
func (d *discordOperations) SendDM(ctx context.Context, userID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	var channel *discordgo.Channel
	err := RetryDiscordAPI(ctx, d.logger, "user_channel_create", func() error {
		var err error
		channel, err = d.session.UserChannelCreate(userID)
		return err
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to create DM channel", attr.UserID(userID), attr.Error(err))
		return nil, fmt.Errorf("failed to create DM channel: %w", err)
	}

	sent, err := d.send(ctx, "send_dm", channel.ID, msg)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to send DM", attr.UserID(userID), attr.Error(err))
		return nil, fmt.Errorf("failed to send DM: %w", err)
	}
	d.logger.InfoContext(ctx, "DM sent successfully",
		attr.UserID(userID),
		attr.DiscordMessageID(sent.ID),
		attr.DiscordChannelID(sent.ChannelID),
	)
	return sent, nil
}

// SendChannel posts a message in a guild channel.
func (d *discordOperations) SendChannel(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	if channelID == "" {
		return nil, fmt.Errorf("failed to send channel message: channel id is empty")
	}
	sent, err := d.send(ctx, "send_channel", channelID, msg)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to send channel message", attr.DiscordChannelID(channelID), attr.Error(err))
		return nil, fmt.Errorf("failed to send channel message: %w", err)
	}
	d.logger.InfoContext(ctx, "Channel message sent",
		attr.DiscordChannelID(channelID),
		attr.DiscordMessageID(sent.ID),
	)
	return sent, nil
}

// SetPresence shows status as the bot's "playing" activity.
func (d *discordOperations) SetPresence(ctx context.Context, status string) error {
	return RetryDiscordAPI(ctx, d.logger, "update_game_status", func() error {
		return d.session.UpdateGameStatus(0, status)
	})
}

func (d *discordOperations) send(ctx context.Context, op, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	var sent *discordgo.Message
	err := RetryDiscordAPI(ctx, d.logger, op, func() error {
		var err error
		sent, err = d.session.ChannelMessageSendComplex(channelID, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}
