package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Operations defines an interface for higher-level Discord operations used by
// background deliveries. Every call is retried on transient failures.
type Operations interface {
	SendDM(ctx context.Context, userID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
	SendChannel(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
	SetPresence(ctx context.Context, status string) error
}

// discordOperations implements the Operations interface.
type discordOperations struct {
	session Session
	logger  *slog.Logger
}

// NewOperations creates a new Operations instance.
func NewOperations(session Session, logger *slog.Logger) Operations {
	return &discordOperations{
		session: session,
		logger:  logger,
	}
}
