package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// RegisterCommands replaces the guild's slash commands with defs in a single
// bulk overwrite, so re-running it is idempotent. An empty guildID registers
// global commands.
func RegisterCommands(s Session, logger *slog.Logger, guildID string, defs []*discordgo.ApplicationCommand) error {
	appID, err := s.GetBotUser()
	if err != nil {
		return fmt.Errorf("failed to retrieve bot user: %w", err)
	}

	registered, err := s.ApplicationCommandBulkOverwrite(appID.ID, guildID, defs)
	if err != nil {
		logger.Error("Failed to register slash commands",
			attr.String("guild_id", guildID),
			attr.Int("count", len(defs)),
			attr.Error(err),
		)
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	for _, cmd := range registered {
		if cmd == nil {
			continue
		}
		logger.Info("registered command: /"+cmd.Name, attr.String("command_id", cmd.ID))
	}
	return nil
}
