package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/bot"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"github.com/waddletracker/discord-bot/app/shared/redaction"
	"github.com/waddletracker/discord-bot/config"
)

func main() {
	// Load configuration.
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger.
	logger, flush, err := observability.NewLogger(observability.LoggerOptions{
		Level:        cfg.Observability.LogLevel,
		Format:       cfg.Observability.LogFormat,
		ServiceName:  cfg.Service.Name,
		LokiURL:      cfg.Observability.LokiURL,
		LokiTenantID: cfg.Observability.LokiTenantID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create Discord session.
	discordSession, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Error("Failed to create Discord session", attr.Error(err))
		os.Exit(1)
	}
	discordSession.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	session := discord.NewDiscordSession(discordSession, logger)

	discordBot, err := bot.NewDiscordBot(ctx, session, cfg, logger, observability.NewMetrics(nil))
	if err != nil {
		logger.Error("Failed to create Discord bot", attr.Error(err))
		os.Exit(1)
	}

	logger.Info("Starting WaddleTracker bot",
		attr.String("version", cfg.Service.Version),
		attr.String("guild_id", cfg.GetGuildID()),
		attr.String("api_base_url", cfg.API.BaseURL),
		redaction.Secret("api_token", cfg.API.Token),
		redaction.URL("nats_url", cfg.NATS.URL),
		redaction.URL("loki_url", cfg.Observability.LokiURL),
		attr.Bool("reminders_enabled", cfg.RemindersEnabled()),
	)

	// Run blocks until a signal arrives or a component fails, then shuts
	// everything down.
	if err := discordBot.Run(ctx); err != nil {
		logger.Error("Discord bot error", attr.Error(err))
		flush()
		os.Exit(1)
	}

	logger.Info("Shutdown complete.")
}
