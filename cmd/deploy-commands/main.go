package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/commands"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"github.com/waddletracker/discord-bot/config"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		guildID    = flag.String("guild", "", "Guild ID (defaults to GUILD_ID from config)")
		global     = flag.Bool("global", false, "Register global commands instead of guild commands")
		dryRun     = flag.Bool("dry-run", false, "Print the command definitions without registering them")
	)
	flag.Parse()

	defs := commands.Definitions()

	if *dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(defs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: deploy-commands [-config <path>] [-guild <guild_id> | -global] [-dry-run]")
		os.Exit(1)
	}

	target := cfg.GetGuildID()
	if *guildID != "" {
		target = *guildID
	}
	if *global {
		target = ""
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Error("Failed to create Discord session", attr.Error(err))
		os.Exit(1)
	}

	if err := discord.RegisterCommands(discord.NewDiscordSession(s, logger), logger, target, defs); err != nil {
		logger.Error("Failed to deploy commands", attr.Error(err))
		os.Exit(1)
	}

	if target == "" {
		fmt.Printf("Deployed %d global commands.\n", len(defs))
		return
	}
	fmt.Printf("Deployed %d commands to guild %s.\n", len(defs), target)
}
