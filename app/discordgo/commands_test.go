package discord

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func TestRegisterCommands_BulkOverwritesGuildCommands(t *testing.T) {
	fs := NewFakeSession()

	fs.GetBotUserFunc = func() (*discordgo.User, error) {
		return &discordgo.User{ID: "bot"}, nil
	}

	var (
		gotAppID   string
		gotGuildID string
		gotNames   []string
	)
	fs.ApplicationCommandBulkOverwriteFunc = func(appID, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
		gotAppID, gotGuildID = appID, guildID
		out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
		for _, c := range cmds {
			gotNames = append(gotNames, c.Name)
			out = append(out, &discordgo.ApplicationCommand{ID: c.Name + "-id", Name: c.Name})
		}
		return append(out, nil), nil
	}

	defs := []*discordgo.ApplicationCommand{{Name: "checkin"}, {Name: "streak"}}
	if err := RegisterCommands(fs, testLogger(), "g1", defs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAppID != "bot" || gotGuildID != "g1" {
		t.Fatalf("expected overwrite for app bot in guild g1, got %q/%q", gotAppID, gotGuildID)
	}
	if !slices.Equal(gotNames, []string{"checkin", "streak"}) {
		t.Fatalf("unexpected command set: %v", gotNames)
	}

	trace := fs.Trace()
	if !slices.Equal(trace, []string{"GetBotUser", "ApplicationCommandBulkOverwrite"}) {
		t.Fatalf("unexpected trace: %v", trace)
	}
}

func TestRegisterCommands_ErrorOnBotUser(t *testing.T) {
	fs := NewFakeSession()
	fs.GetBotUserFunc = func() (*discordgo.User, error) {
		return nil, errors.New("boom")
	}

	if err := RegisterCommands(fs, testLogger(), "g1", nil); err == nil {
		t.Fatalf("expected error from GetBotUser failure")
	}
	if slices.Contains(fs.Trace(), "ApplicationCommandBulkOverwrite") {
		t.Fatalf("overwrite must not run without a bot user")
	}
}

func TestRegisterCommands_ErrorOnOverwrite(t *testing.T) {
	fs := NewFakeSession()
	fs.ApplicationCommandBulkOverwriteFunc = func(appID, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
		return nil, errors.New("missing access")
	}

	err := RegisterCommands(fs, testLogger(), "g1", []*discordgo.ApplicationCommand{{Name: "help"}})
	if err == nil {
		t.Fatalf("expected error from overwrite failure")
	}
}
