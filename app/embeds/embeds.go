// Package embeds builds every message the bot renders. Builders are pure: the
// same input always yields the same embed, and timestamps are applied
// separately with Stamp.
package embeds

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
)

const (
	ColorError   = 0xff0000
	ColorSuccess = 0x00ff00
	ColorInfo    = 0x0099ff
	ColorWarning = 0xffa500
	ColorStreak  = 0xff6b35
	ColorGold    = 0xffd700
)

const (
	websiteURL = "https://waddletracker.com"
	supportURL = "https://discord.gg/waddletracker"
	githubURL  = "https://github.com/waddletracker"
)

func Error(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: description,
		Color:       ColorError,
	}
}

func Success(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ " + title,
		Description: description,
		Color:       ColorSuccess,
	}
}

func Info(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "ℹ️ " + title,
		Description: description,
		Color:       ColorInfo,
	}
}

// GenericError is the reply used when a handler fails without rendering its own message.
func GenericError() *discordgo.MessageEmbed {
	return Error("Interaction Error", "An error occurred while processing your interaction. Please try again.")
}

// Stamp sets the embed timestamp and returns the same embed.
func Stamp(e *discordgo.MessageEmbed, t time.Time) *discordgo.MessageEmbed {
	if e != nil {
		e.Timestamp = t.UTC().Format(time.RFC3339)
	}
	return e
}

// Merge renders dto over fallback: every attribute present in the DTO wins,
// everything it lacks comes from fallback. Neither input is modified.
func Merge(dto *api.Embed, fallback *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{}
	if fallback != nil {
		clone := *fallback
		clone.Fields = append([]*discordgo.MessageEmbedField(nil), fallback.Fields...)
		out = &clone
	}
	if dto == nil {
		return out
	}

	if dto.Title != "" {
		out.Title = dto.Title
	}
	if dto.Description != "" {
		out.Description = dto.Description
	}
	if dto.Color != 0 {
		out.Color = dto.Color
	}
	if len(dto.Fields) > 0 {
		out.Fields = make([]*discordgo.MessageEmbedField, 0, len(dto.Fields))
		for _, f := range dto.Fields {
			out.Fields = append(out.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
		}
	}
	if dto.Footer != nil && dto.Footer.Text != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: dto.Footer.Text, IconURL: dto.Footer.IconURL}
	}
	if dto.Thumbnail != nil && dto.Thumbnail.URL != "" {
		out.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: dto.Thumbnail.URL}
	}
	if dto.Image != nil && dto.Image.URL != "" {
		out.Image = &discordgo.MessageEmbedImage{URL: dto.Image.URL}
	}
	if dto.Timestamp != "" {
		out.Timestamp = dto.Timestamp
	}
	return out
}

// Thumbnail returns a thumbnail for url, or nil when url is empty.
func Thumbnail(url string) *discordgo.MessageEmbedThumbnail {
	if url == "" {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: url}
}

func userLine(discordID string) string {
	return fmt.Sprintf("**User:** <@%s>", discordID)
}

func possessive(isSelf bool) string {
	if isSelf {
		return "Your"
	}
	return "User"
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

// FormatStreak renders a day count the way every streak field shows it.
func FormatStreak(days int) string {
	switch {
	case days <= 0:
		return "No streak"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown date"
	}
	return t.UTC().Format("Jan 2, 2006")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
