// Package attr holds the slog attribute helpers shared by every package so
// log keys stay consistent across handlers, the scheduler and event consumers.
package attr

import (
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Error renders a nil error as an empty string rather than "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func UserID(id string) slog.Attr { return slog.String("discord_user_id", id) }

func InteractionID(id string) slog.Attr { return slog.String("interaction_id", id) }

func CorrelationID(id string) slog.Attr { return slog.String("correlation_id", id) }

func Command(name string) slog.Attr { return slog.String("command", name) }

func CustomID(id string) slog.Attr { return slog.String("custom_id", id) }

func Topic(topic string) slog.Attr { return slog.String("topic", topic) }

func DiscordChannelID(id string) slog.Attr { return slog.String("discord_channel_id", id) }

func DiscordMessageID(id string) slog.Attr { return slog.String("discord_message_id", id) }

// CorrelationIDFromMsg reads the correlation id watermill's middleware stamped on msg.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return CorrelationID(middleware.MessageCorrelationID(msg))
}
