package discord

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	"github.com/waddletracker/discord-bot/app/observability/attr"
)

const (
	maxDiscordAPIRetryAttempts = 5
	discordAPIBaseRetryDelay   = 200 * time.Millisecond
	discordAPIMaxRetryDelay    = 3 * time.Second
)

// RetryDiscordAPI retries transient Discord API failures with exponential backoff and jitter.
// Non-retryable errors are returned after the first attempt.
func RetryDiscordAPI(ctx context.Context, logger *slog.Logger, operation string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = discordAPIBaseRetryDelay
	b.MaxInterval = discordAPIMaxRetryDelay
	b.RandomizationFactor = 0.5
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, maxDiscordAPIRetryAttempts-1), ctx)

	attempt := 0
	op := func() error {
		attempt++
		err := fn()
		if err != nil && !isRetryableDiscordError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		if logger == nil {
			return
		}
		logger.Warn("Retrying transient Discord API failure",
			attr.String("operation", operation),
			attr.Int("attempt", attempt),
			attr.Duration("retry_in", wait),
			attr.Error(err),
		)
	}

	return backoff.RetryNotify(op, policy, notify)
}

func isRetryableDiscordError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response != nil {
			status := restErr.Response.StatusCode
			if status == http.StatusTooManyRequests || status >= 500 {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
