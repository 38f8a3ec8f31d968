package discord

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func restErr(status int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
}

func TestIsRetryableDiscordError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", restErr(http.StatusTooManyRequests), true},
		{"server error", restErr(http.StatusServiceUnavailable), true},
		{"forbidden", restErr(http.StatusForbidden), false},
		{"rest error without response", &discordgo.RESTError{}, false},
		{"network timeout", timeoutErr{}, true},
		{"plain error", errors.New("nope"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableDiscordError(tt.err); got != tt.want {
				t.Fatalf("isRetryableDiscordError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryDiscordAPI_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := RetryDiscordAPI(context.Background(), testLogger(), "test", func() error {
		calls++
		if calls < 3 {
			return restErr(http.StatusInternalServerError)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestRetryDiscordAPI_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	want := restErr(http.StatusNotFound)
	err := RetryDiscordAPI(context.Background(), testLogger(), "test", func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestRetryDiscordAPI_GivesUpAfterMaxAttempts(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the full backoff schedule")
	}
	calls := 0
	start := time.Now()
	err := RetryDiscordAPI(context.Background(), nil, "test", func() error {
		calls++
		return restErr(http.StatusTooManyRequests)
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != maxDiscordAPIRetryAttempts {
		t.Fatalf("expected %d attempts, got %d", maxDiscordAPIRetryAttempts, calls)
	}
	if time.Since(start) < discordAPIBaseRetryDelay/2 {
		t.Fatal("expected backoff between attempts")
	}
}

func TestRetryDiscordAPI_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryDiscordAPI(ctx, testLogger(), "test", func() error {
		calls++
		return restErr(http.StatusBadGateway)
	})
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if calls > 1 {
		t.Fatalf("expected at most one attempt, got %d", calls)
	}
}
