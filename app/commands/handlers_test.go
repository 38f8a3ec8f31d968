package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/fitness"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability"
)

func TestCheckIn_SlowSchedulesDoNotBlockLogging(t *testing.T) {
	var logged int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/today"):
			select {
			case <-r.Context().Done():
				return
			case <-time.After(150 * time.Millisecond):
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"scheduled_type": "workout"}})
		case r.URL.Path == "/discord/checkin":
			atomic.AddInt32(&logged, 1)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"description": "Logged by the backend"}})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "not found"})
		}
	}))
	t.Cleanup(srv.Close)

	h := newHarnessWith(t, api.NewClient(srv.URL, time.Second))
	h.handlers.checkInRace = 20 * time.Millisecond

	for i := 0; i < 7; i++ {
		h.dispatch(slash("checkin"))
		require.Equal(t, "💪 Confirm Check-in", h.last().title(), "attempt %d", i)
	}

	h.reset()
	h.dispatch(button("checkin_confirm_i1", testUserID))

	out := h.last()
	assert.Equal(t, "💪 Check-in Successful", out.title())
	assert.Equal(t, "Logged by the backend", out.embeds[0].Description)
	assert.EqualValues(t, 1, atomic.LoadInt32(&logged))
}

func TestRejectInput_StaysPrivateAfterPublicDefer(t *testing.T) {
	h := newHarness(t)
	registry := interactions.NewBuilder().
		Command("leaderboard", interactions.Command{Handler: func(ctx context.Context, req *interactions.Request) error {
			_, err := rejectInput(req, &fitness.ValidationError{Field: "limit", Title: "Invalid Limit", Message: "Pick between 1 and 25."})
			return err
		}}).
		Build(h.session, observability.Instruments{})

	registry.Dispatch(context.Background(), slash("leaderboard"))

	require.Len(t, h.outputs, 3)
	assert.Equal(t, "respond", h.outputs[0].verb)
	assert.False(t, h.outputs[0].ephemeral)
	assert.Equal(t, "delete", h.outputs[1].verb)

	out := h.last()
	assert.Equal(t, "followup", out.verb)
	assert.True(t, out.ephemeral)
	assert.Equal(t, "❌ Invalid Limit", out.title())
}
