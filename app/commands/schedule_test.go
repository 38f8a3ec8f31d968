package commands

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/interactions"
)

func TestSchedule_SetOpensModal(t *testing.T) {
	h := newHarness(t)

	h.dispatch(slash("schedule", sub("set")))

	require.Len(t, h.outputs, 1, "the modal must be the first and only response")
	out := h.outputs[0]
	assert.Equal(t, discordgo.InteractionResponseModal, out.respType)
	assert.Equal(t, interactions.ScheduleModalID, out.data.CustomID)
	assert.Zero(t, h.backend.TotalCalls())
}

func TestScheduleModal_CreatesWeeklySchedule(t *testing.T) {
	h := newHarness(t)
	var created api.ScheduleRequest
	h.backend.CreateScheduleFunc = func(_ context.Context, req api.ScheduleRequest) (*api.ScheduleResult, error) {
		created = req
		return &api.ScheduleResult{TodayScheduledType: "workout"}, nil
	}

	h.dispatch(modalSubmit(interactions.ScheduleModalID, map[string]string{
		embeds.ScheduleModalDays:     "mon, Wednesday",
		embeds.ScheduleModalTime:     "7:30",
		embeds.ScheduleModalTimezone: "",
	}))

	assert.Equal(t, api.ScheduleRequest{
		DiscordID:       testUserID,
		ScheduleType:    "weekly",
		WorkoutDays:     []string{"Monday", "Wednesday"},
		Timezone:        "UTC",
		ReminderTime:    "07:30",
		RestDaysAllowed: true,
	}, created)

	require.Len(t, h.outputs, 2)
	assert.True(t, h.outputs[0].ephemeral, "schedule replies are private")
	out := h.outputs[1]
	assert.Equal(t, "✅ Schedule Created!", out.title())
	assert.Contains(t, fieldNames(out.embeds[0]), "📅 Today's Activity")
}

func TestScheduleModal_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		title  string
	}{
		{
			name:   "bad time",
			values: map[string]string{embeds.ScheduleModalDays: "Monday", embeds.ScheduleModalTime: "25:00"},
			title:  "❌ Invalid Time Format",
		},
		{
			name:   "bad day",
			values: map[string]string{embeds.ScheduleModalDays: "Funday", embeds.ScheduleModalTime: "18:00"},
			title:  "❌ Invalid Days",
		},
		{
			name:   "bad timezone",
			values: map[string]string{embeds.ScheduleModalDays: "Monday", embeds.ScheduleModalTime: "18:00", embeds.ScheduleModalTimezone: "Mars/Olympus"},
			title:  "❌ Invalid Timezone",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.dispatch(modalSubmit(interactions.ScheduleModalID, tt.values))

			require.Len(t, h.outputs, 1)
			out := h.outputs[0]
			assert.Equal(t, tt.title, out.title())
			assert.True(t, out.ephemeral)
			assert.Zero(t, h.backend.TotalCalls())
		})
	}
}

func TestSchedule_Rotation(t *testing.T) {
	h := newHarness(t)
	var created api.ScheduleRequest
	h.backend.CreateScheduleFunc = func(_ context.Context, req api.ScheduleRequest) (*api.ScheduleResult, error) {
		created = req
		return &api.ScheduleResult{Message: "Schedule saved"}, nil
	}

	h.dispatch(slash("schedule", sub("rotation",
		strOpt("pattern", "Upper, lower ,rest"),
		strOpt("reminder_time", "18:00"),
		strOpt("timezone", "UTC"),
	)))

	assert.Equal(t, "rotating", created.ScheduleType)
	assert.Equal(t, []string{"upper", "lower", "rest"}, created.RotationPattern)
	out := h.last()
	assert.Equal(t, "✅ Schedule Created!", out.title())
	assert.Equal(t, "Schedule saved", out.embeds[0].Description)
}

func TestSchedule_ViewWithoutSchedule(t *testing.T) {
	h := newHarness(t)
	h.backend.GetScheduleFunc = func(context.Context, string) (*api.Schedule, error) {
		return nil, &api.Error{Message: "Schedule not found", StatusCode: 404, Kind: api.KindNotFound}
	}

	h.dispatch(slash("schedule", sub("view")))

	assert.Equal(t, "📅 No Schedule Yet", h.last().title())
}

func TestSchedule_Today(t *testing.T) {
	h := newHarness(t)
	h.backend.GetTodayScheduleFunc = func(context.Context, string) (*api.TodaySchedule, error) {
		return &api.TodaySchedule{ScheduledType: "rest"}, nil
	}

	h.dispatch(slash("schedule", sub("today")))

	out := h.last()
	assert.Equal(t, "📅 Today's Plan", out.title())
	assert.Equal(t, "Rest Day 😴", out.embeds[0].Fields[0].Value)
}

func TestSchedule_DeleteConfirmFlow(t *testing.T) {
	h := newHarness(t)
	h.backend.DeleteScheduleFunc = func(context.Context, string) (*api.MessageResult, error) {
		return &api.MessageResult{Message: "Schedule deleted successfully"}, nil
	}

	h.dispatch(slash("schedule", sub("delete")))

	prompt := h.last()
	assert.Equal(t, "🗑️ Delete Schedule", prompt.title())
	assert.Equal(t, []string{"schedule_delete_confirm_u1", "schedule_delete_cancel_u1"}, customIDs(prompt.components))
	assert.Zero(t, h.backend.Calls("DeleteSchedule"))

	h.reset()
	h.dispatch(button("schedule_delete_confirm_u1", testUserID))

	assert.Equal(t, 1, h.backend.Calls("DeleteSchedule"))
	out := h.last()
	assert.Equal(t, "✅ Schedule Deleted", out.title())
	assert.Contains(t, out.embeds[0].Description, "Schedule deleted successfully")
	assert.True(t, out.cleared)
}

func TestSchedule_DeleteWithoutSchedule(t *testing.T) {
	h := newHarness(t)
	h.backend.GetScheduleFunc = func(context.Context, string) (*api.Schedule, error) {
		return nil, &api.Error{StatusCode: 404, Kind: api.KindNotFound}
	}

	h.dispatch(slash("schedule", sub("delete")))

	assert.Equal(t, "📅 No Schedule Yet", h.last().title())
	assert.Empty(t, customIDs(h.last().components))
}

func TestSchedule_DeleteCancelAndOwnership(t *testing.T) {
	h := newHarness(t)

	h.dispatch(button("schedule_delete_confirm_u1", "intruder"))
	assert.Equal(t, "❌ Not Your Button", h.last().title())

	h.reset()
	h.dispatch(button("schedule_delete_cancel_u1", testUserID))
	assert.Equal(t, "❌ Schedule Deletion Cancelled", h.last().title())
	assert.Zero(t, h.backend.Calls("DeleteSchedule"))
}
