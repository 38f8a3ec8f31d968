package api

import (
	"context"
	"net/http"
)

// CreateSchedule replaces the user's schedule.
func (c *Client) CreateSchedule(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	var result ScheduleResult
	if err := c.do(ctx, "CreateSchedule", http.MethodPost, "/schedules", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSchedule returns KindNotFound when the user has no schedule yet.
func (c *Client) GetSchedule(ctx context.Context, discordID string) (*Schedule, error) {
	var schedule Schedule
	if err := c.do(ctx, "GetSchedule", http.MethodGet, userPath("/schedules", discordID), nil, nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, discordID string) (*MessageResult, error) {
	var result MessageResult
	if err := c.do(ctx, "DeleteSchedule", http.MethodDelete, userPath("/schedules", discordID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTodaySchedule reports what the user's schedule says today is.
func (c *Client) GetTodaySchedule(ctx context.Context, discordID string) (*TodaySchedule, error) {
	var today TodaySchedule
	if err := c.do(ctx, "GetTodaySchedule", http.MethodGet, userPath("/schedules", discordID)+"/today", nil, nil, &today); err != nil {
		return nil, err
	}
	return &today, nil
}

// ListReminderSchedules returns every schedule with an active reminder.
func (c *Client) ListReminderSchedules(ctx context.Context) ([]ReminderSchedule, error) {
	var schedules []ReminderSchedule
	if err := c.do(ctx, "ListReminderSchedules", http.MethodGet, "/schedules/reminders", nil, nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}
