package api

import (
	"context"
	"net/http"
)

// LogCheckIn records today's check-in and returns the embed to show.
func (c *Client) LogCheckIn(ctx context.Context, req CheckInRequest) (*Embed, error) {
	var embed Embed
	if err := c.do(ctx, "LogCheckIn", http.MethodPost, "/discord/checkin", nil, req, &embed); err != nil {
		return nil, err
	}
	return &embed, nil
}

// LogRestDay records a rest day, which keeps the streak alive.
func (c *Client) LogRestDay(ctx context.Context, req RestDayRequest) (*Embed, error) {
	var embed Embed
	if err := c.do(ctx, "LogRestDay", http.MethodPost, "/discord/rest-day", nil, req, &embed); err != nil {
		return nil, err
	}
	return &embed, nil
}

func (c *Client) GetStreak(ctx context.Context, discordID string) (*StreakData, error) {
	var streak StreakData
	if err := c.do(ctx, "GetStreak", http.MethodGet, userPath("/streak", discordID), nil, nil, &streak); err != nil {
		return nil, err
	}
	return &streak, nil
}
