package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SendCheer stores a cheer and returns the embed announcing it.
func (c *Client) SendCheer(ctx context.Context, req CheerRequest) (*CheerResult, error) {
	var result CheerResult
	if err := c.do(ctx, "SendCheer", http.MethodPost, "/discord/cheer-embed", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStreakLeaderboard ranks users by current or longest streak.
func (c *Client) GetStreakLeaderboard(ctx context.Context, limit int, streakType string) (*LeaderboardData, error) {
	query := url.Values{
		"limit": {strconv.Itoa(limit)},
		"type":  {streakType},
	}
	var data LeaderboardData
	if err := c.do(ctx, "GetStreakLeaderboard", http.MethodGet, "/leaderboard/streaks", query, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetCheckInLeaderboard ranks users by check-in count within a period.
func (c *Client) GetCheckInLeaderboard(ctx context.Context, limit int, period string) (*LeaderboardData, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"period": {period},
	}
	var data LeaderboardData
	if err := c.do(ctx, "GetCheckInLeaderboard", http.MethodGet, "/leaderboard/checkins", query, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GetGallery(ctx context.Context, discordID string, q GalleryQuery) (*GalleryPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" && q.Status != "all" {
		query.Set("status", q.Status)
	}
	var page GalleryPage
	if err := c.do(ctx, "GetGallery", http.MethodGet, userPath("/gallery", discordID), query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetNotifications(ctx context.Context, discordID string, q NotificationQuery) (*NotificationPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Type != "" && q.Type != "all" {
		query.Set("type", q.Type)
	}
	if q.UnreadOnly {
		query.Set("unread_only", "true")
	}
	var page NotificationPage
	if err := c.do(ctx, "GetNotifications", http.MethodGet, userPath("/notifications", discordID), query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MarkNotificationsRead marks the given ids as read.
func (c *Client) MarkNotificationsRead(ctx context.Context, discordID string, ids []string) error {
	body := struct {
		NotificationIDs []string `json:"notification_ids"`
	}{NotificationIDs: ids}
	return c.do(ctx, "MarkNotificationsRead", http.MethodPost, userPath("/notifications", discordID), nil, body, nil)
}

// MarkAllNotificationsRead clears the whole inbox.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, discordID string) error {
	return c.do(ctx, "MarkAllNotificationsRead", http.MethodPut, userPath("/notifications", discordID), nil, nil, nil)
}

// GetAnalytics summarises the last period days.
func (c *Client) GetAnalytics(ctx context.Context, discordID string, period int) (*Analytics, error) {
	query := url.Values{"period": {strconv.Itoa(period)}}
	var data Analytics
	if err := c.do(ctx, "GetAnalytics", http.MethodGet, userPath("/analytics", discordID), query, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
