package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// RegisterUser creates the backend account for a Discord user. The backend
// sometimes answers a successful registration with a 400 "registered
// successfully"; that is reported as success. An existing account is also a
// success with AlreadyRegistered set.
func (c *Client) RegisterUser(ctx context.Context, id Identity) (*RegisterResult, error) {
	var result RegisterResult
	err := c.do(ctx, "RegisterUser", http.MethodPost, "/discord/register", nil, id, &result)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest &&
			strings.Contains(strings.ToLower(apiErr.Message), "registered successfully") {
			return &RegisterResult{Message: apiErr.Message}, nil
		}
		if IsKind(err, KindAlreadyRegistered) {
			return &RegisterResult{Message: apiErr.Message, AlreadyRegistered: true}, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetRegisterEmbed fetches the backend's registration call-to-action embed.
func (c *Client) GetRegisterEmbed(ctx context.Context, id Identity) (*Embed, error) {
	var embed Embed
	if err := c.do(ctx, "GetRegisterEmbed", http.MethodPost, "/discord/register-embed", nil, id, &embed); err != nil {
		return nil, err
	}
	return &embed, nil
}

// GetProfileEmbed fetches the rendered profile for a Discord user.
func (c *Client) GetProfileEmbed(ctx context.Context, discordID string) (*Embed, error) {
	var embed Embed
	query := url.Values{"discord_id": {discordID}}
	if err := c.do(ctx, "GetProfileEmbed", http.MethodGet, "/discord/profile-embed", query, nil, &embed); err != nil {
		return nil, err
	}
	return &embed, nil
}
