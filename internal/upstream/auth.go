package upstream

import (
	"context"
	"net/http"

	"examobuddy/internal/domain"
)

// LoginResult is the upstream response to a successful login or
// registration: the bearer token plus the account snapshot to cache.
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// Login exchanges credentials for a bearer token and user record.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req := map[string]string{"username": username, "password": password}
	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/token", "auth_token", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account and, like Login, returns a token and record.
func (c *Client) Register(ctx context.Context, username, password string) (*LoginResult, error) {
	req := map[string]string{"username": username, "password": password}
	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "auth_register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me fetches the account record for the caller's token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", "auth_me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
