package upstream

import (
	"context"
	"net/http"

	"examobuddy/internal/domain"
)

// Stats returns the aggregate counts and costs for the admin dashboard.
func (c *Client) Stats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", "admin_stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Users returns every account, for the admin user table.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var res struct {
		Users []domain.User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", "admin_users", nil, &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}
