package upstream

import (
	"context"
	"fmt"
	"net/http"

	"examobuddy/internal/domain"
)

// History returns one page of the caller's answered questions.
func (c *Client) History(ctx context.Context, skip, limit int) (*domain.HistoryPage, error) {
	path := fmt.Sprintf("/history?skip=%d&limit=%d", skip, limit)
	var page domain.HistoryPage
	if err := c.doJSON(ctx, http.MethodGet, path, "history_list", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// HistoryItem returns a single answered question by ID.
func (c *Client) HistoryItem(ctx context.Context, id int64) (*domain.HistoryItem, error) {
	var item domain.HistoryItem
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/history/%d", id), "history_item", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteHistoryItem removes a single answered question by ID.
func (c *Client) DeleteHistoryItem(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/history/%d", id), "history_delete", nil, nil)
}
