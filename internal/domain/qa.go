package domain

import "time"

// HistoryItem is one answered question from the caller's history.
type HistoryItem struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPage is one page of history items plus the total count across all
// pages, used for pagination links.
type HistoryPage struct {
	Items []HistoryItem `json:"items"`
	Total int           `json:"total"`
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
	AdminUsers  int `json:"admin_users"`
}

// QueryStats aggregates question volume for the admin dashboard.
type QueryStats struct {
	TotalQueries   int     `json:"total_queries"`
	QueriesToday   int     `json:"queries_today"`
	AveragePerUser float64 `json:"average_per_user"`
}

// APICostStats aggregates upstream model spend for the admin dashboard.
type APICostStats struct {
	TotalCost    float64 `json:"total_cost"`
	CostToday    float64 `json:"cost_today"`
	CostPerQuery float64 `json:"cost_per_query"`
}

// AdminStats is the full admin dashboard payload.
type AdminStats struct {
	UserStats    UserStats    `json:"user_stats"`
	QueryStats   QueryStats   `json:"query_stats"`
	APICostStats APICostStats `json:"api_cost_stats"`
}
