package dto

import (
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/models"
)

type ActivityLogResponse struct {
	ID          uint                `json:"id"`
	ActionType  models.ActivityType `json:"action_type"`
	Description string              `json:"description"`
	Details     string              `json:"details,omitempty"`
	UserEmail   string              `json:"user_email,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type ActivityStatsResponse struct {
	TotalActivities    int64               `json:"total_activities"`
	ActivitiesByType   map[string]int64    `json:"activities_by_type"`
	RecentActivities24 int64               `json:"recent_activities_24h"`
	TopActiveUsers     []ActivityUserCount `json:"top_active_users"`
}

type ActivityUserCount struct {
	UserID *uint  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Count  int64  `json:"count"`
}
