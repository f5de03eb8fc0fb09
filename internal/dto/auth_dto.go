package dto

import (
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username,omitempty"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	City      string      `json:"city,omitempty"`
	State     string      `json:"state,omitempty"`
	Country   string      `json:"country,omitempty"`
	IsActive  bool        `json:"is_active"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

type UserStatsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	ActiveUsers      int64 `json:"active_users"`
	InactiveUsers    int64 `json:"inactive_users"`
	AdminUsers       int64 `json:"admin_users"`
	EditorUsers      int64 `json:"editor_users"`
	ReporterUsers    int64 `json:"reporter_users"`
	RegularUsers     int64 `json:"regular_users"`
	RecentActivities int64 `json:"recent_activities"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		City:      u.City,
		State:     u.State,
		Country:   u.Country,
		IsActive:  u.IsActive,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.Username != nil {
		resp.Username = *u.Username
	}
	return resp
}
