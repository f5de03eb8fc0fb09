package services

import (
	"fmt"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"gorm.io/gorm"
)

// ActivityService is the append-only audit trail writer plus the admin read
// side. Write failures are reported to the caller but callers treat them as
// non-fatal: a lost audit row must not fail the user-facing operation.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

type ActivityEntry struct {
	ActionType  models.ActivityType
	Description string
	Details     string
	UserID      *uint
	IPAddress   string
	UserAgent   string
}

func (s *ActivityService) Record(entry ActivityEntry) error {
	row := models.ActivityLog{
		UserID:      entry.UserID,
		ActionType:  entry.ActionType,
		Description: entry.Description,
		Details:     entry.Details,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
	}
	return s.db.Create(&row).Error
}

func (s *ActivityService) LogLogin(user *models.User, ip, userAgent string) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityUserLogin,
		Description: fmt.Sprintf("User %s logged in", user.Email),
		Details:     fmt.Sprintf("Login successful for user: %s", user.Email),
		UserID:      &user.ID,
		IPAddress:   ip,
		UserAgent:   userAgent,
	})
}

func (s *ActivityService) LogLogout(user *models.User, ip, userAgent string) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityUserLogout,
		Description: fmt.Sprintf("User %s logged out", user.Email),
		UserID:      &user.ID,
		IPAddress:   ip,
		UserAgent:   userAgent,
	})
}

func (s *ActivityService) LogRegistration(user *models.User, ip, userAgent string) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityUserCreated,
		Description: fmt.Sprintf("New user registered: %s", user.Email),
		Details:     fmt.Sprintf("User registration completed for: %s with role: %s", user.Email, user.Role),
		UserID:      &user.ID,
		IPAddress:   ip,
		UserAgent:   userAgent,
	})
}

func (s *ActivityService) LogRoleChange(target *models.User, oldRole, newRole models.Role, changedBy *models.User) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityRoleChanged,
		Description: fmt.Sprintf("User %s role changed from %s to %s", target.Email, oldRole, newRole),
		Details:     fmt.Sprintf("Role updated by admin %s", changedBy.Email),
		UserID:      &target.ID,
	})
}

func (s *ActivityService) LogUserDeletion(deletedEmail string, deletedBy *models.User) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityUserDeleted,
		Description: fmt.Sprintf("User %s was deleted", deletedEmail),
		Details:     fmt.Sprintf("User account removed by admin %s", deletedBy.Email),
		UserID:      &deletedBy.ID,
	})
}

func (s *ActivityService) LogIngestion(source string, result IngestOutcome, userID *uint, ip, userAgent string) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityNewsUploaded,
		Description: fmt.Sprintf("News ingestion via %s", source),
		Details: fmt.Sprintf("inserted=%d skipped=%d total=%d",
			result.Inserted, result.Skipped, result.TotalProcessed),
		UserID:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func (s *ActivityService) LogNewsDeletion(description string, deletedBy *models.User) error {
	return s.Record(ActivityEntry{
		ActionType:  models.ActivityNewsDeleted,
		Description: description,
		Details:     fmt.Sprintf("Deleted by %s", deletedBy.Email),
		UserID:      &deletedBy.ID,
	})
}

// List returns activity logs newest first with optional action-type and
// user filters, joined with the actor's email.
func (s *ActivityService) List(page, pageSize int, actionType string, userID *uint) ([]dto.ActivityLogResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	query := s.db.Model(&models.ActivityLog{}).Preload("User")
	if actionType != "" {
		query = query.Where("action_type = ?", actionType)
	}
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	out := make([]dto.ActivityLogResponse, len(logs))
	for i, log := range logs {
		resp := dto.ActivityLogResponse{
			ID:          log.ID,
			ActionType:  log.ActionType,
			Description: log.Description,
			Details:     log.Details,
			CreatedAt:   log.CreatedAt,
		}
		if log.User != nil {
			resp.UserEmail = log.User.Email
		}
		out[i] = resp
	}
	return out, nil
}

// ListForUser returns the newest entries attributed to one user.
func (s *ActivityService) ListForUser(userID uint, limit int) ([]dto.ActivityLogResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.List(1, limit, "", &userID)
}

// Stats aggregates totals, per-type counts, a 24h window and top actors.
func (s *ActivityService) Stats() (*dto.ActivityStatsResponse, error) {
	var total int64
	if err := s.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(models.AllActivityTypes))
	for _, t := range models.AllActivityTypes {
		var n int64
		if err := s.db.Model(&models.ActivityLog{}).Where("action_type = ?", t).Count(&n).Error; err != nil {
			return nil, err
		}
		byType[string(t)] = n
	}

	var recent int64
	dayAgo := time.Now().Add(-24 * time.Hour)
	if err := s.db.Model(&models.ActivityLog{}).Where("created_at >= ?", dayAgo).Count(&recent).Error; err != nil {
		return nil, err
	}

	type row struct {
		UserID *uint
		Email  *string
		Count  int64
	}
	var rows []row
	if err := s.db.Model(&models.ActivityLog{}).
		Select("activity_logs.user_id AS user_id, users.email AS email, COUNT(activity_logs.id) AS count").
		Joins("LEFT JOIN users ON users.id = activity_logs.user_id").
		Group("activity_logs.user_id, users.email").
		Order("count DESC").
		Limit(10).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	top := make([]dto.ActivityUserCount, len(rows))
	for i, r := range rows {
		top[i] = dto.ActivityUserCount{UserID: r.UserID, Count: r.Count}
		if r.Email != nil {
			top[i].Email = *r.Email
		}
	}

	return &dto.ActivityStatsResponse{
		TotalActivities:    total,
		ActivitiesByType:   byType,
		RecentActivities24: recent,
		TopActiveUsers:     top,
	}, nil
}
