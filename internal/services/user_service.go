package services

import (
	"errors"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSelfModification = errors.New("administrators cannot modify their own account")
	ErrLastAdmin        = errors.New("at least one active administrator must remain")
	ErrInvalidRole      = errors.New("invalid role")
)

type UserService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewUserService(db *gorm.DB, activity *ActivityService) *UserService {
	return &UserService{db: db, activity: activity}
}

func (s *UserService) List(skip, limit int) ([]dto.UserResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}

	var users []models.User
	if err := s.db.Order("id").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = dto.NewUserResponse(&users[i])
	}
	return out, nil
}

func (s *UserService) Stats() (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.ActiveUsers, s.db.Model(&models.User{}).Where("is_active = ?", true)},
		{&stats.AdminUsers, s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin)},
		{&stats.EditorUsers, s.db.Model(&models.User{}).Where("role = ?", models.RoleEditor)},
		{&stats.ReporterUsers, s.db.Model(&models.User{}).Where("role = ?", models.RoleReporter)},
		{&stats.RegularUsers, s.db.Model(&models.User{}).Where("role = ?", models.RoleUser)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.db.Model(&models.ActivityLog{}).
		Where("created_at >= ?", weekAgo).
		Count(&stats.RecentActivities).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// UpdateRole changes a user's role. Admins cannot change their own role and
// the last active admin cannot be demoted.
func (s *UserService) UpdateRole(targetID uint, newRole models.Role, actor *models.User) (*dto.UserResponse, error) {
	if !newRole.Valid() {
		return nil, ErrInvalidRole
	}
	if actor.ID == targetID {
		return nil, ErrSelfModification
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if target.Role == models.RoleAdmin && newRole != models.RoleAdmin {
		if last, err := s.isLastActiveAdmin(&target); err != nil {
			return nil, err
		} else if last {
			return nil, ErrLastAdmin
		}
	}

	oldRole := target.Role
	if err := s.db.Model(&target).Update("role", newRole).Error; err != nil {
		return nil, err
	}
	target.Role = newRole

	if err := s.activity.LogRoleChange(&target, oldRole, newRole, actor); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(&target)
	return &resp, nil
}

// Delete removes a user account. Admins cannot delete themselves and the
// last active admin cannot be deleted. Dependent rows (refresh tokens,
// bookmarks) go with the FK cascade.
func (s *UserService) Delete(targetID uint, actor *models.User) error {
	if actor.ID == targetID {
		return ErrSelfModification
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if target.Role == models.RoleAdmin {
		if last, err := s.isLastActiveAdmin(&target); err != nil {
			return err
		} else if last {
			return ErrLastAdmin
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", targetID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ActivityLog{}).
			Where("user_id = ?", targetID).Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
	if err != nil {
		return err
	}

	return s.activity.LogUserDeletion(target.Email, actor)
}

func (s *UserService) isLastActiveAdmin(target *models.User) (bool, error) {
	var admins int64
	err := s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Count(&admins).Error
	if err != nil {
		return false, err
	}
	if !target.IsActive {
		// Deleting or demoting an already-inactive admin never removes an
		// active one.
		return false, nil
	}
	return admins <= 1, nil
}
