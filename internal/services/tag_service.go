package services

import (
	"errors"
	"strings"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagNameTaken = errors.New("a tag with that name already exists")
	ErrTagInactive  = errors.New("tag is inactive or does not exist")
	ErrTagNameEmpty = errors.New("tag name is required")
)

// TagService manages the tag catalog and per-record assignments. Tags are
// soft-deleted so old associations stay readable.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// TagFilter carries the catalog listing parameters. A nil IsActive means
// active tags only, the common case.
type TagFilter struct {
	Search   string
	Category string
	IsActive *bool
	Page     int
	PageSize int
}

func (s *TagService) List(filter TagFilter) (*dto.TagListResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 100
	}

	query := s.db.Model(&models.Tag{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	} else {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var tags []models.Tag
	if err := query.Order("name").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return &dto.TagListResponse{Tags: tags, Total: total}, nil
}

// Search powers autocomplete: active tags only, name prefix/substring match,
// capped result set.
func (s *TagService) Search(q string, limit int) ([]dto.TagSummary, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}
	var tags []models.Tag
	err := s.db.Where("is_active = ? AND LOWER(name) LIKE ?", true, "%"+strings.ToLower(q)+"%").
		Order("name").Limit(limit).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagSummary, len(tags))
	for i := range tags {
		out[i] = dto.NewTagSummary(&tags[i])
	}
	return out, nil
}

// Categories returns the distinct non-empty categories of active tags.
func (s *TagService) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Tag{}).
		Distinct("category").
		Where("is_active = ? AND category <> ''", true).
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *TagService) Create(req *dto.TagCreateRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrTagNameEmpty
	}
	tag := &models.Tag{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		IsActive:    true,
	}
	if err := s.db.Create(tag).Error; err != nil {
		var existing models.Tag
		if s.db.Where("name = ?", name).First(&existing).Error == nil {
			return nil, ErrTagNameTaken
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Update(id uint, req *dto.TagUpdateRequest) (*models.Tag, error) {
	tag, err := s.get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrTagNameEmpty
		}
		var count int64
		if err := s.db.Model(&models.Tag{}).
			Where("name = ? AND id <> ?", name, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrTagNameTaken
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(tag).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.get(id)
}

// Delete soft-deletes by flipping is_active; assignments are untouched.
func (s *TagService) Delete(id uint) error {
	tag, err := s.get(id)
	if err != nil {
		return err
	}
	return s.db.Model(tag).Update("is_active", false).Error
}

// GetForNews returns the tags currently assigned to a record.
func (s *TagService) GetForNews(newsID uint) ([]dto.TagSummary, error) {
	var tags []models.Tag
	err := s.db.Model(&models.Tag{}).
		Joins("JOIN fire_news_tags ON fire_news_tags.tag_id = tags.id").
		Where("fire_news_tags.fire_news_id = ?", newsID).
		Order("tags.name").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagSummary, len(tags))
	for i := range tags {
		out[i] = dto.NewTagSummary(&tags[i])
	}
	return out, nil
}

// ReplaceForNews makes the record's tag set exactly tagIDs. All ids must
// reference active tags; the swap is transactional and idempotent.
func (s *TagService) ReplaceForNews(newsID uint, tagIDs []uint) ([]dto.TagSummary, error) {
	var news models.NewsRecord
	if err := s.db.First(&news, "id = ?", newsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	if len(tagIDs) > 0 {
		var count int64
		err := s.db.Model(&models.Tag{}).
			Where("id IN ? AND is_active = ?", tagIDs, true).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count != int64(len(dedupIDs(tagIDs))) {
			return nil, ErrTagInactive
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fire_news_id = ?", newsID).Delete(&models.NewsTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range dedupIDs(tagIDs) {
			if err := tx.Create(&models.NewsTag{FireNewsID: newsID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetForNews(newsID)
}

// RemoveForNews detaches one tag from a record.
func (s *TagService) RemoveForNews(newsID, tagID uint) error {
	result := s.db.Where("fire_news_id = ? AND tag_id = ?", newsID, tagID).
		Delete(&models.NewsTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (s *TagService) get(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
