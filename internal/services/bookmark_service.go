package services

import (
	"errors"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrBookmarkExists   = errors.New("record is already bookmarked")
)

// BookmarkService manages per-user saved records.
type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

func (s *BookmarkService) Create(userID uint, req *dto.BookmarkCreateRequest) (*dto.BookmarkResponse, error) {
	var news models.NewsRecord
	if err := s.db.First(&news, "id = ?", req.NewsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	dataType := models.DataType(req.DataType)
	if dataType == "" {
		dataType = news.DataType
	}

	var count int64
	err := s.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND news_id = ? AND data_type = ?", userID, req.NewsID, dataType).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBookmarkExists
	}

	bookmark := &models.Bookmark{
		UserID:   userID,
		NewsID:   req.NewsID,
		DataType: dataType,
	}
	if err := s.db.Create(bookmark).Error; err != nil {
		return nil, err
	}
	resp := newBookmarkResponse(bookmark)
	return &resp, nil
}

// List returns the user's bookmarks with the bookmarked record embedded,
// newest bookmark first, optionally narrowed to one record kind. Bookmarks
// whose record was deleted are dropped.
func (s *BookmarkService) List(userID uint, dataType models.DataType, page, pageSize int) ([]dto.BookmarkWithNewsResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		if dataType != "" {
			db = db.Where("data_type = ?", dataType)
		}
		return db
	}

	var total int64
	if err := scope(s.db.Model(&models.Bookmark{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookmarks []models.Bookmark
	err := scope(s.db.Preload("News")).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&bookmarks).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.BookmarkWithNewsResponse, 0, len(bookmarks))
	for i := range bookmarks {
		if bookmarks[i].News.ID == 0 {
			continue
		}
		out = append(out, dto.BookmarkWithNewsResponse{
			BookmarkResponse: newBookmarkResponse(&bookmarks[i]),
			News:             dto.NewNewsResponse(&bookmarks[i].News),
		})
	}
	return out, total, nil
}

// Delete removes a bookmark by its id; only the owner can delete it.
func (s *BookmarkService) Delete(userID, bookmarkID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", bookmarkID, userID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// DeleteByNews removes the bookmark for a given record and kind, letting the
// client unbookmark without knowing the bookmark id.
func (s *BookmarkService) DeleteByNews(userID, newsID uint, dataType models.DataType) error {
	result := s.db.Where("user_id = ? AND news_id = ? AND data_type = ?", userID, newsID, dataType).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// Status reports whether the user has bookmarked a record.
func (s *BookmarkService) Status(userID, newsID uint, dataType models.DataType) (*dto.BookmarkStatusResponse, error) {
	var bookmark models.Bookmark
	err := s.db.Where("user_id = ? AND news_id = ? AND data_type = ?", userID, newsID, dataType).
		First(&bookmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.BookmarkStatusResponse{IsBookmarked: false}, nil
	}
	if err != nil {
		return nil, err
	}
	id := bookmark.ID
	return &dto.BookmarkStatusResponse{IsBookmarked: true, BookmarkID: &id}, nil
}

func newBookmarkResponse(b *models.Bookmark) dto.BookmarkResponse {
	return dto.BookmarkResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		NewsID:    b.NewsID,
		DataType:  string(b.DataType),
		CreatedAt: b.CreatedAt,
	}
}
