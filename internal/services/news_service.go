package services

import (
	"errors"
	"strings"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/dateparse"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"gorm.io/gorm"
)

var ErrNewsNotFound = errors.New("fire news entry not found")

// NewsService builds the filtered, searched, sorted and paginated views over
// the fire_news table.
type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// NewsFilter carries the user-supplied query parameters. Slices layer their
// fixed predicates on top of it.
type NewsFilter struct {
	County       string
	State        string
	ReporterName string
	Search       string
	Status       string
	StartDate    string
	EndDate      string
	IsVerified   *bool
	IsHidden     *bool
	DataType     string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// Slice is a named fixed predicate baked into the query layer, not a
// user-supplied filter.
type Slice struct {
	Scope       func(*gorm.DB) *gorm.DB
	DefaultSort string
	// HideByDefault excludes hidden rows unless the caller filters on
	// is_hidden explicitly.
	HideByDefault bool
}

var (
	// SliceNone is the generic listing with no fixed predicate.
	SliceNone = Slice{DefaultSort: "published_date"}

	// SliceAllLeads hides both hidden rows and 911 records.
	SliceAllLeads = Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_hidden = ? AND data_type <> ?", false, models.DataTypeEmergency)
		},
		DefaultSort: "published_date",
	}

	// SliceTweets selects bot-detected records.
	SliceTweets = Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_hidden = ? AND source_category = ?", false, models.SourceTweet)
		},
		DefaultSort: "published_date",
	}

	// SliceWeb selects human/web-attributed records.
	SliceWeb = Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_hidden = ? AND source_category = ?", false, models.SourceWeb)
		},
		DefaultSort: "published_date",
	}

	// SliceUncategorized selects records with no usable attribution.
	SliceUncategorized = Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_hidden = ? AND source_category = ?", false, models.SourceUncategorized)
		},
		DefaultSort: "published_date",
	}

	// SliceHidden selects exactly the hidden rows.
	SliceHidden = Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_hidden = ?", true)
		},
		DefaultSort: "published_date",
	}

	// SliceEmergency selects 911 records, non-hidden unless the caller asks
	// otherwise, sorted by incident date.
	SliceEmergency = Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("data_type = ?", models.DataTypeEmergency)
		},
		DefaultSort:   "incident_date",
		HideByDefault: true,
	}
)

// sortableColumns is the whitelist for sort_by; anything else falls back to
// the slice's default.
var sortableColumns = map[string]bool{
	"id":                 true,
	"title":              true,
	"published_date":     true,
	"incident_date":      true,
	"created_at":         true,
	"updated_at":         true,
	"state":              true,
	"county":             true,
	"city":               true,
	"source":             true,
	"reporter_name":      true,
	"fire_related_score": true,
	"priority_level":     true,
	"response_time":      true,
	"status":             true,
}

func (s *NewsService) List(filter NewsFilter, slice Slice) (*dto.NewsListResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := s.db.Model(&models.NewsRecord{})
	if slice.Scope != nil {
		query = slice.Scope(query)
	}
	query = applyFilter(query, filter, slice)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	sortCol := filter.SortBy
	if !sortableColumns[sortCol] {
		sortCol = slice.DefaultSort
		if sortCol == "" {
			sortCol = "published_date"
		}
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	var records []models.NewsRecord
	if err := query.Order(sortCol + " " + direction).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, err
	}

	items := make([]dto.NewsResponse, len(records))
	for i := range records {
		items[i] = dto.NewNewsResponse(&records[i])
	}

	return &dto.NewsListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}

func applyFilter(query *gorm.DB, filter NewsFilter, slice Slice) *gorm.DB {
	if filter.County != "" {
		query = query.Where("county = ?", filter.County)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.ReporterName != "" {
		query = query.Where("reporter_name = ?", filter.ReporterName)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DataType != "" {
		query = query.Where("data_type = ?", filter.DataType)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.IsHidden != nil {
		query = query.Where("is_hidden = ?", *filter.IsHidden)
	} else if slice.HideByDefault {
		query = query.Where("is_hidden = ?", false)
	}

	dateCol := "published_date"
	if slice.DefaultSort == "incident_date" {
		dateCol = "incident_date"
	}
	// Invalid range bounds are ignored, matching the permissive contract of
	// the rest of the ingest path.
	if filter.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			query = query.Where(dateCol+" >= ?", start)
		}
	}
	if filter.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where(dateCol+" <= ?", end)
		}
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(state) LIKE ?)",
			like, like, like,
		)
	}
	return query
}

// SearchByTitle is the title-only substring search endpoint.
func (s *NewsService) SearchByTitle(title string, page, pageSize int) (*dto.NewsListResponse, error) {
	return s.List(NewsFilter{
		Search:   "",
		Page:     page,
		PageSize: pageSize,
	}, Slice{
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
		},
		DefaultSort: "published_date",
	})
}

// Reporters returns the distinct non-empty reporter names.
func (s *NewsService) Reporters() ([]string, error) {
	var names []string
	err := s.db.Model(&models.NewsRecord{}).
		Distinct("reporter_name").
		Where("reporter_name IS NOT NULL AND reporter_name <> ''").
		Order("reporter_name").
		Pluck("reporter_name", &names).Error
	return names, err
}

func (s *NewsService) Get(id uint) (*models.NewsRecord, error) {
	var record models.NewsRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Update applies a partial update; nil fields stay untouched. A supplied but
// unparseable published_date clears the value rather than erroring.
func (s *NewsService) Update(id uint, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setString("title", req.Title)
	setString("content", req.Content)
	setString("url", req.URL)
	setString("source", req.Source)
	setString("verification_result", req.VerificationResult)
	setString("state", req.State)
	setString("county", req.County)
	setString("city", req.City)
	setString("province", req.Province)
	setString("country", req.Country)
	setString("image_url", req.ImageURL)
	setString("tags", req.Tags)
	setString("incident_type", req.IncidentType)
	setString("priority_level", req.PriorityLevel)
	setString("status", req.Status)
	setString("notes", req.Notes)
	if req.FireRelatedScore != nil {
		updates["fire_related_score"] = *req.FireRelatedScore
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.PublishedDate != nil {
		if t, ok := dateparse.Normalize(*req.PublishedDate); ok {
			updates["published_date"] = t
		} else {
			updates["published_date"] = nil
		}
	}
	if req.ReporterName != nil {
		updates["reporter_name"] = *req.ReporterName
		updates["source_category"] = models.DeriveSourceCategory(record.DataType, *req.ReporterName)
	}

	if len(updates) > 0 {
		if err := s.db.Model(record).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	record, err = s.Get(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewNewsResponse(record)
	return &resp, nil
}

func (s *NewsService) Delete(id uint) error {
	result := s.db.Delete(&models.NewsRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}

// DeleteAll wipes the fire_news table. Admin only, logged by the caller.
func (s *NewsService) DeleteAll() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&models.NewsRecord{})
	return result.RowsAffected, result.Error
}

// ToggleVerified flips is_verified; flipping twice restores the original.
func (s *NewsService) ToggleVerified(id uint) (*dto.NewsResponse, error) {
	return s.toggleFlag(id, "is_verified", func(r *models.NewsRecord) bool { return r.IsVerified })
}

// ToggleHidden flips is_hidden; flipping twice restores the original.
func (s *NewsService) ToggleHidden(id uint) (*dto.NewsResponse, error) {
	return s.toggleFlag(id, "is_hidden", func(r *models.NewsRecord) bool { return r.IsHidden })
}

func (s *NewsService) toggleFlag(id uint, column string, current func(*models.NewsRecord) bool) (*dto.NewsResponse, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(record).Update(column, !current(record)).Error; err != nil {
		return nil, err
	}
	record, err = s.Get(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewNewsResponse(record)
	return &resp, nil
}
