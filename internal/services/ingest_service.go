package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/firewatchhq/firewatch-backend/internal/dateparse"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required for fire news records")
)

// IngestOutcome summarizes one ingestion run. Inserted + Skipped always
// equals TotalProcessed.
type IngestOutcome struct {
	Inserted       int
	Skipped        int
	TotalProcessed int
}

// IngestService turns incoming payloads into fire_news rows, silently
// dropping duplicates.
type IngestService struct {
	db *gorm.DB
}

func NewIngestService(db *gorm.DB) *IngestService {
	return &IngestService{db: db}
}

// IngestSingle validates and stores one record.
func (s *IngestService) IngestSingle(req *dto.NewsItemRequest) (IngestOutcome, error) {
	record, err := buildRecord(req)
	if err != nil {
		return IngestOutcome{}, err
	}
	outcome := IngestOutcome{TotalProcessed: 1}
	inserted, err := s.insertDedup(s.db, record)
	if err != nil {
		return outcome, err
	}
	if inserted {
		outcome.Inserted = 1
	} else {
		outcome.Skipped = 1
	}
	return outcome, nil
}

// IngestBulk stores a batch in one transaction. Invalid items abort the
// batch; duplicates are counted as skipped.
func (s *IngestService) IngestBulk(items []dto.NewsItemRequest) (IngestOutcome, error) {
	outcome := IngestOutcome{TotalProcessed: len(items)}

	records := make([]*models.NewsRecord, 0, len(items))
	for i := range items {
		record, err := buildRecord(&items[i])
		if err != nil {
			return IngestOutcome{}, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, record)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			inserted, err := s.insertDedup(tx, record)
			if err != nil {
				return err
			}
			if inserted {
				outcome.Inserted++
			} else {
				outcome.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return IngestOutcome{TotalProcessed: len(items)}, err
	}
	return outcome, nil
}

// insertDedup inserts one record, treating an existing row with the same
// dedup key as a silent skip. The unique indexes catch keyed collisions via
// ON CONFLICT DO NOTHING; rows whose date half is NULL fall outside unique
// index semantics, so those are pre-checked explicitly.
func (s *IngestService) insertDedup(tx *gorm.DB, record *models.NewsRecord) (bool, error) {
	if record.DataType == models.DataTypeEmergency {
		if record.Emergency.IncidentDate == nil {
			var count int64
			err := tx.Model(&models.NewsRecord{}).
				Where("station_name = ? AND incident_date IS NULL", record.Emergency.StationName).
				Count(&count).Error
			if err != nil {
				return false, err
			}
			if count > 0 {
				return false, nil
			}
		}
	} else if record.PublishedDate == nil {
		var count int64
		err := tx.Model(&models.NewsRecord{}).
			Where("title = ? AND published_date IS NULL", record.Title).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return false, nil
		}
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// buildRecord validates a request and maps it onto the storage model,
// normalizing dates and deriving the source category.
func buildRecord(req *dto.NewsItemRequest) (*models.NewsRecord, error) {
	dataType := models.DataType(req.DataType)
	if dataType == "" {
		dataType = models.DataTypeFireNews
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if dataType == models.DataTypeFireNews && strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	record := &models.NewsRecord{
		Title:              req.Title,
		Content:            req.Content,
		URL:                req.URL,
		Source:             req.Source,
		VerificationResult: req.VerificationResult,
		State:              req.State,
		County:             req.County,
		City:               req.City,
		Province:           req.Province,
		Country:            req.Country,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		ImageURL:           req.ImageURL,
		Tags:               req.Tags,
		ReporterName:       req.ReporterName,
		DataType:           dataType,
		SourceCategory:     models.DeriveSourceCategory(dataType, req.ReporterName),
	}
	if req.FireRelatedScore != nil {
		record.FireRelatedScore = *req.FireRelatedScore
	}

	if t, ok := dateparse.Normalize(req.PublishedDate); ok {
		record.PublishedDate = &t
	}
	if t, ok := dateparse.Normalize(req.VerifiedAt); ok {
		record.VerifiedAt = &t
	}

	if dataType == models.DataTypeEmergency {
		record.Emergency = models.EmergencyDetails{
			StationName:          req.StationName,
			Address:              req.Address,
			Context:              req.Context,
			VerifiedAddress:      req.VerifiedAddress,
			AddressAccuracyScore: req.AddressAccuracyScore,
			IncidentType:         req.IncidentType,
			PriorityLevel:        req.PriorityLevel,
			ResponseTime:         req.ResponseTime,
			UnitsDispatched:      req.UnitsDispatched,
			Status:               req.Status,
			Notes:                req.Notes,
		}
		if t, ok := dateparse.Normalize(req.IncidentDate); ok {
			record.Emergency.IncidentDate = &t
		}
	}

	return record, nil
}
