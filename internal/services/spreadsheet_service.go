package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/config"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// MissingColumnsError reports header validation failure; no rows are
// processed when it fires.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx, .xls or .csv")

// emergencyColumns are required when the upload label marks the file as 911
// incident data. fire-news files only need a title column.
var emergencyColumns = []string{
	"Date", "Station Name", "City", "County", "Address",
	"Context", "Lat", "Long", "Accuracy Score",
}

// SpreadsheetService parses uploaded spreadsheets into ingestion requests,
// keeps a copy of every file on disk and records upload metadata.
type SpreadsheetService struct {
	db     *gorm.DB
	cfg    *config.Config
	ingest *IngestService
}

func NewSpreadsheetService(db *gorm.DB, cfg *config.Config, ingest *IngestService) *SpreadsheetService {
	return &SpreadsheetService{db: db, cfg: cfg, ingest: ingest}
}

// UploadMeta carries request context stored alongside the file.
type UploadMeta struct {
	FromURL   string
	IPAddress string
	UserAgent string
}

// Process stores the file, parses it according to the label and runs the
// rows through ingestion. A label containing "911" selects the emergency
// incident schema.
func (s *SpreadsheetService) Process(fileName, label string, content []byte, meta UploadMeta) (IngestOutcome, error) {
	rows, err := readRows(fileName, content)
	if err != nil {
		return IngestOutcome{}, err
	}
	if len(rows) == 0 {
		return IngestOutcome{}, nil
	}

	is911 := strings.Contains(strings.ToLower(label), "911")
	items, skippedRows, err := mapRows(rows, is911)
	if err != nil {
		return IngestOutcome{}, err
	}

	if _, err := s.storeFile(fileName, content, meta, label); err != nil {
		return IngestOutcome{}, err
	}

	outcome, err := s.ingest.IngestBulk(items)
	if err != nil {
		return outcome, err
	}
	outcome.Skipped += skippedRows
	outcome.TotalProcessed += skippedRows
	return outcome, nil
}

// Archive stores a file and its metadata without parsing any rows.
func (s *SpreadsheetService) Archive(fileName string, content []byte, meta UploadMeta, label string) (*models.SpreadsheetUpload, error) {
	return s.storeFile(fileName, content, meta, label)
}

// ListUploads returns upload metadata, newest first. The stored files are
// never served back.
func (s *SpreadsheetService) ListUploads(page, pageSize int) ([]models.SpreadsheetUpload, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	var total int64
	if err := s.db.Model(&models.SpreadsheetUpload{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var uploads []models.SpreadsheetUpload
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&uploads).Error
	return uploads, total, err
}

func (s *SpreadsheetService) storeFile(fileName string, content []byte, meta UploadMeta, label string) (*models.SpreadsheetUpload, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	stored := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(fileName))
	path := filepath.Join(s.cfg.UploadDir, stored)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, err
	}

	upload := &models.SpreadsheetUpload{
		FileName:  fileName,
		FilePath:  path,
		FromURL:   meta.FromURL,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Extra:     label,
	}
	if err := s.db.Create(upload).Error; err != nil {
		return nil, err
	}
	return upload, nil
}

// readRows decodes the spreadsheet into string rows, header first.
func readRows(fileName string, content []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xls":
		return readExcel(content)
	case ".csv":
		return readCSV(content)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readExcel(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// mapRows validates the header against the selected schema and converts the
// data rows. Rows that fail conversion are dropped and counted, never fatal.
func mapRows(rows [][]string, is911 bool) ([]dto.NewsItemRequest, int, error) {
	header := map[string]int{}
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	required := []string{"title"}
	if is911 {
		required = emergencyColumns
	}
	var missing []string
	for _, col := range required {
		if _, ok := header[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, 0, &MissingColumnsError{Columns: missing}
	}

	cell := func(row []string, col string) string {
		idx, ok := header[strings.ToLower(col)]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []dto.NewsItemRequest
	skipped := 0
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		var item dto.NewsItemRequest
		if is911 {
			station := cell(row, "Station Name")
			if station == "" {
				skipped++
				continue
			}
			item = dto.NewsItemRequest{
				Title:        "911 Call - " + station,
				DataType:     string(models.DataTypeEmergency),
				IncidentDate: cell(row, "Date"),
				StationName:  station,
				City:         cell(row, "City"),
				County:       cell(row, "County"),
				Address:      cell(row, "Address"),
				Context:      cell(row, "Context"),
				Latitude:     parseFloatCell(cell(row, "Lat")),
				Longitude:    parseFloatCell(cell(row, "Long")),
			}
			item.AddressAccuracyScore = parseFloatCell(cell(row, "Accuracy Score"))
		} else {
			title := cell(row, "title")
			if title == "" {
				skipped++
				continue
			}
			item = dto.NewsItemRequest{
				Title:              title,
				Content:            cell(row, "content"),
				PublishedDate:      cell(row, "published_date"),
				URL:                cell(row, "url"),
				Source:             cell(row, "source"),
				State:              cell(row, "state"),
				County:             cell(row, "county"),
				City:               cell(row, "city"),
				Province:           cell(row, "province"),
				Country:            cell(row, "country"),
				ImageURL:           cell(row, "image_url"),
				Tags:               cell(row, "tags"),
				ReporterName:       cell(row, "reporter_name"),
				VerificationResult: cell(row, "verification_result"),
				VerifiedAt:         cell(row, "verified_at"),
				Latitude:           parseFloatCell(cell(row, "latitude")),
				Longitude:          parseFloatCell(cell(row, "longitude")),
				FireRelatedScore:   parseFloatCell(cell(row, "fire_related_score")),
				DataType:           string(models.DataTypeFireNews),
			}
			if item.Content == "" {
				item.Content = title
			}
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

func parseFloatCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
