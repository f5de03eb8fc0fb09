package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/config"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newSpreadsheetService(t *testing.T, db *gorm.DB) *SpreadsheetService {
	t.Helper()
	cfg := &config.Config{UploadDir: t.TempDir()}
	return NewSpreadsheetService(db, cfg, NewIngestService(db))
}

func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestProcessCSVMissingColumns(t *testing.T) {
	db := newTestDB(t)
	svc := newSpreadsheetService(t, db)

	// 911 schema without Context and Accuracy Score.
	csvData := []byte("Date,Station Name,City,County,Address,Lat,Long\n" +
		"2024-06-15,Station 4,Bakersfield,Kern,1 Main St,35.3,-119.0\n")

	_, err := svc.Process("calls.csv", "911 june batch", csvData, UploadMeta{})
	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"Context", "Accuracy Score"}, missing.Columns)

	// Header failure means nothing was ingested or recorded.
	var count int64
	require.NoError(t, db.Model(&models.NewsRecord{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.SpreadsheetUpload{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessCSVEmergency(t *testing.T) {
	db := newTestDB(t)
	svc := newSpreadsheetService(t, db)

	csvData := []byte("Date,Station Name,City,County,Address,Context,Lat,Long,Accuracy Score\n" +
		"2024-06-15 08:30:00,Station 4,Bakersfield,Kern,1 Main St,structure fire,35.37,-119.01,0.92\n" +
		"2024-06-15 09:00:00,Station 9,Delano,Kern,2 Oak Ave,vegetation fire,35.76,-119.24,0.81\n" +
		",,,,,,,,\n")

	outcome, err := svc.Process("calls.csv", "911 june batch", csvData, UploadMeta{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Inserted)
	assert.Equal(t, 1, outcome.Skipped, "blank row is skipped, not fatal")

	var rec models.NewsRecord
	require.NoError(t, db.Where("station_name = ?", "Station 4").First(&rec).Error)
	assert.Equal(t, models.DataTypeEmergency, rec.DataType)
	assert.Equal(t, models.SourceEmergency, rec.SourceCategory)
	require.NotNil(t, rec.Emergency.IncidentDate)
	require.NotNil(t, rec.Latitude)
	assert.InDelta(t, 35.37, *rec.Latitude, 0.001)
	require.NotNil(t, rec.Emergency.AddressAccuracyScore)
	assert.InDelta(t, 0.92, *rec.Emergency.AddressAccuracyScore, 0.001)
}

func TestProcessXLSXFireNews(t *testing.T) {
	db := newTestDB(t)
	svc := newSpreadsheetService(t, db)

	content := buildXLSX(t, [][]interface{}{
		{"title", "content", "published_date", "county", "reporter_name", "verification_result", "verified_at"},
		{"Canyon fire grows", "Crews on scene", "2024-06-15", "Kern", "Jane Smith", "confirmed", "2024-06-16"},
		{"", "row without a title", "2024-06-16", "Kern", "", "", ""},
		{"Second report", "More detail", "not-a-date", "Inyo", "", "", ""},
	})

	outcome, err := svc.Process("leads.xlsx", "scraped fire news", content, UploadMeta{})
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Inserted)
	assert.Equal(t, 1, outcome.Skipped)
	assert.Equal(t, 3, outcome.TotalProcessed)

	var rec models.NewsRecord
	require.NoError(t, db.Where("title = ?", "Canyon fire grows").First(&rec).Error)
	assert.Equal(t, "confirmed", rec.VerificationResult)
	require.NotNil(t, rec.VerifiedAt)
	assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), rec.VerifiedAt.UTC())

	// Reset so the previous row's primary key is not reused as a query condition.
	rec = models.NewsRecord{}
	require.NoError(t, db.Where("title = ?", "Second report").First(&rec).Error)
	assert.Nil(t, rec.PublishedDate, "bad cell date stores as unknown")
	assert.Equal(t, models.SourceUncategorized, rec.SourceCategory)
}

func TestProcessStoresFileAndMetadata(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	svc := NewSpreadsheetService(db, &config.Config{UploadDir: dir}, NewIngestService(db))

	csvData := []byte("title,content\nStored fire,body\n")
	_, err := svc.Process("feed.csv", "daily export", csvData, UploadMeta{
		FromURL:   "https://example.com/feed.csv",
		IPAddress: "10.1.2.3",
		UserAgent: "curl/8",
	})
	require.NoError(t, err)

	var upload models.SpreadsheetUpload
	require.NoError(t, db.First(&upload).Error)
	assert.Equal(t, "feed.csv", upload.FileName)
	assert.Equal(t, "https://example.com/feed.csv", upload.FromURL)
	assert.NotEmpty(t, upload.ExternalID)

	stored, err := os.ReadFile(upload.FilePath)
	require.NoError(t, err)
	assert.Equal(t, csvData, stored)
	assert.Equal(t, dir, filepath.Dir(upload.FilePath))
}

func TestProcessUnsupportedFormat(t *testing.T) {
	svc := newSpreadsheetService(t, newTestDB(t))
	_, err := svc.Process("notes.txt", "", []byte("hello"), UploadMeta{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestListUploads(t *testing.T) {
	db := newTestDB(t)
	svc := newSpreadsheetService(t, db)

	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		_, err := svc.Process(name, "", []byte("title,content\nX "+name+",body\n"), UploadMeta{})
		require.NoError(t, err)
	}

	uploads, total, err := svc.ListUploads(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, uploads, 2)
}
