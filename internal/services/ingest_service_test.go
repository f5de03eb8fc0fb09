package services

import (
	"testing"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestSingleValidation(t *testing.T) {
	svc := NewIngestService(newTestDB(t))

	_, err := svc.IngestSingle(&dto.NewsItemRequest{Content: "no title"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.IngestSingle(&dto.NewsItemRequest{Title: "no content"})
	assert.ErrorIs(t, err, ErrContentRequired)

	// 911 records carry no article body.
	outcome, err := svc.IngestSingle(&dto.NewsItemRequest{
		Title:       "911 Call - Station 4",
		DataType:    string(models.DataTypeEmergency),
		StationName: "Station 4",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Inserted)
}

func TestIngestSingleDerivesCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngestService(db)

	cases := []struct {
		reporter string
		want     models.SourceCategory
	}{
		{models.ReporterBotName, models.SourceTweet},
		{"Jane Smith", models.SourceWeb},
		{"", models.SourceUncategorized},
		{"null", models.SourceUncategorized},
	}
	for i, tc := range cases {
		_, err := svc.IngestSingle(&dto.NewsItemRequest{
			Title:        "Fire report " + string(rune('A'+i)),
			Content:      "body",
			ReporterName: tc.reporter,
		})
		require.NoError(t, err)

		var rec models.NewsRecord
		require.NoError(t, db.Last(&rec).Error)
		assert.Equal(t, tc.want, rec.SourceCategory, "reporter %q", tc.reporter)
	}
}

func TestIngestBulkDedup(t *testing.T) {
	svc := NewIngestService(newTestDB(t))

	items := []dto.NewsItemRequest{
		{Title: "Brush fire near Ridgecrest", Content: "a", PublishedDate: "2024-06-15"},
		{Title: "Brush fire near Ridgecrest", Content: "a", PublishedDate: "2024-06-15"},
		{Title: "Brush fire near Ridgecrest", Content: "a", PublishedDate: "2024-06-16"},
	}

	outcome, err := svc.IngestBulk(items)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Inserted)
	assert.Equal(t, 1, outcome.Skipped)
	assert.Equal(t, 3, outcome.TotalProcessed)
	assert.Equal(t, outcome.TotalProcessed, outcome.Inserted+outcome.Skipped)

	// Cross-batch dedup: a re-run of the same feed inserts nothing.
	outcome, err = svc.IngestBulk(items)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Inserted)
	assert.Equal(t, 3, outcome.Skipped)
}

func TestIngestBulkDedupNullDates(t *testing.T) {
	svc := NewIngestService(newTestDB(t))

	// NULL dates fall outside unique-index comparison; the explicit
	// pre-check has to catch these.
	items := []dto.NewsItemRequest{
		{Title: "Undated report", Content: "a"},
		{Title: "Undated report", Content: "a"},
	}
	outcome, err := svc.IngestBulk(items)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Inserted)
	assert.Equal(t, 1, outcome.Skipped)
}

func TestIngestBulkEmergencyDedup(t *testing.T) {
	svc := NewIngestService(newTestDB(t))

	items := []dto.NewsItemRequest{
		{Title: "911 Call - Station 7", DataType: string(models.DataTypeEmergency), StationName: "Station 7", IncidentDate: "2024-06-15 08:00:00"},
		{Title: "911 Call - Station 7", DataType: string(models.DataTypeEmergency), StationName: "Station 7", IncidentDate: "2024-06-15 08:00:00"},
		{Title: "911 Call - Station 7", DataType: string(models.DataTypeEmergency), StationName: "Station 7", IncidentDate: "2024-06-15 09:00:00"},
	}
	outcome, err := svc.IngestBulk(items)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Inserted)
	assert.Equal(t, 1, outcome.Skipped)
}

func TestIngestBulkInvalidItemAborts(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngestService(db)

	_, err := svc.IngestBulk([]dto.NewsItemRequest{
		{Title: "Good", Content: "a"},
		{Content: "missing title"},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.NewsRecord{}).Count(&count).Error)
	assert.Zero(t, count, "invalid batch must not partially insert")
}

func TestIngestNormalizesDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngestService(db)

	_, err := svc.IngestSingle(&dto.NewsItemRequest{
		Title:         "Epoch dated",
		Content:       "a",
		PublishedDate: "1718445000",
	})
	require.NoError(t, err)

	var rec models.NewsRecord
	require.NoError(t, db.Last(&rec).Error)
	require.NotNil(t, rec.PublishedDate)
	assert.Equal(t, int64(1718445000), rec.PublishedDate.Unix())

	// Garbage dates store as unknown, not as an error.
	_, err = svc.IngestSingle(&dto.NewsItemRequest{
		Title:         "Garbage dated",
		Content:       "a",
		PublishedDate: "soonish",
	})
	require.NoError(t, err)
	// Reset so the previous row's primary key is not reused as a query condition.
	rec = models.NewsRecord{}
	require.NoError(t, db.Last(&rec).Error)
	assert.Nil(t, rec.PublishedDate)
}
