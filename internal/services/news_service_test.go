package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNews(t *testing.T, db *gorm.DB, n int, mutate func(i int, r *models.NewsRecord)) {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		published := base.AddDate(0, 0, i)
		rec := models.NewsRecord{
			Title:          fmt.Sprintf("Fire report %03d", i),
			Content:        "body",
			PublishedDate:  &published,
			DataType:       models.DataTypeFireNews,
			SourceCategory: models.SourceWeb,
			ReporterName:   "Jane Smith",
		}
		if mutate != nil {
			mutate(i, &rec)
		}
		require.NoError(t, db.Create(&rec).Error)
	}
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 15, nil)

	resp, err := svc.List(NewsFilter{Page: 2, PageSize: 10}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Len(t, resp.Items, 5)

	// Out-of-range values clamp instead of erroring.
	resp, err = svc.List(NewsFilter{Page: -3, PageSize: 5000}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 10, func(i int, r *models.NewsRecord) {
		if i < 3 {
			r.County = "Kern"
			r.State = "California"
		}
		if i == 5 {
			r.IsVerified = true
		}
	})

	resp, err := svc.List(NewsFilter{County: "Kern"}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)

	verified := true
	resp, err = svc.List(NewsFilter{IsVerified: &verified}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	// Date range bounds are inclusive; the end date covers its whole day.
	resp, err = svc.List(NewsFilter{StartDate: "2024-06-02", EndDate: "2024-06-04"}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
}

func TestListSearchMatchesTitleContentState(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 3, func(i int, r *models.NewsRecord) {
		switch i {
		case 0:
			r.Title = "Ridgecrest blaze spreads"
		case 1:
			r.Content = "evacuations near ridgecrest continue"
		case 2:
			r.State = "Ridgecrest Territory"
		}
	})

	resp, err := svc.List(NewsFilter{Search: "RIDGECREST"}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
}

func TestListSortWhitelist(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 5, nil)

	resp, err := svc.List(NewsFilter{SortBy: "title", SortOrder: "asc"}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, "Fire report 000", resp.Items[0].Title)

	// Unknown columns fall back to published_date descending.
	resp, err = svc.List(NewsFilter{SortBy: "password; DROP TABLE users"}, SliceNone)
	require.NoError(t, err)
	assert.Equal(t, "Fire report 004", resp.Items[0].Title)
}

func TestSlices(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 8, func(i int, r *models.NewsRecord) {
		switch {
		case i < 2:
			r.ReporterName = models.ReporterBotName
			r.SourceCategory = models.SourceTweet
		case i == 2:
			r.ReporterName = ""
			r.SourceCategory = models.SourceUncategorized
		case i == 3:
			r.IsHidden = true
		case i >= 6:
			r.DataType = models.DataTypeEmergency
			r.SourceCategory = models.SourceEmergency
			incident := time.Date(2024, 6, 10+i, 0, 0, 0, 0, time.UTC)
			r.Emergency = models.EmergencyDetails{
				StationName:  fmt.Sprintf("Station %d", i),
				IncidentDate: &incident,
			}
		}
	})

	counts := map[string]struct {
		slice Slice
		want  int64
	}{
		"all-leads":     {SliceAllLeads, 5}, // 8 minus hidden minus two 911
		"tweets":        {SliceTweets, 2},
		"web":           {SliceWeb, 2},
		"uncategorized": {SliceUncategorized, 1},
		"hidden":        {SliceHidden, 1},
		"emergency":     {SliceEmergency, 2},
	}
	for name, tc := range counts {
		resp, err := svc.List(NewsFilter{}, tc.slice)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.Total, "slice %s", name)
	}

	// 911 slice sorts by incident date by default, newest first.
	resp, err := svc.List(NewsFilter{}, SliceEmergency)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Station 7", resp.Items[0].StationName)
}

func TestEmergencySliceHidesHiddenByDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 2, func(i int, r *models.NewsRecord) {
		r.DataType = models.DataTypeEmergency
		r.SourceCategory = models.SourceEmergency
		incident := time.Date(2024, 6, 10+i, 0, 0, 0, 0, time.UTC)
		r.Emergency = models.EmergencyDetails{
			StationName:  fmt.Sprintf("Station %d", i),
			IncidentDate: &incident,
		}
		if i == 1 {
			r.IsHidden = true
		}
	})

	resp, err := svc.List(NewsFilter{}, SliceEmergency)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "Station 0", resp.Items[0].StationName)

	// An explicit is_hidden filter still overrides the default.
	hidden := true
	resp, err = svc.List(NewsFilter{IsHidden: &hidden}, SliceEmergency)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "Station 1", resp.Items[0].StationName)
}

func TestSearchByTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 4, func(i int, r *models.NewsRecord) {
		if i == 0 {
			r.Title = "Canyon wildfire update"
			r.Content = "wildfire"
		} else {
			r.Content = "canyon evacuation details"
		}
	})

	resp, err := svc.SearchByTitle("canyon", 1, 10)
	require.NoError(t, err)
	// Content matches must not leak into the title-only search.
	assert.Equal(t, int64(1), resp.Total)
}

func TestReporters(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 4, func(i int, r *models.NewsRecord) {
		if i%2 == 0 {
			r.ReporterName = "Alice"
		} else {
			r.ReporterName = ""
		}
	})

	names, err := svc.Reporters()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, names)
}

func TestUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 1, nil)

	title := "Renamed report"
	resp, err := svc.Update(1, &dto.UpdateNewsRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed report", resp.Title)
	assert.Equal(t, "body", resp.Content, "unset fields stay untouched")

	// Changing the reporter re-derives the source category.
	bot := models.ReporterBotName
	resp, err = svc.Update(1, &dto.UpdateNewsRequest{ReporterName: &bot})
	require.NoError(t, err)
	assert.Equal(t, models.SourceTweet, resp.SourceCategory)

	_, err = svc.Update(999, &dto.UpdateNewsRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 1, nil)

	resp, err := svc.ToggleVerified(1)
	require.NoError(t, err)
	assert.True(t, resp.IsVerified)

	resp, err = svc.ToggleVerified(1)
	require.NoError(t, err)
	assert.False(t, resp.IsVerified, "double toggle restores the original")

	resp, err = svc.ToggleHidden(1)
	require.NoError(t, err)
	assert.True(t, resp.IsHidden)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)
	seedNews(t, db, 3, nil)

	require.NoError(t, svc.Delete(2))
	assert.ErrorIs(t, svc.Delete(2), ErrNewsNotFound)

	deleted, err := svc.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
