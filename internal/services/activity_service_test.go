package services

import (
	"testing"

	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)

	require.NoError(t, svc.LogLogin(alice, "10.0.0.1", "ua"))
	require.NoError(t, svc.LogLogin(bob, "10.0.0.2", "ua"))
	require.NoError(t, svc.LogLogout(alice, "10.0.0.1", "ua"))

	logs, err := svc.List(1, 50, "", nil)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	assert.NotEmpty(t, logs[0].UserEmail, "actor email is joined in")

	logs, err = svc.List(1, 50, string(models.ActivityUserLogin), nil)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = svc.List(1, 50, "", &alice.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = svc.ListForUser(bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActivityUserLogin, logs[0].ActionType)
}

func TestActivityStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)
	user := seedUser(t, db, "u@example.com", models.RoleUser)

	require.NoError(t, svc.LogLogin(user, "10.0.0.1", "ua"))
	require.NoError(t, svc.LogIngestion("bulk-upload", IngestOutcome{Inserted: 3, Skipped: 1, TotalProcessed: 4}, &user.ID, "10.0.0.1", "ua"))

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalActivities)
	assert.Equal(t, int64(1), stats.ActivitiesByType[string(models.ActivityUserLogin)])
	assert.Equal(t, int64(1), stats.ActivitiesByType[string(models.ActivityNewsUploaded)])
	assert.Equal(t, int64(2), stats.RecentActivities24)
	require.NotEmpty(t, stats.TopActiveUsers)
	assert.Equal(t, int64(2), stats.TopActiveUsers[0].Count)
}
