package services

import (
	"testing"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreateUnique(t *testing.T) {
	svc := NewTagService(newTestDB(t))

	tag, err := svc.Create(&dto.TagCreateRequest{Name: "wildfire", Category: "incident"})
	require.NoError(t, err)
	assert.True(t, tag.IsActive)

	_, err = svc.Create(&dto.TagCreateRequest{Name: "wildfire"})
	assert.ErrorIs(t, err, ErrTagNameTaken)

	_, err = svc.Create(&dto.TagCreateRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrTagNameEmpty)
}

func TestTagSoftDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db)

	tag, err := svc.Create(&dto.TagCreateRequest{Name: "evacuation"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(tag.ID))

	// The row survives; it just leaves the active listing.
	var stored models.Tag
	require.NoError(t, db.First(&stored, tag.ID).Error)
	assert.False(t, stored.IsActive)

	resp, err := svc.List(TagFilter{})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)

	inactive := false
	resp, err = svc.List(TagFilter{IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestTagListFilters(t *testing.T) {
	svc := NewTagService(newTestDB(t))

	_, err := svc.Create(&dto.TagCreateRequest{Name: "wildfire", Category: "incident"})
	require.NoError(t, err)
	_, err = svc.Create(&dto.TagCreateRequest{Name: "road closure", Category: "logistics"})
	require.NoError(t, err)

	resp, err := svc.List(TagFilter{Category: "incident"})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "wildfire", resp.Tags[0].Name)

	resp, err = svc.List(TagFilter{Search: "CLOSURE"})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "road closure", resp.Tags[0].Name)
}

func TestTagSearchActiveOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db)

	active, err := svc.Create(&dto.TagCreateRequest{Name: "containment"})
	require.NoError(t, err)
	retired, err := svc.Create(&dto.TagCreateRequest{Name: "contained-old"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(retired.ID))

	results, err := svc.Search("contain", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, active.ID, results[0].ID)
}

func TestReplaceForNewsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db)
	seedNews(t, db, 1, nil)

	a, err := svc.Create(&dto.TagCreateRequest{Name: "a"})
	require.NoError(t, err)
	b, err := svc.Create(&dto.TagCreateRequest{Name: "b"})
	require.NoError(t, err)

	tags, err := svc.ReplaceForNews(1, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	// Replaying the identical assignment leaves the same set.
	tags, err = svc.ReplaceForNews(1, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	// Replacement is total: dropped ids disappear.
	tags, err = svc.ReplaceForNews(1, []uint{b.ID})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, b.ID, tags[0].ID)

	tags, err = svc.ReplaceForNews(1, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestReplaceForNewsValidatesIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db)
	seedNews(t, db, 1, nil)

	retired, err := svc.Create(&dto.TagCreateRequest{Name: "stale"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(retired.ID))

	_, err = svc.ReplaceForNews(1, []uint{retired.ID})
	assert.ErrorIs(t, err, ErrTagInactive)

	_, err = svc.ReplaceForNews(1, []uint{9999})
	assert.ErrorIs(t, err, ErrTagInactive)

	_, err = svc.ReplaceForNews(42, nil)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestRemoveForNews(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db)
	seedNews(t, db, 1, nil)

	tag, err := svc.Create(&dto.TagCreateRequest{Name: "arson"})
	require.NoError(t, err)
	_, err = svc.ReplaceForNews(1, []uint{tag.ID})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveForNews(1, tag.ID))
	assert.ErrorIs(t, svc.RemoveForNews(1, tag.ID), ErrTagNotFound)
}
