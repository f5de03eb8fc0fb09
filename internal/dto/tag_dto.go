package dto

import "github.com/firewatchhq/firewatch-backend/internal/models"

type TagCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Color       string `json:"color,omitempty"`
}

type TagUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type TagListResponse struct {
	Tags  []models.Tag `json:"tags"`
	Total int64        `json:"total"`
}

// TagSummary is the compact shape used by autocomplete and per-record tags.
type TagSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Color    string `json:"color,omitempty"`
}

type AssignTagsRequest struct {
	TagIDs []uint `json:"tag_ids"`
}

func NewTagSummary(t *models.Tag) TagSummary {
	return TagSummary{ID: t.ID, Name: t.Name, Category: t.Category, Color: t.Color}
}
