package dto

import (
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/models"
)

// NewsItemRequest is one incoming record on the JSON ingestion endpoints.
// Date fields are raw strings; ingestion runs them through dateparse.
type NewsItemRequest struct {
	Title              string   `json:"title"`
	Content            string   `json:"content"`
	PublishedDate      string   `json:"published_date,omitempty"`
	URL                string   `json:"url,omitempty"`
	Source             string   `json:"source,omitempty"`
	FireRelatedScore   *float64 `json:"fire_related_score,omitempty"`
	VerificationResult string   `json:"verification_result,omitempty"`
	VerifiedAt         string   `json:"verified_at,omitempty"`
	State              string   `json:"state,omitempty"`
	County             string   `json:"county,omitempty"`
	City               string   `json:"city,omitempty"`
	Province           string   `json:"province,omitempty"`
	Country            string   `json:"country,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	Tags               string   `json:"tags,omitempty"`
	ReporterName       string   `json:"reporter_name,omitempty"`
	DataType           string   `json:"data_type,omitempty"`

	// Emergency-only fields, honored when data_type is emergency_911.
	IncidentDate         string   `json:"incident_date,omitempty"`
	StationName          string   `json:"station_name,omitempty"`
	Address              string   `json:"address,omitempty"`
	Context              string   `json:"context,omitempty"`
	VerifiedAddress      string   `json:"verified_address,omitempty"`
	AddressAccuracyScore *float64 `json:"address_accuracy_score,omitempty"`
	IncidentType         string   `json:"incident_type,omitempty"`
	PriorityLevel        string   `json:"priority_level,omitempty"`
	ResponseTime         *int     `json:"response_time,omitempty"`
	UnitsDispatched      string   `json:"units_dispatched,omitempty"`
	Status               string   `json:"status,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

type BulkUploadRequest struct {
	Items []NewsItemRequest `json:"items"`
}

// IngestResult reports batch outcome; Inserted+Skipped == TotalProcessed.
type IngestResult struct {
	Message        string `json:"message"`
	Inserted       int    `json:"inserted"`
	Skipped        int    `json:"skipped"`
	TotalProcessed int    `json:"total_processed"`
}

// NewsResponse is the flat wire shape of a record, both kinds.
type NewsResponse struct {
	ID                 uint                  `json:"id"`
	Title              string                `json:"title"`
	Content            string                `json:"content,omitempty"`
	PublishedDate      *time.Time            `json:"published_date"`
	URL                string                `json:"url,omitempty"`
	Source             string                `json:"source,omitempty"`
	FireRelatedScore   float64               `json:"fire_related_score"`
	VerificationResult string                `json:"verification_result,omitempty"`
	VerifiedAt         *time.Time            `json:"verified_at"`
	State              string                `json:"state,omitempty"`
	County             string                `json:"county,omitempty"`
	City               string                `json:"city,omitempty"`
	Province           string                `json:"province,omitempty"`
	Country            string                `json:"country,omitempty"`
	Latitude           *float64              `json:"latitude"`
	Longitude          *float64              `json:"longitude"`
	ImageURL           string                `json:"image_url,omitempty"`
	Tags               string                `json:"tags,omitempty"`
	ReporterName       string                `json:"reporter_name,omitempty"`
	DataType           models.DataType       `json:"data_type"`
	SourceCategory     models.SourceCategory `json:"source_category"`
	IsVerified         bool                  `json:"is_verified"`
	IsHidden           bool                  `json:"is_hidden"`

	IncidentDate         *time.Time `json:"incident_date,omitempty"`
	StationName          string     `json:"station_name,omitempty"`
	Address              string     `json:"address,omitempty"`
	Context              string     `json:"context,omitempty"`
	VerifiedAddress      string     `json:"verified_address,omitempty"`
	AddressAccuracyScore *float64   `json:"address_accuracy_score,omitempty"`
	IncidentType         string     `json:"incident_type,omitempty"`
	PriorityLevel        string     `json:"priority_level,omitempty"`
	ResponseTime         *int       `json:"response_time,omitempty"`
	UnitsDispatched      string     `json:"units_dispatched,omitempty"`
	Status               string     `json:"status,omitempty"`
	Notes                string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewsListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []NewsResponse `json:"items"`
}

// UpdateNewsRequest carries partial updates; nil fields are left untouched.
type UpdateNewsRequest struct {
	Title              *string  `json:"title,omitempty"`
	Content            *string  `json:"content,omitempty"`
	PublishedDate      *string  `json:"published_date,omitempty"`
	URL                *string  `json:"url,omitempty"`
	Source             *string  `json:"source,omitempty"`
	FireRelatedScore   *float64 `json:"fire_related_score,omitempty"`
	VerificationResult *string  `json:"verification_result,omitempty"`
	State              *string  `json:"state,omitempty"`
	County             *string  `json:"county,omitempty"`
	City               *string  `json:"city,omitempty"`
	Province           *string  `json:"province,omitempty"`
	Country            *string  `json:"country,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	ImageURL           *string  `json:"image_url,omitempty"`
	Tags               *string  `json:"tags,omitempty"`
	ReporterName       *string  `json:"reporter_name,omitempty"`
	IncidentType       *string  `json:"incident_type,omitempty"`
	PriorityLevel      *string  `json:"priority_level,omitempty"`
	Status             *string  `json:"status,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

type ReportersResponse struct {
	Reporters []string `json:"reporters"`
}

func NewNewsResponse(n *models.NewsRecord) NewsResponse {
	return NewsResponse{
		ID:                 n.ID,
		Title:              n.Title,
		Content:            n.Content,
		PublishedDate:      n.PublishedDate,
		URL:                n.URL,
		Source:             n.Source,
		FireRelatedScore:   n.FireRelatedScore,
		VerificationResult: n.VerificationResult,
		VerifiedAt:         n.VerifiedAt,
		State:              n.State,
		County:             n.County,
		City:               n.City,
		Province:           n.Province,
		Country:            n.Country,
		Latitude:           n.Latitude,
		Longitude:          n.Longitude,
		ImageURL:           n.ImageURL,
		Tags:               n.Tags,
		ReporterName:       n.ReporterName,
		DataType:           n.DataType,
		SourceCategory:     n.SourceCategory,
		IsVerified:         n.IsVerified,
		IsHidden:           n.IsHidden,

		IncidentDate:         n.Emergency.IncidentDate,
		StationName:          n.Emergency.StationName,
		Address:              n.Emergency.Address,
		Context:              n.Emergency.Context,
		VerifiedAddress:      n.Emergency.VerifiedAddress,
		AddressAccuracyScore: n.Emergency.AddressAccuracyScore,
		IncidentType:         n.Emergency.IncidentType,
		PriorityLevel:        n.Emergency.PriorityLevel,
		ResponseTime:         n.Emergency.ResponseTime,
		UnitsDispatched:      n.Emergency.UnitsDispatched,
		Status:               n.Emergency.Status,
		Notes:                n.Emergency.Notes,

		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
