package models

import (
	"time"
)

// NewsRecord is one incident/news item. The table serves two record kinds
// discriminated by DataType: scraped fire news and 911 emergency records.
// The 911-specific payload lives in the embedded EmergencyDetails and is
// populated only when DataType is emergency_911.
//
// Dedup keys are backed by composite unique indexes so that concurrent
// ingestions cannot slip duplicates past the existence check:
// (title, published_date) for fire news, (station_name, incident_date)
// for 911 records. Inserts go through ON CONFLICT DO NOTHING.
type NewsRecord struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Title              string         `gorm:"size:255;not null;uniqueIndex:idx_fire_news_title_published,priority:1" json:"title"`
	Content            string         `gorm:"type:text" json:"content,omitempty"`
	PublishedDate      *time.Time     `gorm:"uniqueIndex:idx_fire_news_title_published,priority:2" json:"published_date"`
	URL                string         `gorm:"size:500" json:"url,omitempty"`
	Source             string         `gorm:"size:255" json:"source,omitempty"`
	FireRelatedScore   float64        `json:"fire_related_score"`
	VerificationResult string         `gorm:"size:100" json:"verification_result,omitempty"`
	VerifiedAt         *time.Time     `json:"verified_at"`
	State              string         `gorm:"size:100" json:"state,omitempty"`
	County             string         `gorm:"size:100" json:"county,omitempty"`
	City               string         `gorm:"size:100" json:"city,omitempty"`
	Province           string         `gorm:"size:100" json:"province,omitempty"`
	Country            string         `gorm:"size:100" json:"country,omitempty"`
	Latitude           *float64       `json:"latitude"`
	Longitude          *float64       `json:"longitude"`
	ImageURL           string         `gorm:"size:500" json:"image_url,omitempty"`
	// Tags is the legacy comma-separated string; the NewsTag join table
	// supersedes it but the field is kept for older feeds that still send it.
	Tags           string           `gorm:"size:255" json:"tags,omitempty"`
	ReporterName   string           `gorm:"size:100;index" json:"reporter_name,omitempty"`
	DataType       DataType         `gorm:"size:50;not null;default:'fire_news';index" json:"data_type"`
	SourceCategory SourceCategory   `gorm:"size:20;not null;default:'uncategorized';index" json:"source_category"`
	IsVerified     bool             `gorm:"not null;default:false" json:"is_verified"`
	IsHidden       bool             `gorm:"not null;default:false" json:"is_hidden"`
	Emergency      EmergencyDetails `gorm:"embedded" json:"-"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (NewsRecord) TableName() string {
	return "fire_news"
}

// EmergencyDetails is the 911-specific payload of a NewsRecord.
type EmergencyDetails struct {
	IncidentDate         *time.Time `gorm:"column:incident_date;uniqueIndex:idx_fire_news_station_incident,priority:2" json:"incident_date"`
	StationName          string     `gorm:"column:station_name;size:255;uniqueIndex:idx_fire_news_station_incident,priority:1" json:"station_name,omitempty"`
	Address              string     `gorm:"column:address;size:500" json:"address,omitempty"`
	Context              string     `gorm:"column:context;type:text" json:"context,omitempty"`
	VerifiedAddress      string     `gorm:"column:verified_address;size:500" json:"verified_address,omitempty"`
	AddressAccuracyScore *float64   `gorm:"column:address_accuracy_score" json:"address_accuracy_score"`
	IncidentType         string     `gorm:"column:incident_type;size:100" json:"incident_type,omitempty"`
	PriorityLevel        string     `gorm:"column:priority_level;size:50" json:"priority_level,omitempty"`
	ResponseTime         *int       `gorm:"column:response_time" json:"response_time"`
	UnitsDispatched      string     `gorm:"column:units_dispatched;size:255" json:"units_dispatched,omitempty"`
	Status               string     `gorm:"column:status;size:50" json:"status,omitempty"`
	Notes                string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
}
