package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpreadsheetUpload records one uploaded file. The file itself is copied to
// local disk; FilePath points at the stored copy.
type SpreadsheetUpload struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"size:36;uniqueIndex" json:"external_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FilePath   string    `gorm:"size:512;not null" json:"file_path"`
	FromURL    string    `gorm:"size:512" json:"from_url,omitempty"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:255" json:"user_agent,omitempty"`
	Extra      string    `gorm:"type:text" json:"extra,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *SpreadsheetUpload) BeforeCreate(tx *gorm.DB) error {
	if u.ExternalID == "" {
		u.ExternalID = uuid.NewString()
	}
	return nil
}

func (SpreadsheetUpload) TableName() string {
	return "excel_uploads"
}
