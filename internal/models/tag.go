package models

import (
	"time"
)

// Tag is soft-deleted via IsActive so historical associations survive.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"size:50;index" json:"category,omitempty"`
	Color       string    `gorm:"size:7" json:"color,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// NewsTag joins tags to news records. Rows cascade with either parent.
type NewsTag struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FireNewsID uint       `gorm:"not null;index" json:"fire_news_id"`
	TagID      uint       `gorm:"not null;index" json:"tag_id"`
	CreatedAt  time.Time  `json:"created_at"`
	News       NewsRecord `gorm:"foreignKey:FireNewsID;constraint:OnDelete:CASCADE" json:"-"`
	Tag        Tag        `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NewsTag) TableName() string {
	return "fire_news_tags"
}
