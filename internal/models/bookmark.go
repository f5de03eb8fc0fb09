package models

import (
	"time"
)

// Bookmark is a user's saved reference to a record; one per
// (user, news, data_type) triple.
type Bookmark struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_bookmarks_user_news_type,priority:1" json:"user_id"`
	NewsID    uint       `gorm:"not null;uniqueIndex:idx_bookmarks_user_news_type,priority:2" json:"news_id"`
	DataType  DataType   `gorm:"size:50;not null;uniqueIndex:idx_bookmarks_user_news_type,priority:3" json:"data_type"`
	CreatedAt time.Time  `json:"created_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	News      NewsRecord `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
