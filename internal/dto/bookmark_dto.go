package dto

import (
	"time"
)

type BookmarkCreateRequest struct {
	NewsID   uint   `json:"news_id"`
	DataType string `json:"data_type"`
}

type BookmarkResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	NewsID    uint      `json:"news_id"`
	DataType  string    `json:"data_type"`
	CreatedAt time.Time `json:"created_at"`
}

type BookmarkWithNewsResponse struct {
	BookmarkResponse
	News NewsResponse `json:"news"`
}

type BookmarkStatusResponse struct {
	IsBookmarked bool  `json:"is_bookmarked"`
	BookmarkID   *uint `json:"bookmark_id"`
}
