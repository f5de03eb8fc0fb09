package models

import (
	"time"
)

// ActivityLog is the append-only audit trail. Rows are never updated or
// deleted by normal flows; there is no retention policy.
type ActivityLog struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      *uint        `gorm:"index" json:"user_id"`
	ActionType  ActivityType `gorm:"size:50;not null;index" json:"action_type"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Details     string       `gorm:"type:text" json:"details,omitempty"`
	IPAddress   string       `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent   string       `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
