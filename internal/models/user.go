package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username  *string   `gorm:"size:255;uniqueIndex" json:"username,omitempty"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FirstName string    `gorm:"size:255" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:255" json:"last_name,omitempty"`
	Phone     string    `gorm:"size:255" json:"phone,omitempty"`
	City      string    `gorm:"size:255" json:"city,omitempty"`
	State     string    `gorm:"size:255" json:"state,omitempty"`
	Country   string    `gorm:"size:255" json:"country,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Role      Role      `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
