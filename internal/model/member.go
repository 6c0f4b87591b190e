package model

import (
	"time"
)

type Member struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Phone       string     `gorm:"size:20" json:"phone"`
	Gender      string     `gorm:"size:10" json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`
	PhotoURL    string     `gorm:"size:500" json:"photo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}
