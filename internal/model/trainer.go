package model

import (
	"time"
)

type Trainer struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Phone           string    `gorm:"size:20" json:"phone"`
	Specialization  string    `gorm:"size:100" json:"specialization,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Trainer) TableName() string {
	return "trainers"
}
