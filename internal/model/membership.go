package model

import (
	"time"
)

// 会籍状态
const (
	MembershipActive    = "active"
	MembershipExpired   = "expired"
	MembershipCancelled = "cancelled"
)

// Membership 一段会籍：创建时 EndDate = StartDate + DurationDays 天。
// 到期不会在读取时自动翻转状态，由定时对账任务统一处理。
type Membership struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	MemberID     int64     `gorm:"not null;index" json:"member_id"`
	Type         string    `gorm:"size:50;not null" json:"type"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Fee          int64     `gorm:"not null" json:"fee"` // 单位：缅币 Ks
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null;index" json:"end_date"`
	Status       string    `gorm:"size:20;default:active;index" json:"status"` // active, expired, cancelled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}
