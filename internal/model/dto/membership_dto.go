package dto

import (
	"github.com/qs3c/gym_go_server/internal/model"
)

// CreateMembershipRequest 创建会籍请求。
// 可指定 plan 套餐名：type/duration_days/fee 中未显式给出的字段从管理端价目表补齐，
// 显式给出的字段以请求为准。
type CreateMembershipRequest struct {
	MemberID     int64  `json:"member_id" binding:"required,min=1"`
	Plan         string `json:"plan,omitempty"`
	Type         string `json:"type" binding:"omitempty,max=50"`
	DurationDays int    `json:"duration_days" binding:"omitempty,min=1"`
	Fee          int64  `json:"fee" binding:"omitempty,min=0"`
	StartDate    string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateMembershipRequest 编辑会籍。只允许改状态和结束日期。
type UpdateMembershipRequest struct {
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=active expired cancelled"`
	EndDate *string `json:"end_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// MembershipStatusResponse 会员当前会籍状态
type MembershipStatusResponse struct {
	HasActiveMembership bool              `json:"has_active_membership"`
	ActiveMembership    *model.Membership `json:"active_membership"`
}

// PlanInfo 套餐信息
type PlanInfo struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days"`
	Fee          int64  `json:"fee"`
}
