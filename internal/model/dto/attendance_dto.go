package dto

// CheckInRequest 入场签到。member 角色只能为自己签到；admin 需指定 member_id。
type CheckInRequest struct {
	MemberID int64 `json:"member_id" binding:"omitempty,min=1"`
}
