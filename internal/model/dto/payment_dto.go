package dto

// CreatePaymentRequest 记录一笔支付。
// member 角色只能为自己缴费，member_id 以登录身份为准；admin 必须显式指定 member_id。
// 可指定 plan 套餐名：amount 为零时从会员端价目表补齐，显式金额以请求为准。
type CreatePaymentRequest struct {
	MemberID     int64  `json:"member_id" binding:"omitempty,min=1"`
	MembershipID *int64 `json:"membership_id,omitempty" binding:"omitempty,min=1"`
	Plan         string `json:"plan,omitempty"`
	Amount       int64  `json:"amount"`
	Method       string `json:"method" binding:"required"`
}

// ReceiptResponse 收据（按需生成，不落库）
type ReceiptResponse struct {
	ReceiptNumber  string `json:"receipt_number"`
	MemberName     string `json:"member_name"`
	Date           string `json:"date"`
	Amount         int64  `json:"amount"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	MembershipType string `json:"membership_type"` // 未关联会籍时为 N/A
}
