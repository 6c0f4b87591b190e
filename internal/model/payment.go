package model

import (
	"time"
)

// 支付状态
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

// 支付方式
const (
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodBankTransfer = "bank_transfer"
	MethodKBZPay       = "kbz_pay"
	MethodWaveMoney    = "wave_money"
	MethodCash         = "cash"
)

// PaymentMethods 允许的支付方式集合
var PaymentMethods = map[string]struct{}{
	MethodCreditCard:   {},
	MethodDebitCard:    {},
	MethodBankTransfer: {},
	MethodKBZPay:       {},
	MethodWaveMoney:    {},
	MethodCash:         {},
}

// Payment 一笔支付，创建后不可修改。MembershipID 可为空，
// 关联的会籍被删除后仅留下悬空引用，收据按未关联处理。
type Payment struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	MemberID     int64     `gorm:"not null;index" json:"member_id"`
	MembershipID *int64    `gorm:"index" json:"membership_id,omitempty"`
	Amount       int64     `gorm:"not null" json:"amount"` // 单位：缅币 Ks
	Method       string    `gorm:"size:20;not null" json:"method"`
	Status       string    `gorm:"size:20;default:completed;index" json:"status"` // completed, pending, failed
	PaidAt       time.Time `gorm:"not null;index" json:"paid_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
