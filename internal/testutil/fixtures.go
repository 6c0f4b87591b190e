package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

// TestUser 创建测试账号
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", time.Now().UnixNano()%1000000),
		Email:        fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleMember,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// TestMember 创建测试会员（自动带账号）
func TestMember(t *testing.T, db *gorm.DB, opts ...func(*model.Member)) *model.Member {
	t.Helper()

	user := TestUser(t, db)

	member := &model.Member{
		UserID: user.ID,
		Name:   fmt.Sprintf("Test Member %d", time.Now().UnixNano()%10000),
		Phone:  "09123456789",
	}

	for _, opt := range opts {
		opt(member)
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return member
}

// WithMemberName 设置会员姓名
func WithMemberName(name string) func(*model.Member) {
	return func(m *model.Member) {
		m.Name = name
	}
}

// WithMemberUser 关联已有账号
func WithMemberUser(userID int64) func(*model.Member) {
	return func(m *model.Member) {
		m.UserID = userID
	}
}

// TestMembership 创建测试会籍
func TestMembership(t *testing.T, db *gorm.DB, memberID int64, opts ...func(*model.Membership)) *model.Membership {
	t.Helper()

	start := time.Now().Truncate(24 * time.Hour)
	membership := &model.Membership{
		MemberID:     memberID,
		Type:         "Monthly",
		DurationDays: 30,
		Fee:          50000,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 30),
		Status:       model.MembershipActive,
	}

	for _, opt := range opts {
		opt(membership)
	}

	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("Failed to create test membership: %v", err)
	}

	return membership
}

// WithMembershipStatus 设置会籍状态
func WithMembershipStatus(status string) func(*model.Membership) {
	return func(m *model.Membership) {
		m.Status = status
	}
}

// WithMembershipType 设置会籍类型
func WithMembershipType(typ string) func(*model.Membership) {
	return func(m *model.Membership) {
		m.Type = typ
	}
}

// WithDates 设置起止日期
func WithDates(start, end time.Time) func(*model.Membership) {
	return func(m *model.Membership) {
		m.StartDate = start
		m.EndDate = end
	}
}

// WithFee 设置费用
func WithFee(fee int64) func(*model.Membership) {
	return func(m *model.Membership) {
		m.Fee = fee
	}
}

// TestPayment 创建测试支付
func TestPayment(t *testing.T, db *gorm.DB, memberID int64, opts ...func(*model.Payment)) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		MemberID: memberID,
		Amount:   50000,
		Method:   model.MethodCash,
		Status:   model.PaymentCompleted,
		PaidAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(payment)
	}

	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return payment
}

// WithAmount 设置金额
func WithAmount(amount int64) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Amount = amount
	}
}

// WithMethod 设置支付方式
func WithMethod(method string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Method = method
	}
}

// WithPaymentStatus 设置支付状态
func WithPaymentStatus(status string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Status = status
	}
}

// WithMembershipID 关联会籍
func WithMembershipID(membershipID int64) func(*model.Payment) {
	return func(p *model.Payment) {
		p.MembershipID = &membershipID
	}
}

// WithPaidAt 设置支付时间
func WithPaidAt(paidAt time.Time) func(*model.Payment) {
	return func(p *model.Payment) {
		p.PaidAt = paidAt
	}
}

// TestAttendance 创建测试入场记录
func TestAttendance(t *testing.T, db *gorm.DB, memberID int64, opts ...func(*model.Attendance)) *model.Attendance {
	t.Helper()

	attendance := &model.Attendance{
		MemberID: memberID,
		CheckIn:  time.Now(),
	}

	for _, opt := range opts {
		opt(attendance)
	}

	if err := db.Create(attendance).Error; err != nil {
		t.Fatalf("Failed to create test attendance: %v", err)
	}

	return attendance
}

// WithCheckIn 设置入场时间
func WithCheckIn(checkIn time.Time) func(*model.Attendance) {
	return func(a *model.Attendance) {
		a.CheckIn = checkIn
	}
}

// WithCheckOut 设置签退时间
func WithCheckOut(checkOut time.Time) func(*model.Attendance) {
	return func(a *model.Attendance) {
		a.CheckOut = &checkOut
	}
}
