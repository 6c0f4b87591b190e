package dto

// DashboardStats 管理端仪表盘汇总
type DashboardStats struct {
	TotalMembers      int64 `json:"total_members"`
	ActiveMemberships int64 `json:"active_memberships"`
	TotalRevenue      int64 `json:"total_revenue"`     // 全部支付金额合计，单位 Ks
	CompletedRevenue  int64 `json:"completed_revenue"` // 仅已完成支付的合计
	MonthRevenue      int64 `json:"month_revenue"`     // 本月（自然月）支付合计
	CompletedPayments int64 `json:"completed_payments"`
	PendingPayments   int64 `json:"pending_payments"`
	FailedPayments    int64 `json:"failed_payments"`
	TodayAttendance   int64 `json:"today_attendance"`
}
