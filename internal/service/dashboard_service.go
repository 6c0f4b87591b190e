package service

import (
	"time"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/repository"
)

type DashboardService struct {
	memberRepo     *repository.MemberRepository
	membershipRepo *repository.MembershipRepository
	paymentRepo    *repository.PaymentRepository
	attendanceRepo *repository.AttendanceRepository
}

func NewDashboardService(
	memberRepo *repository.MemberRepository,
	membershipRepo *repository.MembershipRepository,
	paymentRepo *repository.PaymentRepository,
	attendanceRepo *repository.AttendanceRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Stats 汇总仪表盘数据。支付和当日入场全量拉取后在内存中折叠，数据量在可控范围。
func (s *DashboardService) Stats(now time.Time) (*dto.DashboardStats, error) {
	totalMembers, err := s.memberRepo.Count()
	if err != nil {
		return nil, err
	}

	activeMemberships, err := s.membershipRepo.CountByStatus(model.MembershipActive)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListAll()
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	attendances, err := s.attendanceRepo.ListBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	byStatus := CountPaymentsByStatus(payments)

	return &dto.DashboardStats{
		TotalMembers:      totalMembers,
		ActiveMemberships: activeMemberships,
		TotalRevenue:      TotalRevenue(payments),
		CompletedRevenue:  CompletedRevenue(payments),
		MonthRevenue:      TotalRevenue(FilterPaymentsInMonth(payments, now)),
		CompletedPayments: byStatus[model.PaymentCompleted],
		PendingPayments:   byStatus[model.PaymentPending],
		FailedPayments:    byStatus[model.PaymentFailed],
		TodayAttendance:   int64(len(attendances)),
	}, nil
}

// TotalRevenue 全部支付金额合计，不分状态。金额是整数缅币，
// 求和不丢精度，数十亿 Ks 量级也远在 int64 范围内。
func TotalRevenue(payments []model.Payment) int64 {
	var total int64
	for i := range payments {
		total += payments[i].Amount
	}
	return total
}

// CompletedRevenue 仅已完成支付的金额合计
func CompletedRevenue(payments []model.Payment) int64 {
	var total int64
	for i := range payments {
		if payments[i].Status == model.PaymentCompleted {
			total += payments[i].Amount
		}
	}
	return total
}

// CountPaymentsByStatus 按状态统计支付笔数
func CountPaymentsByStatus(payments []model.Payment) map[string]int64 {
	counts := make(map[string]int64)
	for i := range payments {
		counts[payments[i].Status]++
	}
	return counts
}

// FilterPaymentsInMonth 过滤出支付时间与 now 同年同月的记录
func FilterPaymentsInMonth(payments []model.Payment, now time.Time) []model.Payment {
	var filtered []model.Payment
	for i := range payments {
		y, m, _ := payments[i].PaidAt.Date()
		if y == now.Year() && m == now.Month() {
			filtered = append(filtered, payments[i])
		}
	}
	return filtered
}

// SameCalendarDay 判断两个时间是否落在同一个自然日
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
