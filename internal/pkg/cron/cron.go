package cron

import (
	"log"
	"time"

	"github.com/qs3c/gym_go_server/internal/service"
)

type Service struct {
	membershipService *service.MembershipService
	stopChan          chan struct{}
}

func NewService(membershipService *service.MembershipService) *Service {
	return &Service{
		membershipService: membershipService,
		stopChan:          make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyExpiry()
	log.Println("Cron service started (membership expiry)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyExpiry 每日会籍过期核对任务
func (s *Service) runDailyExpiry() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.expireMemberships()
			timer.Reset(24 * time.Hour)
		}
	}
}

// expireMemberships 把已过结束日期的 active 会籍翻转为 expired
func (s *Service) expireMemberships() {
	log.Println("Starting membership expiry check...")
	count, err := s.membershipService.ExpireOverdue()
	if err != nil {
		log.Printf("Failed to expire memberships: %v", err)
		return
	}
	log.Printf("Membership expiry check completed, expired: %d", count)
}

// RunNow 立即执行一次过期核对（用于测试或手动触发）
func (s *Service) RunNow() (int64, error) {
	log.Println("Manual membership expiry triggered...")
	return s.membershipService.ExpireOverdue()
}
