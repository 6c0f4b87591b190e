package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/pkg/pubsub"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrNoActiveMembership = errors.New("没有有效会籍，无法入场")
	ErrAlreadyCheckedIn   = errors.New("已有未签退的入场记录")
	ErrAttendanceNotFound = errors.New("入场记录不存在")
	ErrAlreadyCheckedOut  = errors.New("该记录已签退")
)

type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	membershipRepo *repository.MembershipRepository
	memberRepo     *repository.MemberRepository
	publisher      *pubsub.Publisher
}

func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	membershipRepo *repository.MembershipRepository,
	memberRepo *repository.MemberRepository,
	publisher *pubsub.Publisher,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		publisher:      publisher,
	}
}

// CheckIn 入场签到。前提：有 active 会籍，且没有未签退的记录。
func (s *AttendanceService) CheckIn(memberID int64) (*model.Attendance, error) {
	if _, err := s.memberRepo.GetByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	memberships, err := s.membershipRepo.ListByMember(memberID)
	if err != nil {
		return nil, err
	}
	status := ResolveStatus(memberships)
	if !status.HasActiveMembership {
		return nil, ErrNoActiveMembership
	}

	if _, err := s.attendanceRepo.GetOpenSession(memberID); err == nil {
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attendance := &model.Attendance{
		MemberID: memberID,
		CheckIn:  time.Now(),
	}
	if err := s.attendanceRepo.Create(attendance); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEvent(context.Background(), &pubsub.EventMessage{
			Type:     pubsub.EventMemberCheckedIn,
			MemberID: memberID,
		}); err != nil {
			log.Printf("Failed to publish check-in event for member %d: %v", memberID, err)
		}
	}

	return attendance, nil
}

// CheckOut 签退
func (s *AttendanceService) CheckOut(attendanceID int64) (*model.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByID(attendanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	if attendance.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	now := time.Now()
	attendance.CheckOut = &now
	if err := s.attendanceRepo.Update(attendance); err != nil {
		return nil, err
	}

	return attendance, nil
}

// List 分页查询入场记录
func (s *AttendanceService) List(page, pageSize int, memberID int64) ([]model.Attendance, int64, error) {
	return s.attendanceRepo.List(page, pageSize, memberID)
}
