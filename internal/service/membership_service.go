package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrMembershipNotFound = errors.New("会籍不存在")
	ErrMemberNotFound     = errors.New("会员不存在")
	ErrInvalidDuration    = errors.New("会籍时长必须至少 1 天")
	ErrInvalidFee         = errors.New("会籍费用不能为负数")
	ErrUnknownPlan        = errors.New("未知的套餐")
)

type MembershipService struct {
	membershipRepo *repository.MembershipRepository
	memberRepo     *repository.MemberRepository
	cfg            *config.Config
}

func NewMembershipService(
	membershipRepo *repository.MembershipRepository,
	memberRepo *repository.MemberRepository,
	cfg *config.Config,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		cfg:            cfg,
	}
}

// Create 创建会籍。结束日期恒为开始日期加 duration_days 天（按天数推，不按自然月/年）。
// 请求可指定套餐名做默认值：type/duration_days/fee 未显式给出时从管理端价目表补齐，
// 显式给出的字段以请求为准。
func (s *MembershipService) Create(req *dto.CreateMembershipRequest) (*model.Membership, error) {
	if _, err := s.memberRepo.GetByID(req.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	typ := req.Type
	durationDays := req.DurationDays
	fee := req.Fee

	if req.Plan != "" {
		plan, ok := config.FindPlan(s.cfg.Plans.Admin, req.Plan)
		if !ok {
			return nil, ErrUnknownPlan
		}
		if typ == "" {
			typ = plan.Name
		}
		if durationDays == 0 {
			durationDays = plan.DurationDays
		}
		if fee == 0 {
			fee = plan.Fee
		}
	}

	if durationDays < 1 {
		return nil, ErrInvalidDuration
	}
	if fee < 0 {
		return nil, ErrInvalidFee
	}
	if typ == "" {
		typ = "Custom"
	}

	startDate := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, err
		}
		startDate = parsed
	}

	membership := &model.Membership{
		MemberID:     req.MemberID,
		Type:         typ,
		DurationDays: durationDays,
		Fee:          fee,
		StartDate:    startDate,
		EndDate:      startDate.AddDate(0, 0, durationDays),
		Status:       model.MembershipActive,
	}

	if err := s.membershipRepo.Create(membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// List 分页查询会籍
func (s *MembershipService) List(page, pageSize int, memberID int64, status string) ([]model.Membership, int64, error) {
	return s.membershipRepo.List(page, pageSize, memberID, status)
}

// GetByID 查询单个会籍
func (s *MembershipService) GetByID(id int64) (*model.Membership, error) {
	membership, err := s.membershipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return membership, nil
}

// Update 编辑会籍，只开放状态和结束日期
func (s *MembershipService) Update(id int64, req *dto.UpdateMembershipRequest) (*model.Membership, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		fields["end_date"] = endDate
	}

	if len(fields) > 0 {
		if err := s.membershipRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return s.membershipRepo.GetByID(id)
}

// Delete 删除会籍。引用它的支付记录保留悬空的 membership_id，收据按未关联处理。
func (s *MembershipService) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.membershipRepo.Delete(id)
}

// Status 解析会员当前会籍状态
func (s *MembershipService) Status(memberID int64) (*dto.MembershipStatusResponse, error) {
	memberships, err := s.membershipRepo.ListByMember(memberID)
	if err != nil {
		return nil, err
	}
	return ResolveStatus(memberships), nil
}

// ResolveStatus 在会籍集合中找出当前生效的一条。
// 约定同一时间至多一条 active，但不做强制；出现多条 active 时取
// start_date 最新的一条，再按 id 大者优先，保证结果确定。
func ResolveStatus(memberships []model.Membership) *dto.MembershipStatusResponse {
	var active *model.Membership
	for i := range memberships {
		m := &memberships[i]
		if m.Status != model.MembershipActive {
			continue
		}
		if active == nil ||
			m.StartDate.After(active.StartDate) ||
			(m.StartDate.Equal(active.StartDate) && m.ID > active.ID) {
			active = m
		}
	}

	return &dto.MembershipStatusResponse{
		HasActiveMembership: active != nil,
		ActiveMembership:    active,
	}
}

// ExpireOverdue 把已过结束日期的 active 会籍翻转为 expired
func (s *MembershipService) ExpireOverdue() (int64, error) {
	return s.membershipRepo.ExpireOverdue(time.Now())
}
