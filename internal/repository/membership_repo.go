package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(membership *model.Membership) error {
	return r.db.Create(membership).Error
}

func (r *MembershipRepository) GetByID(id int64) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.Where("id = ?", id).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListByMember 按创建先后返回一个会员的全部会籍
func (r *MembershipRepository) ListByMember(memberID int64) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.Where("member_id = ?", memberID).Order("id ASC").Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *MembershipRepository) List(page, pageSize int, memberID int64, status string) ([]model.Membership, int64, error) {
	var memberships []model.Membership
	var total int64

	query := r.db.Model(&model.Membership{})
	if memberID > 0 {
		query = query.Where("member_id = ?", memberID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&memberships).Error
	if err != nil {
		return nil, 0, err
	}

	return memberships, total, nil
}

func (r *MembershipRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Membership{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MembershipRepository) Delete(id int64) error {
	return r.db.Delete(&model.Membership{}, id).Error
}

func (r *MembershipRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Membership{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// ExpireOverdue 把所有已过结束日期的 active 会籍翻转为 expired，返回影响行数
func (r *MembershipRepository) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&model.Membership{}).
		Where("status = ? AND end_date < ?", model.MembershipActive, now).
		Update("status", model.MembershipExpired)
	return result.RowsAffected, result.Error
}
