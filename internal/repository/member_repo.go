package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(member *model.Member) error {
	return r.db.Create(member).Error
}

// CreateWithUser 在同一事务中创建账号和会员档案
func (r *MemberRepository) CreateWithUser(user *model.User, member *model.Member) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		member.UserID = user.ID
		return tx.Create(member).Error
	})
}

func (r *MemberRepository) GetByID(id int64) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) GetByUserID(userID int64) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) Update(member *model.Member) error {
	return r.db.Save(member).Error
}

func (r *MemberRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Member{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MemberRepository) List(page, pageSize int, search string) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	query := r.db.Model(&model.Member{})
	if search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *MemberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).Count(&count).Error
	return count, err
}
