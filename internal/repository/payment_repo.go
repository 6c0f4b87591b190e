package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) List(page, pageSize int, status string) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	query := r.db.Model(&model.Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *PaymentRepository) ListByMember(memberID int64) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("member_id = ?", memberID).Order("id DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListAll 仪表盘聚合用，全量拉取后在内存中折叠
func (r *PaymentRepository) ListAll() ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Order("id ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
