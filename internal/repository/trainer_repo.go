package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type TrainerRepository struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

// CreateWithUser 在同一事务中创建账号和教练档案
func (r *TrainerRepository) CreateWithUser(user *model.User, trainer *model.Trainer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		trainer.UserID = user.ID
		return tx.Create(trainer).Error
	})
}

func (r *TrainerRepository) GetByID(id int64) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.db.Where("id = ?", id).First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *TrainerRepository) GetByUserID(userID int64) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.db.Where("user_id = ?", userID).First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *TrainerRepository) List(page, pageSize int) ([]model.Trainer, int64, error) {
	var trainers []model.Trainer
	var total int64

	if err := r.db.Model(&model.Trainer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trainers).Error
	if err != nil {
		return nil, 0, err
	}

	return trainers, total, nil
}
