package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(attendance *model.Attendance) error {
	return r.db.Create(attendance).Error
}

func (r *AttendanceRepository) GetByID(id int64) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.Where("id = ?", id).First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// GetOpenSession 查找会员未签退的入场记录
func (r *AttendanceRepository) GetOpenSession(memberID int64) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.Where("member_id = ? AND check_out IS NULL", memberID).
		Order("id DESC").First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *AttendanceRepository) Update(attendance *model.Attendance) error {
	return r.db.Save(attendance).Error
}

func (r *AttendanceRepository) List(page, pageSize int, memberID int64) ([]model.Attendance, int64, error) {
	var attendances []model.Attendance
	var total int64

	query := r.db.Model(&model.Attendance{})
	if memberID > 0 {
		query = query.Where("member_id = ?", memberID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&attendances).Error
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// ListBetween 返回指定时间段内的入场记录（仪表盘当日统计用）
func (r *AttendanceRepository) ListBetween(from, to time.Time) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.Where("check_in >= ? AND check_in < ?", from, to).
		Order("id ASC").Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}
