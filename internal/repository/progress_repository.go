package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.TestProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindByUserAndTest(userID, testID uint) (*model.TestProgress, error) {
	var p model.TestProgress
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.TestProgress, error) {
	var ps []model.TestProgress
	err := r.DB.Where("user_id = ?", userID).Order("test_id asc").Find(&ps).Error
	return ps, err
}

func (r *ProgressRepository) Update(progress *model.TestProgress) error {
	return r.DB.Save(progress).Error
}
