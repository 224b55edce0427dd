package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type TestQuestionRepository struct {
	DB *gorm.DB
}

func NewTestQuestionRepository(db *gorm.DB) *TestQuestionRepository {
	return &TestQuestionRepository{DB: db}
}

func (r *TestQuestionRepository) Create(link *model.TestQuestion) error {
	return r.DB.Create(link).Error
}

func (r *TestQuestionRepository) ListByTestID(testID uint) ([]model.TestQuestion, error) {
	var links []model.TestQuestion
	err := r.DB.Where("test_id = ?", testID).Order("id asc").Find(&links).Error
	return links, err
}

func (r *TestQuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.TestQuestion{}, id).Error
}
