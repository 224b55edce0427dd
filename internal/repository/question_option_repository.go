package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type QuestionOptionRepository struct {
	DB *gorm.DB
}

func NewQuestionOptionRepository(db *gorm.DB) *QuestionOptionRepository {
	return &QuestionOptionRepository{DB: db}
}

func (r *QuestionOptionRepository) Create(link *model.QuestionOption) error {
	return r.DB.Create(link).Error
}

func (r *QuestionOptionRepository) FindByID(id uint) (*model.QuestionOption, error) {
	var link model.QuestionOption
	err := r.DB.First(&link, id).Error
	return &link, err
}

func (r *QuestionOptionRepository) ListByQuestionID(questionID uint) ([]model.QuestionOption, error) {
	var links []model.QuestionOption
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&links).Error
	return links, err
}

func (r *QuestionOptionRepository) ListByOptionID(optionID uint) ([]model.QuestionOption, error) {
	var links []model.QuestionOption
	err := r.DB.Where("option_id = ?", optionID).Find(&links).Error
	return links, err
}

func (r *QuestionOptionRepository) ListByQuestionIDs(questionIDs []uint) ([]model.QuestionOption, error) {
	var links []model.QuestionOption
	err := r.DB.Where("question_id IN ?", questionIDs).Order("id asc").Find(&links).Error
	return links, err
}

func (r *QuestionOptionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.QuestionOption{}, id).Error
}
