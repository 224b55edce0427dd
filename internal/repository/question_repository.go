package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListByTopicIDs(topicIDs []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("topic_id IN ?", topicIDs).Order("id asc").Find(&qs).Error
	return qs, err
}

// ListByCorrectAnswerID 找出把某个选项当作正确答案的所有题目
func (r *QuestionRepository) ListByCorrectAnswerID(optionID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("correct_answer_id = ?", optionID).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListAll() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
