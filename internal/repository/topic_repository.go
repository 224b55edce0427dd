package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var t model.Topic
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *TopicRepository) ListByModuleID(moduleID uint) ([]model.Topic, error) {
	var ts []model.Topic
	err := r.DB.Where("module_id = ?", moduleID).Order("id asc").Find(&ts).Error
	return ts, err
}

func (r *TopicRepository) ListAll() ([]model.Topic, error) {
	var ts []model.Topic
	err := r.DB.Order("id asc").Find(&ts).Error
	return ts, err
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *TopicRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Topic{}, id).Error
}
