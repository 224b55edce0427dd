package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type OptionRepository struct {
	DB *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{DB: db}
}

func (r *OptionRepository) Create(option *model.Option) error {
	return r.DB.Create(option).Error
}

func (r *OptionRepository) FindByID(id uint) (*model.Option, error) {
	var o model.Option
	err := r.DB.First(&o, id).Error
	return &o, err
}

func (r *OptionRepository) FindByIDs(ids []uint) ([]model.Option, error) {
	var os []model.Option
	err := r.DB.Where("id IN ?", ids).Find(&os).Error
	return os, err
}

func (r *OptionRepository) ListAll() ([]model.Option, error) {
	var os []model.Option
	err := r.DB.Order("id asc").Find(&os).Error
	return os, err
}

func (r *OptionRepository) Update(option *model.Option) error {
	return r.DB.Save(option).Error
}

func (r *OptionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Option{}, id).Error
}
