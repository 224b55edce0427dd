package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var m model.Material
	err := r.DB.Preload("Category").First(&m, id).Error
	return &m, err
}

func (r *MaterialRepository) List(page, limit int, categoryID, moduleID uint) ([]model.Material, int64, error) {
	var ms []model.Material
	var total int64
	query := r.DB.Model(&model.Material{})
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if moduleID > 0 {
		query = query.Where("module_id = ?", moduleID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Category").Order("created_at desc").Offset(offset).Limit(limit).Find(&ms).Error
	return ms, total, err
}

func (r *MaterialRepository) Update(material *model.Material) error {
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Material{}, id).Error
}
