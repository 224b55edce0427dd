package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var m model.Module
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *ModuleRepository) FindByName(name string) (*model.Module, error) {
	var m model.Module
	err := r.DB.Where("name = ?", name).First(&m).Error
	return &m, err
}

// ListByLevel 按课程顺序返回某级别下的模块
func (r *ModuleRepository) ListByLevel(levelID uint) ([]model.Module, error) {
	var ms []model.Module
	err := r.DB.Where("level_id = ?", levelID).Order("`order` asc, id asc").Find(&ms).Error
	return ms, err
}

func (r *ModuleRepository) ListAll() ([]model.Module, error) {
	var ms []model.Module
	err := r.DB.Order("level_id asc, `order` asc, id asc").Find(&ms).Error
	return ms, err
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Module{}, id).Error
}
