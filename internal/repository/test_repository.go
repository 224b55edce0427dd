package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var t model.Test
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *TestRepository) FindByModuleID(moduleID uint) (*model.Test, error) {
	var t model.Test
	err := r.DB.Where("module_id = ?", moduleID).First(&t).Error
	return &t, err
}

func (r *TestRepository) ListByModuleIDs(moduleIDs []uint) ([]model.Test, error) {
	var ts []model.Test
	err := r.DB.Where("module_id IN ?", moduleIDs).Find(&ts).Error
	return ts, err
}

func (r *TestRepository) ListAll() ([]model.Test, error) {
	var ts []model.Test
	err := r.DB.Order("id asc").Find(&ts).Error
	return ts, err
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Test{}, id).Error
}
