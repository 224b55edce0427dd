package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type LevelRepository struct {
	DB *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{DB: db}
}

func (r *LevelRepository) Create(level *model.Level) error {
	return r.DB.Create(level).Error
}

func (r *LevelRepository) FindByID(id uint) (*model.Level, error) {
	var level model.Level
	err := r.DB.First(&level, id).Error
	return &level, err
}

func (r *LevelRepository) FindByName(name string) (*model.Level, error) {
	var level model.Level
	err := r.DB.Where("name = ?", name).First(&level).Error
	return &level, err
}

func (r *LevelRepository) ListAll() ([]model.Level, error) {
	var levels []model.Level
	err := r.DB.Order("id asc").Find(&levels).Error
	return levels, err
}

func (r *LevelRepository) Update(level *model.Level) error {
	return r.DB.Save(level).Error
}

func (r *LevelRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Level{}, id).Error
}
