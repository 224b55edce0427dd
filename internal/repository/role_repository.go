package repository

import (
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) FindByID(id uint) (*model.Role, error) {
	var role model.Role
	err := r.DB.First(&role, id).Error
	return &role, err
}

func (r *RoleRepository) FindByName(name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.Where("name = ?", name).First(&role).Error
	return &role, err
}

func (r *RoleRepository) ListAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.Order("id asc").Find(&roles).Error
	return roles, err
}
