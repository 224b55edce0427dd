package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
	RoleRepo *repository.RoleRepository
}

func NewUserService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository) *UserService {
	return &UserService{UserRepo: userRepo, RoleRepo: roleRepo}
}

type UserUpdateReq struct {
	FIO      *string `json:"fio"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"roleId"`
	LevelID  *uint   `json:"levelId"`
	IsActive *bool   `json:"isActive"`
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(page, limit int, roleID uint) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit, roleID)
}

// Update 管理端更新用户资料，未提供的字段保持原值
func (s *UserService) Update(id uint, req UserUpdateReq) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.FIO != nil {
		user.FIO = *req.FIO
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.UserRepo.FindByEmail(*req.Email); err == nil {
			return nil, util.ErrEmailRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.RoleID != nil {
		if _, err := s.RoleRepo.FindByID(*req.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *req.RoleID
		user.Role = nil
	}
	if req.LevelID != nil {
		user.LevelID = req.LevelID
		user.Level = nil
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByID(user.ID)
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}

func (s *UserService) ListRoles() ([]model.Role, error) {
	return s.RoleRepo.ListAll()
}
