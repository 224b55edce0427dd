package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

type LevelService struct {
	LevelRepo  *repository.LevelRepository
	ModuleRepo *repository.ModuleRepository
}

func NewLevelService(levelRepo *repository.LevelRepository, moduleRepo *repository.ModuleRepository) *LevelService {
	return &LevelService{LevelRepo: levelRepo, ModuleRepo: moduleRepo}
}

func (s *LevelService) Create(name string) (*model.Level, error) {
	level := &model.Level{Name: name}
	if err := s.LevelRepo.Create(level); err != nil {
		return nil, err
	}
	return level, nil
}

func (s *LevelService) ListAll() ([]model.Level, error) {
	return s.LevelRepo.ListAll()
}

func (s *LevelService) GetByID(id uint) (*model.Level, error) {
	return s.LevelRepo.FindByID(id)
}

func (s *LevelService) Update(id uint, name string) (*model.Level, error) {
	level, err := s.LevelRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	level.Name = name
	if err := s.LevelRepo.Update(level); err != nil {
		return nil, err
	}
	return level, nil
}

func (s *LevelService) Delete(id uint) error {
	return s.LevelRepo.Delete(id)
}
