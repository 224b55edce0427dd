package service

import (
	"errors"

	"gorm.io/gorm"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	TopicRepo  *repository.TopicRepository
	LevelRepo  *repository.LevelRepository
	Cache      *AssessmentCache
}

func NewModuleService(moduleRepo *repository.ModuleRepository, topicRepo *repository.TopicRepository, levelRepo *repository.LevelRepository, cache *AssessmentCache) *ModuleService {
	return &ModuleService{ModuleRepo: moduleRepo, TopicRepo: topicRepo, LevelRepo: levelRepo, Cache: cache}
}

type ModuleReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LevelID     uint   `json:"levelId" binding:"required"`
	Order       int    `json:"order"`
}

type TopicReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ModuleID    uint   `json:"moduleId" binding:"required"`
}

func (s *ModuleService) Create(req ModuleReq) (*model.Module, error) {
	if _, err := s.LevelRepo.FindByID(req.LevelID); err != nil {
		return nil, err
	}
	module := &model.Module{
		Name:        req.Name,
		Description: req.Description,
		LevelID:     req.LevelID,
		Order:       req.Order,
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) GetByID(id uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) ListByLevel(levelID uint) ([]model.Module, error) {
	return s.ModuleRepo.ListByLevel(levelID)
}

func (s *ModuleService) ListAll() ([]model.Module, error) {
	return s.ModuleRepo.ListAll()
}

func (s *ModuleService) Update(id uint, req ModuleReq) (*model.Module, error) {
	module, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	module.Name = req.Name
	module.Description = req.Description
	module.LevelID = req.LevelID
	module.Order = req.Order
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

// Delete 删除模块及其主题。模块挂接的测试连同题目关联和作答记录一并清理
func (s *ModuleService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	err := s.ModuleRepo.DB.Transaction(func(tx *gorm.DB) error {
		var test model.Test
		findErr := tx.Where("module_id = ?", id).First(&test).Error
		switch {
		case findErr == nil:
			if err := tx.Where("test_id = ?", test.ID).Delete(&model.TestQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("test_id = ?", test.ID).Delete(&model.TestProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Test{}, test.ID).Error; err != nil {
				return err
			}
		case !errors.Is(findErr, gorm.ErrRecordNotFound):
			return findErr
		}
		if err := tx.Where("module_id = ?", id).Delete(&model.Topic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Module{}, id).Error
	})
	if err != nil {
		return err
	}
	s.Cache.InvalidateAll()
	return nil
}

func (s *ModuleService) CreateTopic(req TopicReq) (*model.Topic, error) {
	if _, err := s.GetByID(req.ModuleID); err != nil {
		return nil, err
	}
	topic := &model.Topic{
		Name:        req.Name,
		Description: req.Description,
		ModuleID:    req.ModuleID,
	}
	if err := s.TopicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *ModuleService) ListTopics(moduleID uint) ([]model.Topic, error) {
	if moduleID > 0 {
		return s.TopicRepo.ListByModuleID(moduleID)
	}
	return s.TopicRepo.ListAll()
}

func (s *ModuleService) UpdateTopic(id uint, req TopicReq) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	topic.Name = req.Name
	topic.Description = req.Description
	topic.ModuleID = req.ModuleID
	if err := s.TopicRepo.Update(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *ModuleService) DeleteTopic(id uint) error {
	return s.TopicRepo.Delete(id)
}
