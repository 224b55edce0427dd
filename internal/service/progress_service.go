package service

import (
	"errors"

	"gorm.io/gorm"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type ProgressService struct {
	UserRepo     *repository.UserRepository
	ModuleRepo   *repository.ModuleRepository
	TestRepo     *repository.TestRepository
	ProgressRepo *repository.ProgressRepository
	Config       *config.Config
}

func NewProgressService(
	userRepo *repository.UserRepository,
	moduleRepo *repository.ModuleRepository,
	testRepo *repository.TestRepository,
	progressRepo *repository.ProgressRepository,
	cfg *config.Config,
) *ProgressService {
	return &ProgressService{
		UserRepo:     userRepo,
		ModuleRepo:   moduleRepo,
		TestRepo:     testRepo,
		ProgressRepo: progressRepo,
		Config:       cfg,
	}
}

// GetProgress 学员当前等级的整体进度与每份测试的作答记录
func (s *ProgressService) GetProgress(userID uint) (*model.ProgressRecord, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if !user.EntranceTestCompleted || user.LevelID == nil {
		return nil, util.ErrEntranceNotCompleted
	}

	all, err := s.ModuleRepo.ListByLevel(*user.LevelID)
	if err != nil {
		return nil, err
	}
	// 入学模块不计入课程进度
	modules := make([]model.Module, 0, len(all))
	for _, m := range all {
		if s.Config.Assessment.IsEntranceModule(m.Name) {
			continue
		}
		modules = append(modules, m)
	}

	progressList, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if progressList == nil {
		progressList = []model.TestProgress{}
	}
	progressByTest := make(map[uint]model.TestProgress, len(progressList))
	for _, p := range progressList {
		progressByTest[p.TestID] = p
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}
	tests := []model.Test{}
	if len(moduleIDs) > 0 {
		tests, err = s.TestRepo.ListByModuleIDs(moduleIDs)
		if err != nil {
			return nil, err
		}
	}
	testByModule := make(map[uint]model.Test, len(tests))
	for _, t := range tests {
		testByModule[t.ModuleID] = t
	}

	completed := 0
	for _, m := range modules {
		test, hasTest := testByModule[m.ID]
		if !hasTest {
			completed++
			continue
		}
		if p, ok := progressByTest[test.ID]; ok && p.IsPassed {
			completed++
		}
	}

	total := len(modules)
	record := &model.ProgressRecord{
		CourseProgress: model.CourseProgress{
			ModulesCompleted: completed,
			TotalModules:     total,
		},
		TestsProgress: progressList,
	}
	if total > 0 {
		record.CourseProgress.CompletionPercentage = float64(completed) / float64(total) * 100
		record.CourseProgress.IsCourseComplete = completed == total
	}
	return record, nil
}
