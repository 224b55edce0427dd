package service

import (
	"errors"

	"gorm.io/gorm"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type TestService struct {
	TestRepo         *repository.TestRepository
	TestQuestionRepo *repository.TestQuestionRepository
	QuestionRepo     *repository.QuestionRepository
	ModuleRepo       *repository.ModuleRepository
	Cache            *AssessmentCache
}

func NewTestService(
	testRepo *repository.TestRepository,
	testQuestionRepo *repository.TestQuestionRepository,
	questionRepo *repository.QuestionRepository,
	moduleRepo *repository.ModuleRepository,
	cache *AssessmentCache,
) *TestService {
	return &TestService{
		TestRepo:         testRepo,
		TestQuestionRepo: testQuestionRepo,
		QuestionRepo:     questionRepo,
		ModuleRepo:       moduleRepo,
		Cache:            cache,
	}
}

type TestReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ModuleID    uint   `json:"moduleId" binding:"required"`
}

// TestQuestionEntry 测试下的一条题目关联，link_id 用于解绑
type TestQuestionEntry struct {
	LinkID   uint           `json:"link_id"`
	Question model.Question `json:"question"`
}

func (s *TestService) Create(req TestReq) (*model.Test, error) {
	if _, err := s.ModuleRepo.FindByID(req.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	test := &model.Test{
		Name:        req.Name,
		Description: req.Description,
		ModuleID:    req.ModuleID,
	}
	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *TestService) GetByID(id uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *TestService) ListAll() ([]model.Test, error) {
	return s.TestRepo.ListAll()
}

func (s *TestService) Update(id uint, req TestReq) (*model.Test, error) {
	test, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ModuleRepo.FindByID(req.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	test.Name = req.Name
	test.Description = req.Description
	test.ModuleID = req.ModuleID
	if err := s.TestRepo.Update(test); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(test.ID)
	return test, nil
}

// Delete 删除测试并清理其全部题目关联，同一事务完成
func (s *TestService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	err := s.TestRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, id).Error
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(id)
	return nil
}

// ListQuestions 返回测试下的题目及其关联 id
func (s *TestService) ListQuestions(testID uint) ([]TestQuestionEntry, error) {
	if _, err := s.GetByID(testID); err != nil {
		return nil, err
	}
	links, err := s.TestQuestionRepo.ListByTestID(testID)
	if err != nil {
		return nil, err
	}
	entries := make([]TestQuestionEntry, 0, len(links))
	if len(links) == 0 {
		return entries, nil
	}

	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	for _, link := range links {
		q, ok := questionMap[link.QuestionID]
		if !ok {
			continue
		}
		entries = append(entries, TestQuestionEntry{LinkID: link.ID, Question: q})
	}
	return entries, nil
}

// LinkQuestion 把已有题目挂接到测试
func (s *TestService) LinkQuestion(testID, questionID uint) (*model.TestQuestion, error) {
	if _, err := s.GetByID(testID); err != nil {
		return nil, err
	}
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		return nil, err
	}
	link := &model.TestQuestion{TestID: testID, QuestionID: questionID}
	if err := s.TestQuestionRepo.Create(link); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(testID)
	return link, nil
}

func (s *TestService) UnlinkQuestion(linkID uint) error {
	if err := s.TestQuestionRepo.Delete(linkID); err != nil {
		return err
	}
	s.Cache.InvalidateAll()
	return nil
}
