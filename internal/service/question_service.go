package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type QuestionService struct {
	QuestionRepo       *repository.QuestionRepository
	OptionRepo         *repository.OptionRepository
	QuestionOptionRepo *repository.QuestionOptionRepository
	TestQuestionRepo   *repository.TestQuestionRepository
	TestRepo           *repository.TestRepository
	ModuleRepo         *repository.ModuleRepository
	TopicRepo          *repository.TopicRepository
	Config             *config.Config
	Logger             *zap.Logger
	Cache              *AssessmentCache
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	optionRepo *repository.OptionRepository,
	questionOptionRepo *repository.QuestionOptionRepository,
	testQuestionRepo *repository.TestQuestionRepository,
	testRepo *repository.TestRepository,
	moduleRepo *repository.ModuleRepository,
	topicRepo *repository.TopicRepository,
	cfg *config.Config,
	logger *zap.Logger,
	cache *AssessmentCache,
) *QuestionService {
	return &QuestionService{
		QuestionRepo:       questionRepo,
		OptionRepo:         optionRepo,
		QuestionOptionRepo: questionOptionRepo,
		TestQuestionRepo:   testQuestionRepo,
		TestRepo:           testRepo,
		ModuleRepo:         moduleRepo,
		TopicRepo:          topicRepo,
		Config:             cfg,
		Logger:             logger,
		Cache:              cache,
	}
}

type OptionInput struct {
	Value     string `json:"value" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateQuestionReq struct {
	Text    string        `json:"text" binding:"required"`
	TopicID uint          `json:"topic_id" binding:"required"`
	TestID  uint          `json:"test_id" binding:"required"`
	Options []OptionInput `json:"options" binding:"required"`
}

type UpdateQuestionReq struct {
	Text            *string `json:"text"`
	TopicID         *uint   `json:"topic_id"`
	CorrectAnswerID *uint   `json:"correct_answer_id"`
}

// QuestionDetail 题目及其选项集合，正确答案仅对管理端返回
type QuestionDetail struct {
	Question model.Question `json:"question"`
	Options  []model.Option `json:"options"`
}

func (s *QuestionService) validateOptions(options []OptionInput) error {
	if len(options) < 1 || len(options) > model.MaxOptionsPerQuestion {
		return util.ErrOptionCount
	}
	correct := 0
	for _, o := range options {
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return util.ErrOneCorrectOption
	}
	return nil
}

// validateTopicForTest 题目主题必须属于测试所在模块，入学模块不受限制
func (s *QuestionService) validateTopicForTest(topicID uint, test *model.Test) error {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTopicRequired
		}
		return err
	}

	module, err := s.ModuleRepo.FindByID(test.ModuleID)
	if err != nil {
		return err
	}
	if s.Config.Assessment.IsEntranceModule(module.Name) {
		return nil
	}
	if topic.ModuleID != module.ID {
		return util.ErrTopicOutsideModule
	}
	return nil
}

// Create 一次事务完成选项创建、题目创建、选项挂接与测试挂接
func (s *QuestionService) Create(req CreateQuestionReq) (*QuestionDetail, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, util.ErrQuestionTextRequired
	}
	if err := s.validateOptions(req.Options); err != nil {
		return nil, err
	}

	test, err := s.TestRepo.FindByID(req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	if err := s.validateTopicForTest(req.TopicID, test); err != nil {
		return nil, err
	}

	var question model.Question
	var created []model.Option

	err = s.QuestionRepo.DB.Transaction(func(tx *gorm.DB) error {
		var correctID uint
		created = make([]model.Option, 0, len(req.Options))
		for _, input := range req.Options {
			option := model.Option{Value: input.Value}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
			if input.IsCorrect {
				correctID = option.ID
			}
			created = append(created, option)
		}

		question = model.Question{
			Text:            req.Text,
			TopicID:         req.TopicID,
			CorrectAnswerID: correctID,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		for _, option := range created {
			link := model.QuestionOption{QuestionID: question.ID, OptionID: option.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		testLink := model.TestQuestion{TestID: test.ID, QuestionID: question.ID}
		return tx.Create(&testLink).Error
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(test.ID)
	return &QuestionDetail{Question: question, Options: created}, nil
}

// Update 仅更新标量字段，选项集合的增删走 Option 相关操作
func (s *QuestionService) Update(id uint, req UpdateQuestionReq) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			return nil, util.ErrQuestionTextRequired
		}
		question.Text = *req.Text
	}
	if req.TopicID != nil {
		if _, err := s.TopicRepo.FindByID(*req.TopicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrTopicRequired
			}
			return nil, err
		}
		question.TopicID = *req.TopicID
	}
	if req.CorrectAnswerID != nil {
		links, err := s.QuestionOptionRepo.ListByQuestionID(id)
		if err != nil {
			return nil, err
		}
		linked := false
		for _, link := range links {
			if link.OptionID == *req.CorrectAnswerID {
				linked = true
				break
			}
		}
		if !linked {
			return nil, util.ErrCorrectNotLinked
		}
		question.CorrectAnswerID = *req.CorrectAnswerID
	}

	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	s.Cache.InvalidateAll()
	return question, nil
}

// Delete 先清理全部测试关联和选项关联，再删除题目本身
func (s *QuestionService) Delete(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		return err
	}

	links, err := s.QuestionOptionRepo.ListByQuestionID(id)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		s.Logger.Debug("题目无选项关联可清理", zap.Uint("questionID", id))
	}

	err = s.QuestionRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
	if err != nil {
		return err
	}
	s.Cache.InvalidateAll()
	return nil
}

func (s *QuestionService) GetDetail(id uint) (*QuestionDetail, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	options, err := s.ListOptions(id)
	if err != nil {
		return nil, err
	}
	return &QuestionDetail{Question: *question, Options: options}, nil
}

// ListOptions 返回题目挂接的全部选项
func (s *QuestionService) ListOptions(questionID uint) ([]model.Option, error) {
	links, err := s.QuestionOptionRepo.ListByQuestionID(questionID)
	if err != nil {
		return nil, err
	}
	options := make([]model.Option, 0, len(links))
	if len(links) == 0 {
		return options, nil
	}
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.OptionID)
	}
	found, err := s.OptionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	optionMap := make(map[uint]model.Option, len(found))
	for _, o := range found {
		optionMap[o.ID] = o
	}
	for _, link := range links {
		if o, ok := optionMap[link.OptionID]; ok {
			options = append(options, o)
		}
	}
	return options, nil
}

// LinkOption 将已有选项挂接到题目上，选项数量上限与唯一性在此校验
func (s *QuestionService) LinkOption(questionID, optionID uint) (*model.QuestionOption, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		return nil, err
	}
	if _, err := s.OptionRepo.FindByID(optionID); err != nil {
		return nil, err
	}

	links, err := s.QuestionOptionRepo.ListByQuestionID(questionID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if link.OptionID == optionID {
			return nil, util.ErrOptionAlreadyLinked
		}
	}
	if len(links) >= model.MaxOptionsPerQuestion {
		return nil, util.ErrOptionCount
	}

	link := &model.QuestionOption{QuestionID: questionID, OptionID: optionID}
	if err := s.QuestionOptionRepo.Create(link); err != nil {
		return nil, err
	}
	s.Cache.InvalidateAll()
	return link, nil
}

// UnlinkOption 按关联 ID 解绑选项。正确答案指向的选项不可解绑，
// 否则题目会失去正确答案；最后一个选项同样不可解绑
func (s *QuestionService) UnlinkOption(linkID uint) error {
	link, err := s.QuestionOptionRepo.FindByID(linkID)
	if err != nil {
		return err
	}
	question, err := s.QuestionRepo.FindByID(link.QuestionID)
	if err != nil {
		return err
	}
	if question.CorrectAnswerID == link.OptionID {
		return util.ErrCorrectNotLinked
	}
	links, err := s.QuestionOptionRepo.ListByQuestionID(link.QuestionID)
	if err != nil {
		return err
	}
	if len(links) <= 1 {
		return util.ErrOptionCount
	}
	if err := s.QuestionOptionRepo.Delete(linkID); err != nil {
		return err
	}
	s.Cache.InvalidateAll()
	return nil
}

func (s *QuestionService) UpdateOption(id uint, value string) (*model.Option, error) {
	option, err := s.OptionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	option.Value = value
	if err := s.OptionRepo.Update(option); err != nil {
		return nil, err
	}
	s.Cache.InvalidateAll()
	return option, nil
}

// DeleteOption 先删除引用该选项的全部题目关联，再删除选项记录，
// 找不到关联按无害情况记录日志后继续。
// 仍被某道题当作正确答案的选项不可删除，否则该题将失去正确答案
func (s *QuestionService) DeleteOption(id uint) error {
	if _, err := s.OptionRepo.FindByID(id); err != nil {
		return err
	}

	holders, err := s.QuestionRepo.ListByCorrectAnswerID(id)
	if err != nil {
		return err
	}
	if len(holders) > 0 {
		return util.ErrCorrectNotLinked
	}

	links, err := s.QuestionOptionRepo.ListByOptionID(id)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		s.Logger.Debug("选项无题目关联可清理", zap.Uint("optionID", id))
	}

	err = s.OptionRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Option{}, id).Error
	})
	if err != nil {
		return err
	}
	s.Cache.InvalidateAll()
	return nil
}

// ListSelectableTopics 出题时可选的主题集合，入学模块可跨全部主题
func (s *QuestionService) ListSelectableTopics(testID uint) ([]model.Topic, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	module, err := s.ModuleRepo.FindByID(test.ModuleID)
	if err != nil {
		return nil, err
	}
	if s.Config.Assessment.IsEntranceModule(module.Name) {
		return s.TopicRepo.ListAll()
	}
	return s.TopicRepo.ListByModuleID(module.ID)
}
