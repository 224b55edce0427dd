package service

import (
	"context"
	"errors"
	"math/rand"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"
)

// 每个等级在入学测试中抽取的题目数
const entranceQuestionsPerLevel = 2

type AssessmentService struct {
	UserRepo           *repository.UserRepository
	LevelRepo          *repository.LevelRepository
	ModuleRepo         *repository.ModuleRepository
	TopicRepo          *repository.TopicRepository
	TestRepo           *repository.TestRepository
	TestQuestionRepo   *repository.TestQuestionRepository
	QuestionRepo       *repository.QuestionRepository
	QuestionOptionRepo *repository.QuestionOptionRepository
	OptionRepo         *repository.OptionRepository
	ProgressRepo       *repository.ProgressRepository
	Config             *config.Config
	Logger             *zap.Logger
	Cache              *AssessmentCache
}

func NewAssessmentService(
	userRepo *repository.UserRepository,
	levelRepo *repository.LevelRepository,
	moduleRepo *repository.ModuleRepository,
	topicRepo *repository.TopicRepository,
	testRepo *repository.TestRepository,
	testQuestionRepo *repository.TestQuestionRepository,
	questionRepo *repository.QuestionRepository,
	questionOptionRepo *repository.QuestionOptionRepository,
	optionRepo *repository.OptionRepository,
	progressRepo *repository.ProgressRepository,
	cfg *config.Config,
	logger *zap.Logger,
	cache *AssessmentCache,
) *AssessmentService {
	return &AssessmentService{
		UserRepo:           userRepo,
		LevelRepo:          levelRepo,
		ModuleRepo:         moduleRepo,
		TopicRepo:          topicRepo,
		TestRepo:           testRepo,
		TestQuestionRepo:   testQuestionRepo,
		QuestionRepo:       questionRepo,
		QuestionOptionRepo: questionOptionRepo,
		OptionRepo:         optionRepo,
		ProgressRepo:       progressRepo,
		Config:             cfg,
		Logger:             logger,
		Cache:              cache,
	}
}

// AssessmentOption 呈现给学员的选项，不携带正确性标记
type AssessmentOption struct {
	ID    uint   `json:"id"`
	Value string `json:"value"`
}

type AssessmentQuestion struct {
	ID      uint               `json:"id"`
	Text    string             `json:"text"`
	Options []AssessmentOption `json:"options"`
}

type ModuleTestPayload struct {
	TestID      uint                 `json:"test_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ModuleID    uint                 `json:"module_id"`
	Questions   []AssessmentQuestion `json:"questions"`
}

type ModuleStatus struct {
	Module model.Module `json:"module"`
	Status string       `json:"status"`
	TestID uint         `json:"test_id,omitempty"`
}

type EntranceStatusResp struct {
	Status  string               `json:"status"`
	Test    []AssessmentQuestion `json:"test,omitempty"`
	Modules []ModuleStatus       `json:"modules,omitempty"`
}

type PlacementResult struct {
	Level string  `json:"level"`
	Score float64 `json:"score"`
}

type ModuleTestResult struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Attempts       int     `json:"attempts"`
	IsPassed       bool    `json:"is_passed"`
}

// GetEntranceTestOrModules 未定级学员拿到入学测试题目，已定级学员拿到模块列表
func (s *AssessmentService) GetEntranceTestOrModules(userID uint) (*EntranceStatusResp, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if user.EntranceTestCompleted && user.LevelID != nil {
		modules, err := s.moduleStatuses(user)
		if err != nil {
			return nil, err
		}
		return &EntranceStatusResp{Status: "modules", Modules: modules}, nil
	}

	questions, err := s.assembleEntranceTest()
	if err != nil {
		return nil, err
	}
	return &EntranceStatusResp{Status: "test", Test: questions}, nil
}

// GetUserModules 当前等级下各模块及解锁状态
func (s *AssessmentService) GetUserModules(userID uint) ([]ModuleStatus, error) {
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
	return s.moduleStatuses(user)
}

// GetModuleTest 组装模块测试载荷，模块未解锁时拒绝
func (s *AssessmentService) GetModuleTest(ctx context.Context, userID, moduleID uint) (*ModuleTestPayload, error) {
	statuses, err := s.GetUserModules(userID)
	if err != nil {
		return nil, err
	}

	var current *ModuleStatus
	for i := range statuses {
		if statuses[i].Module.ID == moduleID {
			current = &statuses[i]
			break
		}
	}
	if current == nil {
		return nil, util.ErrModuleNotFound
	}
	if current.Status == model.ModuleLocked {
		return nil, util.ErrModuleLocked
	}

	test, err := s.TestRepo.FindByModuleID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleTestMissing
		}
		return nil, err
	}

	var payload ModuleTestPayload
	if s.Cache.GetModuleTest(ctx, test.ID, &payload) {
		return &payload, nil
	}

	questions, err := s.assembleTestQuestions(test.ID)
	if err != nil {
		return nil, err
	}
	payload = ModuleTestPayload{
		TestID:      test.ID,
		Name:        test.Name,
		Description: test.Description,
		ModuleID:    test.ModuleID,
		Questions:   questions,
	}
	s.Cache.SetModuleTest(ctx, test.ID, payload)
	return &payload, nil
}

// SubmitEntranceTest 批改入学测试并按阈值表定级，重复提交直接拒绝
func (s *AssessmentService) SubmitEntranceTest(userID uint, answers []model.SelectedAnswer) (*PlacementResult, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if user.EntranceTestCompleted {
		return nil, util.ErrEntranceCompleted
	}
	if len(answers) == 0 {
		return nil, util.ErrEmptySubmission
	}

	correct, total, err := s.grade(answers)
	if err != nil {
		return nil, err
	}
	score := float64(correct) / float64(total) * 100

	levelName, ok := s.resolvePlacement(score)
	if !ok {
		return nil, util.ErrNoPlacementBand
	}
	level, err := s.LevelRepo.FindByName(levelName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoPlacementBand
		}
		return nil, err
	}

	if err := s.UserRepo.AssignLevel(user.ID, level.ID); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("entrance", "placed").Inc()
	s.Logger.Info("入学定级完成",
		zap.Uint("userID", user.ID),
		zap.Float64("score", score),
		zap.String("level", level.Name))

	return &PlacementResult{Level: level.Name, Score: score}, nil
}

// SubmitModuleTest 批改模块测试并推进进度记录；
// 已通过的测试允许重考时成绩只记入最近一次作答，通过状态不会回退
func (s *AssessmentService) SubmitModuleTest(userID, moduleID uint, answers []model.SelectedAnswer) (*ModuleTestResult, error) {
	statuses, err := s.GetUserModules(userID)
	if err != nil {
		return nil, err
	}

	var current *ModuleStatus
	for i := range statuses {
		if statuses[i].Module.ID == moduleID {
			current = &statuses[i]
			break
		}
	}
	if current == nil {
		return nil, util.ErrModuleNotFound
	}
	if current.Status == model.ModuleLocked {
		return nil, util.ErrModuleLocked
	}

	test, err := s.TestRepo.FindByModuleID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleTestMissing
		}
		return nil, err
	}

	if len(answers) == 0 {
		return nil, util.ErrEmptySubmission
	}

	correct, total, err := s.grade(answers)
	if err != nil {
		return nil, err
	}
	score := float64(correct) / float64(total) * 100
	passed := score >= s.Config.Assessment.PassScore

	progress, err := s.ProgressRepo.FindByUserAndTest(userID, test.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = &model.TestProgress{UserID: userID, TestID: test.ID}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if progress.IsPassed && !s.Config.Assessment.AllowRetakePassed {
		return nil, util.ErrTestAlreadyPassed
	}

	progress.Attempts++
	progress.CorrectAnswers = correct
	progress.TotalQuestions = total
	if passed {
		progress.IsPassed = true
	}
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.SubmissionCounter.WithLabelValues("module", outcome).Inc()
	s.Logger.Info("模块测试提交",
		zap.Uint("userID", userID),
		zap.Uint("moduleID", moduleID),
		zap.Float64("score", score),
		zap.Bool("passed", passed))

	return &ModuleTestResult{
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Attempts:       progress.Attempts,
		IsPassed:       progress.IsPassed,
	}, nil
}

// grade 对照每题 correct_answer_id 统计正确数，未知题目记为错误
func (s *AssessmentService) grade(answers []model.SelectedAnswer) (int, int, error) {
	ids := make([]uint, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return 0, 0, err
	}
	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	correct := 0
	for _, a := range answers {
		q, ok := questionMap[a.QuestionID]
		if !ok {
			continue
		}
		if q.CorrectAnswerID == a.SelectedOptionID {
			correct++
		}
	}
	return correct, len(answers), nil
}

// resolvePlacement 取 min_score 不超过成绩的最高档位
func (s *AssessmentService) resolvePlacement(score float64) (string, bool) {
	var best string
	var bestMin float64
	found := false
	for _, band := range s.Config.Assessment.Placement {
		if band.MinScore <= score && (!found || band.MinScore >= bestMin) {
			best = band.Level
			bestMin = band.MinScore
			found = true
		}
	}
	return best, found
}

// findEntranceModule 按配置的入学模块名匹配，忽略大小写
func (s *AssessmentService) findEntranceModule() (*model.Module, error) {
	modules, err := s.ModuleRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range modules {
		if s.Config.Assessment.IsEntranceModule(modules[i].Name) {
			return &modules[i], nil
		}
	}
	return nil, util.ErrEntranceTestNotSetup
}

// assembleEntranceTest 入学测试题目抽样，每个等级至多两题，
// 再随机补足到配置的题目数
func (s *AssessmentService) assembleEntranceTest() ([]AssessmentQuestion, error) {
	module, err := s.findEntranceModule()
	if err != nil {
		return nil, err
	}
	test, err := s.TestRepo.FindByModuleID(module.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEntranceTestNotSetup
		}
		return nil, err
	}

	all, err := s.assembleTestQuestions(test.ID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, util.ErrEntranceTestNotSetup
	}

	levelByQuestion, err := s.questionLevels(all)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	perLevel := make(map[uint]int)
	picked := make([]AssessmentQuestion, 0, s.Config.Assessment.QuestionCount)
	rest := make([]AssessmentQuestion, 0, len(all))
	for _, q := range all {
		levelID := levelByQuestion[q.ID]
		if perLevel[levelID] < entranceQuestionsPerLevel {
			perLevel[levelID]++
			picked = append(picked, q)
		} else {
			rest = append(rest, q)
		}
	}
	for _, q := range rest {
		if len(picked) >= s.Config.Assessment.QuestionCount {
			break
		}
		picked = append(picked, q)
	}
	if len(picked) > s.Config.Assessment.QuestionCount {
		picked = picked[:s.Config.Assessment.QuestionCount]
	}
	return picked, nil
}

// questionLevels 题目 -> 等级映射，沿主题和模块归属解析
func (s *AssessmentService) questionLevels(questions []AssessmentQuestion) (map[uint]uint, error) {
	topics, err := s.TopicRepo.ListAll()
	if err != nil {
		return nil, err
	}
	modules, err := s.ModuleRepo.ListAll()
	if err != nil {
		return nil, err
	}
	moduleLevel := make(map[uint]uint, len(modules))
	for _, m := range modules {
		moduleLevel[m.ID] = m.LevelID
	}
	topicLevel := make(map[uint]uint, len(topics))
	for _, t := range topics {
		topicLevel[t.ID] = moduleLevel[t.ModuleID]
	}

	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	records, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	result := make(map[uint]uint, len(records))
	for _, q := range records {
		result[q.ID] = topicLevel[q.TopicID]
	}
	return result, nil
}

// assembleTestQuestions 测试的全部题目及其选项，不暴露正确答案
func (s *AssessmentService) assembleTestQuestions(testID uint) ([]AssessmentQuestion, error) {
	links, err := s.TestQuestionRepo.ListByTestID(testID)
	if err != nil {
		return nil, err
	}
	result := make([]AssessmentQuestion, 0, len(links))
	if len(links) == 0 {
		return result, nil
	}

	questionIDs := make([]uint, 0, len(links))
	for _, link := range links {
		questionIDs = append(questionIDs, link.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	optionLinks, err := s.QuestionOptionRepo.ListByQuestionIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	optionIDs := make([]uint, 0, len(optionLinks))
	for _, link := range optionLinks {
		optionIDs = append(optionIDs, link.OptionID)
	}
	options := []model.Option{}
	if len(optionIDs) > 0 {
		options, err = s.OptionRepo.FindByIDs(optionIDs)
		if err != nil {
			return nil, err
		}
	}
	optionMap := make(map[uint]model.Option, len(options))
	for _, o := range options {
		optionMap[o.ID] = o
	}
	optionsByQuestion := make(map[uint][]AssessmentOption)
	for _, link := range optionLinks {
		if o, ok := optionMap[link.OptionID]; ok {
			optionsByQuestion[link.QuestionID] = append(optionsByQuestion[link.QuestionID],
				AssessmentOption{ID: o.ID, Value: o.Value})
		}
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
		result = append(result, AssessmentQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: optionsByQuestion[q.ID],
		})
	}
	return result, nil
}

// moduleStatuses 按模块顺序推导解锁状态，前一模块完成才解锁下一个；
// 没有配套测试的模块视为已完成，入学模块不出现在课程列表里
func (s *AssessmentService) moduleStatuses(user *model.User) ([]ModuleStatus, error) {
	all, err := s.ModuleRepo.ListByLevel(*user.LevelID)
	if err != nil {
		return nil, err
	}
	modules := make([]model.Module, 0, len(all))
	for _, m := range all {
		if s.Config.Assessment.IsEntranceModule(m.Name) {
			continue
		}
		modules = append(modules, m)
	}
	if len(modules) == 0 {
		return []ModuleStatus{}, nil
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}
	tests, err := s.TestRepo.ListByModuleIDs(moduleIDs)
	if err != nil {
		return nil, err
	}
	testByModule := make(map[uint]model.Test, len(tests))
	for _, t := range tests {
		testByModule[t.ModuleID] = t
	}

	progressList, err := s.ProgressRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	progressByTest := make(map[uint]model.TestProgress, len(progressList))
	for _, p := range progressList {
		progressByTest[p.TestID] = p
	}

	statuses := make([]ModuleStatus, 0, len(modules))
	prevCompleted := true
	for _, m := range modules {
		status := ModuleStatus{Module: m}
		test, hasTest := testByModule[m.ID]
		if hasTest {
			status.TestID = test.ID
		}

		completed := !hasTest
		attempted := false
		if hasTest {
			if p, ok := progressByTest[test.ID]; ok {
				completed = p.IsPassed
				attempted = p.Attempts > 0
			}
		}

		switch {
		case !prevCompleted:
			status.Status = model.ModuleLocked
		case completed:
			status.Status = model.ModuleCompleted
		case attempted:
			status.Status = model.ModuleTestPending
		default:
			status.Status = model.ModuleUnlocked
		}

		prevCompleted = prevCompleted && completed
		statuses = append(statuses, status)
	}
	return statuses, nil
}
