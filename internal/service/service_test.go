package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"
)

// testEnv 组装全部仓储与服务，走内存 sqlite，缓存客户端为 nil 退化为直查
type testEnv struct {
	db   *gorm.DB
	cfg  *config.Config
	repo struct {
		user           *repository.UserRepository
		role           *repository.RoleRepository
		level          *repository.LevelRepository
		module         *repository.ModuleRepository
		topic          *repository.TopicRepository
		option         *repository.OptionRepository
		question       *repository.QuestionRepository
		questionOption *repository.QuestionOptionRepository
		test           *repository.TestRepository
		testQuestion   *repository.TestQuestionRepository
		progress       *repository.ProgressRepository
		category       *repository.CategoryRepository
		material       *repository.MaterialRepository
	}
	auth       *AuthService
	user       *UserService
	level      *LevelService
	module     *ModuleService
	test       *TestService
	question   *QuestionService
	assessment *AssessmentService
	progress   *ProgressService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Assessment: config.AssessmentConfig{
			EntranceModule:    "Entrance",
			QuestionCount:     10,
			PassScore:         60,
			AllowRetakePassed: true,
			Placement: []config.PlacementBand{
				{MinScore: 0, Level: "Beginner"},
				{MinScore: 60, Level: "Intermediate"},
				{MinScore: 85, Level: "Advanced"},
			},
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		db:  newTestDB(t),
		cfg: newTestConfig(),
	}

	env.repo.user = repository.NewUserRepository(env.db)
	env.repo.role = repository.NewRoleRepository(env.db)
	env.repo.level = repository.NewLevelRepository(env.db)
	env.repo.module = repository.NewModuleRepository(env.db)
	env.repo.topic = repository.NewTopicRepository(env.db)
	env.repo.option = repository.NewOptionRepository(env.db)
	env.repo.question = repository.NewQuestionRepository(env.db)
	env.repo.questionOption = repository.NewQuestionOptionRepository(env.db)
	env.repo.test = repository.NewTestRepository(env.db)
	env.repo.testQuestion = repository.NewTestQuestionRepository(env.db)
	env.repo.progress = repository.NewProgressRepository(env.db)
	env.repo.category = repository.NewCategoryRepository(env.db)
	env.repo.material = repository.NewMaterialRepository(env.db)

	logger := zap.NewNop()
	cache := NewAssessmentCache(nil, logger)

	env.auth = NewAuthService(env.repo.user, env.repo.role, env.cfg)
	env.user = NewUserService(env.repo.user, env.repo.role)
	env.level = NewLevelService(env.repo.level, env.repo.module)
	env.module = NewModuleService(env.repo.module, env.repo.topic, env.repo.level, cache)
	env.test = NewTestService(env.repo.test, env.repo.testQuestion, env.repo.question, env.repo.module, cache)
	env.question = NewQuestionService(
		env.repo.question,
		env.repo.option,
		env.repo.questionOption,
		env.repo.testQuestion,
		env.repo.test,
		env.repo.module,
		env.repo.topic,
		env.cfg,
		logger,
		cache,
	)
	env.assessment = NewAssessmentService(
		env.repo.user,
		env.repo.level,
		env.repo.module,
		env.repo.topic,
		env.repo.test,
		env.repo.testQuestion,
		env.repo.question,
		env.repo.questionOption,
		env.repo.option,
		env.repo.progress,
		env.cfg,
		logger,
		cache,
	)
	env.progress = NewProgressService(env.repo.user, env.repo.module, env.repo.test, env.repo.progress, env.cfg)

	return env
}

func (e *testEnv) createStudent(t *testing.T, email string) *model.User {
	t.Helper()
	user, err := e.auth.Register(RegisterReq{
		FIO:      "Test Student",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) levelByName(t *testing.T, name string) *model.Level {
	t.Helper()
	level, err := e.repo.level.FindByName(name)
	require.NoError(t, err)
	return level
}

func (e *testEnv) placeStudent(t *testing.T, user *model.User, levelName string) {
	t.Helper()
	level := e.levelByName(t, levelName)
	require.NoError(t, e.repo.user.AssignLevel(user.ID, level.ID))
}

func (e *testEnv) createModule(t *testing.T, name, levelName string, order int) *model.Module {
	t.Helper()
	level := e.levelByName(t, levelName)
	module, err := e.module.Create(ModuleReq{Name: name, LevelID: level.ID, Order: order})
	require.NoError(t, err)
	return module
}

func (e *testEnv) createTopic(t *testing.T, name string, moduleID uint) *model.Topic {
	t.Helper()
	topic, err := e.module.CreateTopic(TopicReq{Name: name, ModuleID: moduleID})
	require.NoError(t, err)
	return topic
}

func (e *testEnv) createTest(t *testing.T, name string, moduleID uint) *model.Test {
	t.Helper()
	test, err := e.test.Create(TestReq{Name: name, ModuleID: moduleID})
	require.NoError(t, err)
	return test
}

// authorQuestion 以正式出题流程创建题目，values 中第 correctIdx 项为正确选项
func (e *testEnv) authorQuestion(t *testing.T, testID, topicID uint, text string, values []string, correctIdx int) *QuestionDetail {
	t.Helper()
	options := make([]OptionInput, 0, len(values))
	for i, v := range values {
		options = append(options, OptionInput{Value: v, IsCorrect: i == correctIdx})
	}
	detail, err := e.question.Create(CreateQuestionReq{
		Text:    text,
		TopicID: topicID,
		TestID:  testID,
		Options: options,
	})
	require.NoError(t, err)
	return detail
}

// correctAnswer 该题的正确作答
func correctAnswer(detail *QuestionDetail) model.SelectedAnswer {
	return model.SelectedAnswer{
		QuestionID:       detail.Question.ID,
		SelectedOptionID: detail.Question.CorrectAnswerID,
	}
}

// wrongAnswer 该题的一个错误作答
func wrongAnswer(detail *QuestionDetail) model.SelectedAnswer {
	for _, o := range detail.Options {
		if o.ID != detail.Question.CorrectAnswerID {
			return model.SelectedAnswer{QuestionID: detail.Question.ID, SelectedOptionID: o.ID}
		}
	}
	return model.SelectedAnswer{QuestionID: detail.Question.ID, SelectedOptionID: 0}
}
