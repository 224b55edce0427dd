package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

// seedEntrance 建入学模块、测试和若干题目
func seedEntrance(t *testing.T, env *testEnv, questionCount int) []*QuestionDetail {
	t.Helper()
	entrance := env.createModule(t, "Entrance", "Beginner", 0)
	topic := env.createTopic(t, "General", entrance.ID)
	test := env.createTest(t, "Entrance Test", entrance.ID)

	details := make([]*QuestionDetail, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		d := env.authorQuestion(t, test.ID, topic.ID, fmt.Sprintf("EQ%d", i),
			[]string{"right", "wrong"}, 0)
		details = append(details, d)
	}
	return details
}

// seedBeginnerModules 建两个顺序模块及各自的测试和一道题
func seedBeginnerModules(t *testing.T, env *testEnv) (m1, m2 *model.Module, q1, q2 *QuestionDetail) {
	t.Helper()
	m1 = env.createModule(t, "Module One", "Beginner", 1)
	m2 = env.createModule(t, "Module Two", "Beginner", 2)
	t1 := env.createTest(t, "Test One", m1.ID)
	t2 := env.createTest(t, "Test Two", m2.ID)
	topic1 := env.createTopic(t, "Topic One", m1.ID)
	topic2 := env.createTopic(t, "Topic Two", m2.ID)
	q1 = env.authorQuestion(t, t1.ID, topic1.ID, "M1 Q", []string{"a", "b"}, 0)
	q2 = env.authorQuestion(t, t2.ID, topic2.ID, "M2 Q", []string{"c", "d"}, 0)
	return
}

func TestSubmitEntranceAllCorrectPlacesAdvanced(t *testing.T) {
	env := newTestEnv(t)
	details := seedEntrance(t, env, 2)
	user := env.createStudent(t, "a@example.com")

	result, err := env.assessment.SubmitEntranceTest(user.ID, []model.SelectedAnswer{
		correctAnswer(details[0]),
		correctAnswer(details[1]),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), result.Score)
	assert.Equal(t, "Advanced", result.Level)

	reloaded, err := env.repo.user.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.EntranceTestCompleted)
	require.NotNil(t, reloaded.Level)
	assert.Equal(t, "Advanced", reloaded.Level.Name)
}

func TestSubmitEntranceHalfCorrectPlacesBeginner(t *testing.T) {
	env := newTestEnv(t)
	details := seedEntrance(t, env, 2)
	user := env.createStudent(t, "b@example.com")

	result, err := env.assessment.SubmitEntranceTest(user.ID, []model.SelectedAnswer{
		correctAnswer(details[0]),
		wrongAnswer(details[1]),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(50), result.Score)
	assert.Equal(t, "Beginner", result.Level)
}

func TestSubmitEntranceEmptyRejectedWithoutStateChange(t *testing.T) {
	env := newTestEnv(t)
	seedEntrance(t, env, 2)
	user := env.createStudent(t, "c@example.com")

	_, err := env.assessment.SubmitEntranceTest(user.ID, nil)
	assert.ErrorIs(t, err, util.ErrEmptySubmission)

	reloaded, err := env.repo.user.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.EntranceTestCompleted)
	assert.Nil(t, reloaded.LevelID)
}

func TestSubmitEntranceTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	details := seedEntrance(t, env, 1)
	user := env.createStudent(t, "d@example.com")

	_, err := env.assessment.SubmitEntranceTest(user.ID, []model.SelectedAnswer{correctAnswer(details[0])})
	require.NoError(t, err)

	_, err = env.assessment.SubmitEntranceTest(user.ID, []model.SelectedAnswer{correctAnswer(details[0])})
	assert.ErrorIs(t, err, util.ErrEntranceCompleted)
}

func TestGetEntranceTestOrModulesSwitchesAfterPlacement(t *testing.T) {
	env := newTestEnv(t)
	details := seedEntrance(t, env, 3)
	seedBeginnerModules(t, env)
	user := env.createStudent(t, "e@example.com")

	resp, err := env.assessment.GetEntranceTestOrModules(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test", resp.Status)
	assert.Len(t, resp.Test, 3)
	for _, q := range resp.Test {
		assert.NotEmpty(t, q.Options)
	}

	_, err = env.assessment.SubmitEntranceTest(user.ID, []model.SelectedAnswer{wrongAnswer(details[0])})
	require.NoError(t, err)

	resp, err = env.assessment.GetEntranceTestOrModules(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "modules", resp.Status)
	assert.NotEmpty(t, resp.Modules)
}

func TestEntranceSamplingCapsQuestionCount(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Assessment.QuestionCount = 10
	seedEntrance(t, env, 12)
	user := env.createStudent(t, "f@example.com")

	resp, err := env.assessment.GetEntranceTestOrModules(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test", resp.Status)
	assert.Len(t, resp.Test, 10)
}

func TestModuleLockedUntilPreviousCompleted(t *testing.T) {
	env := newTestEnv(t)
	_, m2, _, q2 := seedBeginnerModules(t, env)
	user := env.createStudent(t, "g@example.com")
	env.placeStudent(t, user, "Beginner")

	statuses, err := env.assessment.GetUserModules(user.ID)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, model.ModuleUnlocked, statuses[0].Status)
	assert.Equal(t, model.ModuleLocked, statuses[1].Status)

	_, err = env.assessment.GetModuleTest(context.Background(), user.ID, m2.ID)
	assert.ErrorIs(t, err, util.ErrModuleLocked)

	_, err = env.assessment.SubmitModuleTest(user.ID, m2.ID, []model.SelectedAnswer{correctAnswer(q2)})
	assert.ErrorIs(t, err, util.ErrModuleLocked)
}

func TestModuleTestPassOnSecondAttemptUnlocksNext(t *testing.T) {
	env := newTestEnv(t)
	m1, _, q1, _ := seedBeginnerModules(t, env)
	user := env.createStudent(t, "h@example.com")
	env.placeStudent(t, user, "Beginner")

	// 第一次作答失败
	result, err := env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{wrongAnswer(q1)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempts)
	assert.False(t, result.IsPassed)

	statuses, err := env.assessment.GetUserModules(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ModuleTestPending, statuses[0].Status)
	assert.Equal(t, model.ModuleLocked, statuses[1].Status)

	// 第二次作答通过，下一模块解锁
	result, err = env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{correctAnswer(q1)})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempts)
	assert.True(t, result.IsPassed)

	statuses, err = env.assessment.GetUserModules(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ModuleCompleted, statuses[0].Status)
	assert.Equal(t, model.ModuleUnlocked, statuses[1].Status)
}

func TestPassedStateNeverRegresses(t *testing.T) {
	env := newTestEnv(t)
	m1, _, q1, _ := seedBeginnerModules(t, env)
	user := env.createStudent(t, "i@example.com")
	env.placeStudent(t, user, "Beginner")

	result, err := env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{correctAnswer(q1)})
	require.NoError(t, err)
	require.True(t, result.IsPassed)

	// 重考失败不会回退通过状态，成绩记录为最近一次
	result, err = env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{wrongAnswer(q1)})
	require.NoError(t, err)
	assert.True(t, result.IsPassed)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 2, result.Attempts)
}

func TestRetakeOfPassedTestCanBeDisallowed(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Assessment.AllowRetakePassed = false
	m1, _, q1, _ := seedBeginnerModules(t, env)
	user := env.createStudent(t, "j@example.com")
	env.placeStudent(t, user, "Beginner")

	_, err := env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{correctAnswer(q1)})
	require.NoError(t, err)

	_, err = env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{correctAnswer(q1)})
	assert.ErrorIs(t, err, util.ErrTestAlreadyPassed)
}

func TestSubmitModuleTestEmptyRejected(t *testing.T) {
	env := newTestEnv(t)
	m1, _, _, _ := seedBeginnerModules(t, env)
	user := env.createStudent(t, "k@example.com")
	env.placeStudent(t, user, "Beginner")

	_, err := env.assessment.SubmitModuleTest(user.ID, m1.ID, nil)
	assert.ErrorIs(t, err, util.ErrEmptySubmission)
}

func TestGetModuleTestPayloadNesting(t *testing.T) {
	env := newTestEnv(t)
	m1, _, q1, _ := seedBeginnerModules(t, env)
	user := env.createStudent(t, "l@example.com")
	env.placeStudent(t, user, "Beginner")

	payload, err := env.assessment.GetModuleTest(context.Background(), user.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, m1.ID, payload.ModuleID)
	require.Len(t, payload.Questions, 1)
	assert.Equal(t, q1.Question.ID, payload.Questions[0].ID)
	assert.Len(t, payload.Questions[0].Options, 2)
}

func TestSubmitModuleTestRequiresPlacement(t *testing.T) {
	env := newTestEnv(t)
	m1, _, q1, _ := seedBeginnerModules(t, env)
	user := env.createStudent(t, "m@example.com")

	_, err := env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{correctAnswer(q1)})
	assert.ErrorIs(t, err, util.ErrEntranceNotCompleted)
}
