package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func TestProgressRequiresPlacement(t *testing.T) {
	env := newTestEnv(t)
	user := env.createStudent(t, "p1@example.com")

	_, err := env.progress.GetProgress(user.ID)
	assert.ErrorIs(t, err, util.ErrEntranceNotCompleted)
}

func TestProgressAdvancesWithPassedModules(t *testing.T) {
	env := newTestEnv(t)
	m1, m2, q1, q2 := seedBeginnerModules(t, env)
	user := env.createStudent(t, "p2@example.com")
	env.placeStudent(t, user, "Beginner")

	record, err := env.progress.GetProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, record.CourseProgress.ModulesCompleted)
	assert.Equal(t, 2, record.CourseProgress.TotalModules)
	assert.Equal(t, float64(0), record.CourseProgress.CompletionPercentage)
	assert.False(t, record.CourseProgress.IsCourseComplete)

	_, err = env.assessment.SubmitModuleTest(user.ID, m1.ID, []model.SelectedAnswer{correctAnswer(q1)})
	require.NoError(t, err)

	record, err = env.progress.GetProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, record.CourseProgress.ModulesCompleted)
	assert.Equal(t, float64(50), record.CourseProgress.CompletionPercentage)
	assert.False(t, record.CourseProgress.IsCourseComplete)
	require.Len(t, record.TestsProgress, 1)
	assert.True(t, record.TestsProgress[0].IsPassed)

	_, err = env.assessment.SubmitModuleTest(user.ID, m2.ID, []model.SelectedAnswer{correctAnswer(q2)})
	require.NoError(t, err)

	record, err = env.progress.GetProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.CourseProgress.ModulesCompleted)
	assert.Equal(t, float64(100), record.CourseProgress.CompletionPercentage)
	assert.True(t, record.CourseProgress.IsCourseComplete)
}

func TestProgressExcludesEntranceModule(t *testing.T) {
	env := newTestEnv(t)
	seedEntrance(t, env, 1)
	seedBeginnerModules(t, env)
	user := env.createStudent(t, "p3@example.com")
	env.placeStudent(t, user, "Beginner")

	record, err := env.progress.GetProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.CourseProgress.TotalModules)
}
