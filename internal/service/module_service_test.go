package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lms_backend/internal/model"
)

func TestDeleteModuleCascadesTestAndProgress(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)
	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b"}, 0)

	user := env.createStudent(t, "mod-del@example.com")
	require.NoError(t, env.repo.progress.Create(&model.TestProgress{
		UserID:   user.ID,
		TestID:   test.ID,
		Attempts: 1,
	}))

	require.NoError(t, env.module.Delete(module.ID))

	_, err := env.repo.test.FindByModuleID(module.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	links, err := env.repo.testQuestion.ListByTestID(test.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	progress, err := env.repo.progress.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, progress)

	topics, err := env.repo.topic.ListByModuleID(module.ID)
	require.NoError(t, err)
	assert.Empty(t, topics)

	// 题库中的题目不随模块级联删除
	_, err = env.repo.question.FindByID(detail.Question.ID)
	assert.NoError(t, err)
}

func TestDeleteModuleWithoutTest(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Reading", "Beginner", 2)
	env.createTopic(t, "Articles", module.ID)

	require.NoError(t, env.module.Delete(module.ID))

	_, err := env.repo.module.FindByID(module.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
