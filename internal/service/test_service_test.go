package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/util"
)

func TestCreateTestRequiresExistingModule(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.test.Create(TestReq{Name: "Orphan", ModuleID: 9999})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestDeleteTestRemovesQuestionLinks(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b"}, 0)
	env.authorQuestion(t, test.ID, topic.ID, "Q2", []string{"c", "d"}, 1)

	require.NoError(t, env.test.Delete(test.ID))

	links, err := env.repo.testQuestion.ListByTestID(test.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = env.test.GetByID(test.ID)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestLinkAndUnlinkQuestion(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	first := env.createTest(t, "First Test", module.ID)
	second := env.createTest(t, "Second Test", module.ID)

	detail := env.authorQuestion(t, first.ID, topic.ID, "Q1", []string{"a", "b"}, 0)

	// 同一道题可以复用到另一份测试
	link, err := env.test.LinkQuestion(second.ID, detail.Question.ID)
	require.NoError(t, err)

	entries, err := env.test.ListQuestions(second.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, link.ID, entries[0].LinkID)
	assert.Equal(t, detail.Question.ID, entries[0].Question.ID)

	require.NoError(t, env.test.UnlinkQuestion(link.ID))
	entries, err = env.test.ListQuestions(second.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// 原测试的挂接不受影响
	entries, err = env.test.ListQuestions(first.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
