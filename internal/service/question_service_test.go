package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func TestCreateQuestionPersistsOptionsAndLinks(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Capital of France?",
		[]string{"Paris", "London", "Rome"}, 0)

	require.Len(t, detail.Options, 3)
	assert.Equal(t, detail.Options[0].ID, detail.Question.CorrectAnswerID)

	links, err := env.repo.questionOption.ListByQuestionID(detail.Question.ID)
	require.NoError(t, err)
	assert.Len(t, links, 3)

	testLinks, err := env.repo.testQuestion.ListByTestID(test.ID)
	require.NoError(t, err)
	require.Len(t, testLinks, 1)
	assert.Equal(t, detail.Question.ID, testLinks[0].QuestionID)
}

func TestCreateQuestionOptionCountBounds(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	_, err := env.question.Create(CreateQuestionReq{
		Text:    "No options",
		TopicID: topic.ID,
		TestID:  test.ID,
		Options: []OptionInput{},
	})
	assert.ErrorIs(t, err, util.ErrOptionCount)

	tooMany := make([]OptionInput, 6)
	for i := range tooMany {
		tooMany[i] = OptionInput{Value: "v", IsCorrect: i == 0}
	}
	_, err = env.question.Create(CreateQuestionReq{
		Text:    "Too many",
		TopicID: topic.ID,
		TestID:  test.ID,
		Options: tooMany,
	})
	assert.ErrorIs(t, err, util.ErrOptionCount)
}

func TestCreateQuestionRequiresExactlyOneCorrect(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	_, err := env.question.Create(CreateQuestionReq{
		Text:    "None correct",
		TopicID: topic.ID,
		TestID:  test.ID,
		Options: []OptionInput{{Value: "a"}, {Value: "b"}},
	})
	assert.ErrorIs(t, err, util.ErrOneCorrectOption)

	_, err = env.question.Create(CreateQuestionReq{
		Text:    "Two correct",
		TopicID: topic.ID,
		TestID:  test.ID,
		Options: []OptionInput{{Value: "a", IsCorrect: true}, {Value: "b", IsCorrect: true}},
	})
	assert.ErrorIs(t, err, util.ErrOneCorrectOption)
}

func TestCreateQuestionTopicMustBelongToTestModule(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	other := env.createModule(t, "Advanced Stuff", "Advanced", 1)
	foreignTopic := env.createTopic(t, "Concurrency", other.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	_, err := env.question.Create(CreateQuestionReq{
		Text:    "Out of scope",
		TopicID: foreignTopic.ID,
		TestID:  test.ID,
		Options: []OptionInput{{Value: "a", IsCorrect: true}},
	})
	assert.ErrorIs(t, err, util.ErrTopicOutsideModule)
}

func TestEntranceModuleAcceptsAnyTopic(t *testing.T) {
	env := newTestEnv(t)
	entrance := env.createModule(t, "Entrance", "Beginner", 0)
	other := env.createModule(t, "Advanced Stuff", "Advanced", 1)
	foreignTopic := env.createTopic(t, "Concurrency", other.ID)
	entranceTest := env.createTest(t, "Entrance Test", entrance.ID)

	detail := env.authorQuestion(t, entranceTest.ID, foreignTopic.ID, "Cross-topic question",
		[]string{"yes", "no"}, 0)
	assert.NotZero(t, detail.Question.ID)
}

func TestUpdateQuestionCorrectAnswerMustBeLinked(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b"}, 0)

	// 不属于该题的选项不能作为正确答案
	stray := &model.Option{Value: "stray"}
	require.NoError(t, env.repo.option.Create(stray))
	_, err := env.question.Update(detail.Question.ID, UpdateQuestionReq{CorrectAnswerID: &stray.ID})
	assert.ErrorIs(t, err, util.ErrCorrectNotLinked)

	// 已挂接的选项可以
	secondID := detail.Options[1].ID
	updated, err := env.question.Update(detail.Question.ID, UpdateQuestionReq{CorrectAnswerID: &secondID})
	require.NoError(t, err)
	assert.Equal(t, secondID, updated.CorrectAnswerID)
}

func TestDeleteQuestionRemovesAllLinks(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b", "c"}, 1)

	require.NoError(t, env.question.Delete(detail.Question.ID))

	optionLinks, err := env.repo.questionOption.ListByQuestionID(detail.Question.ID)
	require.NoError(t, err)
	assert.Empty(t, optionLinks)

	testLinks, err := env.repo.testQuestion.ListByTestID(test.ID)
	require.NoError(t, err)
	assert.Empty(t, testLinks)

	_, err = env.repo.question.FindByID(detail.Question.ID)
	assert.Error(t, err)
}

func TestDeleteOptionCascadesAcrossQuestions(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	q1 := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b"}, 0)
	q2 := env.authorQuestion(t, test.ID, topic.ID, "Q2", []string{"c", "d"}, 0)

	// 同一个选项挂接到两道题
	shared := &model.Option{Value: "shared"}
	require.NoError(t, env.repo.option.Create(shared))
	require.NoError(t, env.repo.questionOption.Create(&model.QuestionOption{QuestionID: q1.Question.ID, OptionID: shared.ID}))
	require.NoError(t, env.repo.questionOption.Create(&model.QuestionOption{QuestionID: q2.Question.ID, OptionID: shared.ID}))

	require.NoError(t, env.question.DeleteOption(shared.ID))

	remaining, err := env.repo.questionOption.ListByOptionID(shared.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = env.repo.option.FindByID(shared.ID)
	assert.Error(t, err)

	// 两道题本身保留
	for _, id := range []uint{q1.Question.ID, q2.Question.ID} {
		_, err := env.repo.question.FindByID(id)
		assert.NoError(t, err)
	}
}

func TestListOptionsReturnsStableSet(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b", "c"}, 0)

	first, err := env.question.ListOptions(detail.Question.ID)
	require.NoError(t, err)
	second, err := env.question.ListOptions(detail.Question.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestLinkOptionEnforcesUniquenessAndCap(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"a", "b", "c", "d"}, 0)

	extra := &model.Option{Value: "extra"}
	require.NoError(t, env.repo.option.Create(extra))

	link, err := env.question.LinkOption(detail.Question.ID, extra.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.Question.ID, link.QuestionID)

	// 重复挂接被拒绝
	_, err = env.question.LinkOption(detail.Question.ID, extra.ID)
	assert.ErrorIs(t, err, util.ErrOptionAlreadyLinked)

	// 已达 5 个选项上限
	sixth := &model.Option{Value: "sixth"}
	require.NoError(t, env.repo.option.Create(sixth))
	_, err = env.question.LinkOption(detail.Question.ID, sixth.ID)
	assert.ErrorIs(t, err, util.ErrOptionCount)
}

func TestUnlinkOptionGuardsCorrectAnswerAndMinimum(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"right", "wrong"}, 0)

	links, err := env.repo.questionOption.ListByQuestionID(detail.Question.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)

	var correctLink, wrongLink model.QuestionOption
	for _, l := range links {
		if l.OptionID == detail.Question.CorrectAnswerID {
			correctLink = l
		} else {
			wrongLink = l
		}
	}

	// 正确答案所指选项不可解绑
	assert.ErrorIs(t, env.question.UnlinkOption(correctLink.ID), util.ErrCorrectNotLinked)

	require.NoError(t, env.question.UnlinkOption(wrongLink.ID))

	// 只剩一个选项后不可再解绑
	assert.ErrorIs(t, env.question.UnlinkOption(correctLink.ID), util.ErrCorrectNotLinked)

	options, err := env.question.ListOptions(detail.Question.ID)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, detail.Question.CorrectAnswerID, options[0].ID)
}

func TestDeleteOptionRejectedWhileCorrectAnswer(t *testing.T) {
	env := newTestEnv(t)
	module := env.createModule(t, "Basics", "Beginner", 1)
	topic := env.createTopic(t, "Syntax", module.ID)
	test := env.createTest(t, "Basics Test", module.ID)

	detail := env.authorQuestion(t, test.ID, topic.ID, "Q1", []string{"right", "wrong"}, 0)

	err := env.question.DeleteOption(detail.Question.CorrectAnswerID)
	assert.ErrorIs(t, err, util.ErrCorrectNotLinked)

	// 题目与选项集合保持原样
	reloaded, err := env.repo.question.FindByID(detail.Question.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.Question.CorrectAnswerID, reloaded.CorrectAnswerID)

	options, err := env.question.ListOptions(detail.Question.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)

	// 非正确答案的选项不受限制
	for _, o := range options {
		if o.ID != detail.Question.CorrectAnswerID {
			require.NoError(t, env.question.DeleteOption(o.ID))
		}
	}
}
