package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")
	ErrUnauthorized    = errors.New("unauthorized")

	// 校验类错误：在任何持久化动作之前返回
	ErrQuestionTextRequired = errors.New("question text is required")
	ErrTopicRequired        = errors.New("topic is required")
	ErrOptionCount          = errors.New("a question must have between 1 and 5 options")
	ErrOneCorrectOption     = errors.New("exactly one option must be marked correct")
	ErrCorrectNotLinked     = errors.New("correct answer must be one of the question's linked options")
	ErrOptionAlreadyLinked  = errors.New("option is already linked to this question")
	ErrTopicOutsideModule   = errors.New("topic does not belong to the test's module")
	ErrEmptySubmission      = errors.New("no answers provided")

	ErrTestNotFound         = errors.New("test not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrModuleTestMissing    = errors.New("module has no test")
	ErrModuleLocked         = errors.New("module is locked")
	ErrEntranceCompleted    = errors.New("entrance test already completed")
	ErrEntranceNotCompleted = errors.New("entrance test not completed yet")
	ErrTestAlreadyPassed    = errors.New("test already passed")
	ErrNoPlacementBand      = errors.New("no placement band configured for score")
	ErrEntranceTestNotSetup = errors.New("entrance test is not configured")
)
