package model

// 学员视角下模块的解锁状态
const (
	ModuleLocked      = "locked"
	ModuleUnlocked    = "unlocked"
	ModuleTestPending = "test_pending"
	ModuleCompleted   = "completed"
)

// TestProgress 每个学员每份测试的累计作答记录；只增不减，
// IsPassed 一旦为 true 不会因后续失败回退
type TestProgress struct {
	BaseModel
	UserID         uint `gorm:"uniqueIndex:idx_user_test;type:bigint unsigned" json:"userId"`
	TestID         uint `gorm:"uniqueIndex:idx_user_test;type:bigint unsigned" json:"testId"`
	Attempts       int  `gorm:"default:0" json:"attempts"`
	CorrectAnswers int  `gorm:"default:0" json:"correctAnswers"`
	TotalQuestions int  `gorm:"default:0" json:"totalQuestions"`
	IsPassed       bool `gorm:"default:false" json:"isPassed"`
}

func (TestProgress) TableName() string {
	return "test_progress"
}

// CourseProgress 学员在所属等级内的整体进度
type CourseProgress struct {
	ModulesCompleted     int     `json:"modules_completed"`
	TotalModules         int     `json:"total_modules"`
	CompletionPercentage float64 `json:"completion_percentage"`
	IsCourseComplete     bool    `json:"is_course_complete"`
}

// ProgressRecord 进度查询的响应结构
type ProgressRecord struct {
	CourseProgress CourseProgress `json:"course_progress"`
	TestsProgress  []TestProgress `json:"tests_progress"`
}
