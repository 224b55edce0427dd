package model

// Test 测试卷，归属唯一模块
// swagger:model Test
type Test struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ModuleID    uint   `gorm:"index;type:bigint unsigned" json:"moduleId"`
}

func (Test) TableName() string {
	return "tests"
}

// TestQuestion 测试-题目多对多关联
// swagger:model TestQuestion
type TestQuestion struct {
	BaseModel
	TestID     uint `gorm:"uniqueIndex:idx_test_question;type:bigint unsigned" json:"testId"`
	QuestionID uint `gorm:"uniqueIndex:idx_test_question;type:bigint unsigned" json:"questionId"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}
