package model

// 每道题的选项数量上限（单选题，有且只有一个正确选项）
const MaxOptionsPerQuestion = 5

// Option 原子答案选项，只有挂接到题目后才有意义
// swagger:model Option
type Option struct {
	BaseModel
	Value string `gorm:"type:text;not null" json:"value"`
}

func (Option) TableName() string {
	return "options"
}

// Question 题目；CorrectAnswerID 必须指向其关联选项集中的某一项
// swagger:model Question
type Question struct {
	BaseModel
	Text            string `gorm:"type:text;not null" json:"text"`
	TopicID         uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	CorrectAnswerID uint   `gorm:"type:bigint unsigned" json:"correctAnswerId"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionOption 题目-选项多对多关联
// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID uint `gorm:"uniqueIndex:idx_question_option;type:bigint unsigned" json:"questionId"`
	OptionID   uint `gorm:"uniqueIndex:idx_question_option;type:bigint unsigned" json:"optionId"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}

// SelectedAnswer 一次作答中某道题选中的选项
type SelectedAnswer struct {
	QuestionID       uint `json:"question_id" binding:"required"`
	SelectedOptionID uint `json:"selected_option_id" binding:"required"`
}
