package model

// Module 课程模块，按 Order 在所属等级内排序，学员顺序解锁
// swagger:model Module
type Module struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LevelID     uint   `gorm:"index;type:bigint unsigned" json:"levelId"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (Module) TableName() string {
	return "modules"
}

// swagger:model Topic
type Topic struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ModuleID    uint   `gorm:"index;type:bigint unsigned" json:"moduleId"`
}

func (Topic) TableName() string {
	return "topics"
}
