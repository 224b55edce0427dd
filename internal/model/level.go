package model

// swagger:model Level
type Level struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Level) TableName() string {
	return "levels"
}
