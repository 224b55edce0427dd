package model

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Category) TableName() string {
	return "categories"
}

// Material 学习资料，附件经存储服务上传
// swagger:model Material
type Material struct {
	BaseModel
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  uint      `gorm:"index;type:bigint unsigned" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ModuleID    *uint     `gorm:"index;type:bigint unsigned" json:"moduleId,omitempty"`
	UploaderID  uint      `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	URL         string    `gorm:"size:255" json:"url"`
	MimeType    string    `gorm:"size:100" json:"mimeType"`
	Size        int64     `gorm:"default:0" json:"size"`
	// 视频附件经 ffmpeg 探测后写入
	Duration     float64 `gorm:"default:0" json:"duration"`
	ThumbnailURL string  `gorm:"size:255" json:"thumbnailUrl"`
}

func (Material) TableName() string {
	return "materials"
}
