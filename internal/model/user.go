package model

import "time"

// 角色名称与 roles 表种子数据保持一致
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// swagger:model Role
type Role struct {
	BaseModel
	Name        string `gorm:"size:50;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Role) TableName() string {
	return "roles"
}

// swagger:model User
type User struct {
	BaseModel
	FIO      string `gorm:"size:255;not null" json:"fio"`
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	RoleID   uint   `gorm:"index;type:bigint unsigned" json:"roleId"`
	Role     *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	// 入学定级后写入
	LevelID  *uint  `gorm:"index;type:bigint unsigned" json:"levelId,omitempty"`
	Level    *Level `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
	// 是否已完成入学定级测试
	EntranceTestCompleted bool       `gorm:"default:false" json:"entranceTestCompleted"`
	LastLogin             *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleName 用户角色名称；未预加载角色时返回空串
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
