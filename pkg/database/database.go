package database

import (
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表并写入基础种子数据，测试环境也走这条路径
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Role{},
		&model.Level{},
		&model.User{},
		&model.Module{},
		&model.Topic{},
		&model.Option{},
		&model.Question{},
		&model.QuestionOption{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestProgress{},
		&model.Category{},
		&model.Material{},
	)
	if err != nil {
		return err
	}

	// 默认角色
	var roleCount int64
	db.Model(&model.Role{}).Count(&roleCount)
	if roleCount == 0 {
		defaultRoles := []model.Role{
			{Name: model.RoleStudent, Description: "学员"},
			{Name: model.RoleTeacher, Description: "教师"},
			{Name: model.RoleAdmin, Description: "管理员"},
		}
		for _, r := range defaultRoles {
			db.Create(&r)
		}
	}

	// 默认等级，与定级分档配置对应
	var levelCount int64
	db.Model(&model.Level{}).Count(&levelCount)
	if levelCount == 0 {
		defaultLevels := []model.Level{
			{Name: "Beginner"},
			{Name: "Intermediate"},
			{Name: "Advanced"},
		}
		for _, l := range defaultLevels {
			db.Create(&l)
		}
	}

	return nil
}
