// 手动初始化入学评估数据脚本
//
// 在空库上创建入学模块及其测试，并为每个等级生成示例模块、主题和题目，
// 方便首次部署后立即体验完整的入学测试与分级流程。脚本具备幂等性：
// 入学模块已存在时直接退出，不会重复写入。
//
// 用法: go run scripts/seed_assessment.go
package main

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"lms_backend/internal/config"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	moduleRepo := repository.NewModuleRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	testRepo := repository.NewTestRepository(db)
	testQuestionRepo := repository.NewTestQuestionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	questionOptionRepo := repository.NewQuestionOptionRepository(db)

	cache := service.NewAssessmentCache(nil, logger.Log)
	moduleService := service.NewModuleService(moduleRepo, topicRepo, levelRepo, cache)
	testService := service.NewTestService(testRepo, testQuestionRepo, questionRepo, moduleRepo, cache)
	questionService := service.NewQuestionService(
		questionRepo, optionRepo, questionOptionRepo, testQuestionRepo,
		testRepo, moduleRepo, topicRepo, cfg, logger.Log, cache,
	)

	if _, err := moduleRepo.FindByName(cfg.Assessment.EntranceModule); err == nil {
		log.Println("入学模块已存在，跳过初始化")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询入学模块失败: %v", err)
	}

	beginner, err := levelRepo.FindByName("Beginner")
	if err != nil {
		log.Fatalf("查询 Beginner 等级失败: %v", err)
	}

	log.Println("创建入学模块与入学测试...")
	entrance, err := moduleService.Create(service.ModuleReq{
		Name:        cfg.Assessment.EntranceModule,
		Description: "新学员入学评估，根据成绩分配学习等级",
		LevelID:     beginner.ID,
	})
	if err != nil {
		log.Fatalf("创建入学模块失败: %v", err)
	}
	entranceTest, err := testService.Create(service.TestReq{
		Name:        "入学评估测试",
		Description: "覆盖全部等级的分级测试",
		ModuleID:    entrance.ID,
	})
	if err != nil {
		log.Fatalf("创建入学测试失败: %v", err)
	}

	// 每个等级一个示例模块和主题，各贡献 4 道题，保证抽题时每个等级都有候选
	levels, err := levelRepo.ListAll()
	if err != nil {
		log.Fatalf("查询等级列表失败: %v", err)
	}
	for _, level := range levels {
		module, err := moduleService.Create(service.ModuleReq{
			Name:        fmt.Sprintf("%s Fundamentals", level.Name),
			Description: fmt.Sprintf("%s 等级的示例学习模块", level.Name),
			LevelID:     level.ID,
			Order:       1,
		})
		if err != nil {
			log.Fatalf("创建示例模块失败: %v", err)
		}
		topic, err := moduleService.CreateTopic(service.TopicReq{
			Name:     fmt.Sprintf("%s Core Concepts", level.Name),
			ModuleID: module.ID,
		})
		if err != nil {
			log.Fatalf("创建示例主题失败: %v", err)
		}
		for i := 1; i <= 4; i++ {
			_, err := questionService.Create(service.CreateQuestionReq{
				Text:    fmt.Sprintf("[%s] 示例题目 %d：请选择正确答案", level.Name, i),
				TopicID: topic.ID,
				TestID:  entranceTest.ID,
				Options: []service.OptionInput{
					{Value: "正确答案", IsCorrect: true},
					{Value: "干扰项 A"},
					{Value: "干扰项 B"},
					{Value: "干扰项 C"},
				},
			})
			if err != nil {
				log.Fatalf("创建示例题目失败: %v", err)
			}
		}
	}

	log.Println("完成！")
}
