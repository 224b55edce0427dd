package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 1. 公共路由（无需登录）
	public := router.Group("/api/auth")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 学员路由
	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/profile", c.auth.Profile)
		authorized.GET("/levels", c.level.ListLevels)
		authorized.GET("/categories", c.material.ListCategories)
		authorized.GET("/materials", c.material.ListMaterials)
		authorized.GET("/materials/:id", c.material.GetMaterial)

		authorized.GET("/assessment", c.assessment.GetEntranceTestOrModules)
		authorized.POST("/assessment/entrance", c.assessment.SubmitEntranceTest)
		authorized.GET("/modules", c.assessment.GetUserModules)
		authorized.GET("/modules/:id/test", c.assessment.GetModuleTest)
		authorized.POST("/modules/:id/test", c.assessment.SubmitModuleTest)
		authorized.GET("/progress", c.assessment.GetProgress)
	}

	// 3. 教学管理路由，教师与管理员可用
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleTeacher))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)
		admin.GET("/roles", c.user.ListRoles)

		admin.POST("/levels", c.level.CreateLevel)
		admin.PUT("/levels/:id", c.level.UpdateLevel)
		admin.DELETE("/levels/:id", c.level.DeleteLevel)

		admin.GET("/modules", c.module.ListModules)
		admin.POST("/modules", c.module.CreateModule)
		admin.GET("/modules/:id", c.module.GetModule)
		admin.PUT("/modules/:id", c.module.UpdateModule)
		admin.DELETE("/modules/:id", c.module.DeleteModule)

		admin.GET("/topics", c.module.ListTopics)
		admin.POST("/topics", c.module.CreateTopic)
		admin.PUT("/topics/:id", c.module.UpdateTopic)
		admin.DELETE("/topics/:id", c.module.DeleteTopic)

		admin.GET("/tests", c.test.ListTests)
		admin.POST("/tests", c.test.CreateTest)
		admin.GET("/tests/:id", c.test.GetTest)
		admin.PUT("/tests/:id", c.test.UpdateTest)
		admin.DELETE("/tests/:id", c.test.DeleteTest)
		admin.GET("/tests/:id/questions", c.test.ListTestQuestions)
		admin.POST("/tests/:id/questions", c.test.LinkQuestion)
		admin.GET("/tests/:id/topics", c.test.ListSelectableTopics)
		admin.DELETE("/test-questions/:linkId", c.test.UnlinkQuestion)

		admin.POST("/questions", c.question.CreateQuestion)
		admin.GET("/questions/:id", c.question.GetQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)
		admin.GET("/questions/:id/options", c.question.ListOptions)
		admin.POST("/questions/:id/options", c.question.LinkOption)
		admin.DELETE("/question-options/:linkId", c.question.UnlinkOption)
		admin.PUT("/options/:id", c.question.UpdateOption)
		admin.DELETE("/options/:id", c.question.DeleteOption)

		admin.POST("/categories", c.material.CreateCategory)
		admin.PUT("/categories/:id", c.material.UpdateCategory)
		admin.DELETE("/categories/:id", c.material.DeleteCategory)

		admin.POST("/materials", c.material.UploadMaterial)
		admin.PUT("/materials/:id", c.material.UpdateMaterial)
		admin.DELETE("/materials/:id", c.material.DeleteMaterial)
	}
}
