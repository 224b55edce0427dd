package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user           *repository.UserRepository
	role           *repository.RoleRepository
	level          *repository.LevelRepository
	module         *repository.ModuleRepository
	topic          *repository.TopicRepository
	option         *repository.OptionRepository
	question       *repository.QuestionRepository
	questionOption *repository.QuestionOptionRepository
	test           *repository.TestRepository
	testQuestion   *repository.TestQuestionRepository
	progress       *repository.ProgressRepository
	category       *repository.CategoryRepository
	material       *repository.MaterialRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	level      *service.LevelService
	module     *service.ModuleService
	test       *service.TestService
	question   *service.QuestionService
	assessment *service.AssessmentService
	progress   *service.ProgressService
	storage    *service.StorageService
	material   *service.MaterialService
	cache      *service.AssessmentCache
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	level      *controller.LevelController
	module     *controller.ModuleController
	test       *controller.TestController
	question   *controller.QuestionController
	assessment *controller.AssessmentController
	material   *controller.MaterialController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		role:           repository.NewRoleRepository(db),
		level:          repository.NewLevelRepository(db),
		module:         repository.NewModuleRepository(db),
		topic:          repository.NewTopicRepository(db),
		option:         repository.NewOptionRepository(db),
		question:       repository.NewQuestionRepository(db),
		questionOption: repository.NewQuestionOptionRepository(db),
		test:           repository.NewTestRepository(db),
		testQuestion:   repository.NewTestQuestionRepository(db),
		progress:       repository.NewProgressRepository(db),
		category:       repository.NewCategoryRepository(db),
		material:       repository.NewMaterialRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.cache = service.NewAssessmentCache(rdb, logger.Log)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.role, cfg)
	s.user = service.NewUserService(repos.user, repos.role)
	s.level = service.NewLevelService(repos.level, repos.module)
	s.module = service.NewModuleService(repos.module, repos.topic, repos.level, s.cache)
	s.test = service.NewTestService(repos.test, repos.testQuestion, repos.question, repos.module, s.cache)
	s.question = service.NewQuestionService(
		repos.question,
		repos.option,
		repos.questionOption,
		repos.testQuestion,
		repos.test,
		repos.module,
		repos.topic,
		cfg,
		logger.Log,
		s.cache,
	)
	s.assessment = service.NewAssessmentService(
		repos.user,
		repos.level,
		repos.module,
		repos.topic,
		repos.test,
		repos.testQuestion,
		repos.question,
		repos.questionOption,
		repos.option,
		repos.progress,
		cfg,
		logger.Log,
		s.cache,
	)
	s.progress = service.NewProgressService(repos.user, repos.module, repos.test, repos.progress, cfg)
	s.material = service.NewMaterialService(repos.material, repos.category, s.storage, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user),
		level:      controller.NewLevelController(s.level),
		module:     controller.NewModuleController(s.module),
		test:       controller.NewTestController(s.test, s.question),
		question:   controller.NewQuestionController(s.question),
		assessment: controller.NewAssessmentController(s.assessment, s.progress),
		material:   controller.NewMaterialController(s.material),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting")
		os.Exit(0)
	}

	// Redis 不可用时测试缓存整体退化为直查
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（5秒超时）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
