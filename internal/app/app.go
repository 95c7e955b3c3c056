package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/controller"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/pkg/database"
	"quiz_backend/pkg/logger"
	"quiz_backend/pkg/monitoring"
	"quiz_backend/pkg/security"
	"quiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	category   *repository.CategoryRepository
	quiz       *repository.QuizRepository
	question   *repository.QuestionRepository
	option     *repository.OptionRepository
	attempt    *repository.AttemptRepository
	userAnswer *repository.UserAnswerRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	user     *service.UserService
	category *service.CategoryService
	quiz     *service.QuizService
	question *service.QuestionService
	attempt  *service.AttemptService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	category *controller.CategoryController
	quiz     *controller.QuizController
	question *controller.QuestionController
	attempt  *controller.AttemptController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		category:   repository.NewCategoryRepository(db),
		quiz:       repository.NewQuizRepository(db),
		question:   repository.NewQuestionRepository(db),
		option:     repository.NewOptionRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		userAnswer: repository.NewUserAnswerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, rdb, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.category = service.NewCategoryService(repos.category)
	s.quiz = service.NewQuizService(repos.quiz, repos.question, repos.category)
	s.question = service.NewQuestionService(repos.question, repos.option, repos.quiz, repos.userAnswer, db)
	s.attempt = service.NewAttemptService(repos.attempt, repos.quiz, repos.question, repos.option, repos.userAnswer, repos.user, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user, s.attempt),
		category: controller.NewCategoryController(s.category),
		quiz:     controller.NewQuizController(s.quiz),
		question: controller.NewQuestionController(s.question),
		attempt:  controller.NewAttemptController(s.attempt),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

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
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
