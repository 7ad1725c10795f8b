package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/controller"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/security"
	"exam_prep_backend/pkg/tracing"

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
	user        *repository.UserRepository
	question    *repository.QuestionRepository
	test        *repository.TestRepository
	attempt     *repository.AttemptRepository
	badge       *repository.BadgeRepository
	bookmark    *repository.BookmarkRepository
	chat        *repository.ChatRepository
	ingestJob   *repository.IngestJobRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	question    *service.QuestionService
	ingest      *service.IngestService
	leaderboard *service.LeaderboardService
	badge       *service.BadgeService
	practice    *service.PracticeService
	test        *service.TestService
	bookmark    *service.BookmarkService
	ai          *service.AIService
	news        *service.NewsService
	user        *service.UserService
}

type controllers struct {
	auth        *controller.AuthController
	question    *controller.QuestionController
	ingest      *controller.IngestController
	practice    *controller.PracticeController
	test        *controller.TestController
	badge       *controller.BadgeController
	leaderboard *controller.LeaderboardController
	bookmark    *controller.BookmarkController
	user        *controller.UserController
	chat        *controller.ChatController
	news        *controller.NewsController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		user:      repository.NewUserRepository(db),
		question:  repository.NewQuestionRepository(db),
		test:      repository.NewTestRepository(db),
		attempt:   repository.NewAttemptRepository(db),
		badge:     repository.NewBadgeRepository(db),
		bookmark:  repository.NewBookmarkRepository(db),
		chat:      repository.NewChatRepository(db),
		ingestJob: repository.NewIngestJobRepository(db),
	}
	if rdb != nil {
		repos.leaderboard = repository.NewLeaderboardRepository(rdb)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.question = service.NewQuestionService(repos.question)
	s.ingest = service.NewIngestService(repos.question, repos.ingestJob, s.storage)
	s.leaderboard = service.NewLeaderboardService(repos.leaderboard, repos.user)
	s.badge = service.NewBadgeService(repos.badge, repos.attempt, repos.user, s.leaderboard)
	s.practice = service.NewPracticeService(repos.question, repos.user, repos.attempt, s.leaderboard, s.badge, cfg)
	s.test = service.NewTestService(repos.test, repos.question, repos.attempt, s.practice)
	s.bookmark = service.NewBookmarkService(repos.bookmark, repos.question)
	s.ai = service.NewAIService(cfg.AI, repos.chat)
	s.news = service.NewNewsService(cfg.News, rdb)
	s.user = service.NewUserService(repos.user, repos.attempt, repos.badge)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		question:    controller.NewQuestionController(s.question),
		ingest:      controller.NewIngestController(s.ingest),
		practice:    controller.NewPracticeController(s.practice),
		test:        controller.NewTestController(s.test),
		badge:       controller.NewBadgeController(s.badge),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		bookmark:    controller.NewBookmarkController(s.bookmark),
		user:        controller.NewUserController(s.user),
		chat:        controller.NewChatController(s.ai),
		news:        controller.NewNewsController(s.news),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
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

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The leaderboard and news cache fall back gracefully, the rest of
		// the service works without Redis.
		logger.Log.Warn("Redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-prep-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
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
