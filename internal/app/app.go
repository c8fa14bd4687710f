package app

import (
	"context"
	"errors"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/controller"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/configwatcher"
	"mock_interview_backend/pkg/database"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"
	"mock_interview_backend/pkg/security"
	"mock_interview_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	// Store 启动时按是否配置数据库二选一，之后不再切换
	Store repository.InterviewStore
	// ConfigFile 非空时监听该文件并热加载
	ConfigFile string

	services        *services
	cron            *cron.Cron
	tracer          *sdktrace.TracerProvider
	ctx             context.Context
	cancel          context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	interviews repository.InterviewStore
	user       *repository.UserRepository
	cache      *repository.QuestionCache
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	ai         *service.AIService
	questions  *service.QuestionService
	evaluation *service.EvaluationService
	interviews *service.InterviewService
	recordings *service.RecordingService
	resumes    *service.ResumeService
	dashboard  *service.DashboardService
	progress   *service.ProgressService
}

type controllers struct {
	auth      *controller.AuthController
	dashboard *controller.DashboardController
	interview *controller.InterviewController
	question  *controller.QuestionController
	resume    *controller.ResumeController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{}

	if db != nil {
		repos.interviews = repository.NewInterviewRepository(db)
		repos.user = repository.NewUserRepository(db)
	} else {
		repos.interviews = repository.NewFixtureInterviewRepository()
	}

	if rdb != nil {
		repos.cache = repository.NewQuestionCache(rdb, time.Duration(cfg.Redis.QuestionTTL)*time.Hour)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.questions = service.NewQuestionService(s.ai, repos.cache)
	s.evaluation = service.NewEvaluationService()
	s.interviews = service.NewInterviewService(repos.interviews, s.questions, s.evaluation)
	s.recordings = service.NewRecordingService(s.storage, s.interviews)
	s.resumes = service.NewResumeService(s.storage)
	s.dashboard = service.NewDashboardService(repos.interviews)
	s.progress = service.NewProgressService(repos.interviews)

	return s
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		dashboard: controller.NewDashboardController(s.dashboard, s.progress),
		interview: controller.NewInterviewController(s.interviews, s.recordings),
		question:  controller.NewQuestionController(s.interviews, s.evaluation),
		resume:    controller.NewResumeController(s.resumes),
		health:    controller.NewHealthController(repos.interviews, repos.cache, s.auth),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	limiter := security.NewRateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 组装应用。database.driver 为空时不连接数据库，使用内置示例数据；
// Redis 连接失败只关闭题目缓存，不影响启动。
func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	if cfg.Database.Configured() {
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			cancel()
			return nil, err
		}
		app.DB = db
	} else {
		logger.Log.Warn("Database not configured, serving fixture interview data")
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, question cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	monitoring.Init()

	repos := app.initRepositories(app.DB, app.Redis, cfg)
	app.Store = repos.interviews
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services, repos)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "" || cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(configwatcher.ApplyLogLevel)

	if err := app.startBackgroundTasks(repos); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	if a.ConfigFile != "" {
		w := configwatcher.New(a.ConfigFile, a.applyConfig)
		go func() {
			if err := w.Run(a.ctx); err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// Close 停止后台任务并释放连接，可重复调用
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.cron != nil {
		<-a.cron.Stop().Done()
		a.cron = nil
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
		cancel()
		a.tracer = nil
	}
	if a.Redis != nil {
		a.Redis.Close()
		a.Redis = nil
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
		a.DB = nil
	}
}
