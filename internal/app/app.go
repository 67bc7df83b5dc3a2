package app

import (
	"context"
	"lingua_backend/internal/config"
	"lingua_backend/internal/controller"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/service"
	"lingua_backend/pkg/configwatcher"
	"lingua_backend/pkg/database"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"
	"lingua_backend/pkg/security"
	"lingua_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Scheduler *gocron.Scheduler

	services        *services
	limiter         *security.Limiter
	timeout         *service.CollaboratorTimeout
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	progress *repository.ProgressRepository
}

type services struct {
	courses   service.CourseDirectory
	users     service.UserDirectory
	resolver  *service.ProgressResolver
	progress  *service.ProgressService
	exam      *service.ExamService
	analytics *service.AnalyticsService
	storage   *service.StorageService
	report    *service.ReportService
}

type controllers struct {
	progress *controller.ProgressController
	stats    *controller.StatsController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，依次执行注册的回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	var courses service.CourseDirectory = service.NewGormCourseDirectory(repos.course, a.timeout)
	if rdb != nil {
		courses = service.NewCachedCourseDirectory(courses, rdb, cfg.Redis.CacheTTL)
	}
	s.courses = courses
	s.users = service.NewGormUserDirectory(repos.user, a.timeout)

	loc := cfg.Analytics.Location()
	s.resolver = service.NewProgressResolver(repos.progress, s.courses, s.users)
	s.progress = service.NewProgressService(s.resolver, repos.progress, cfg.Progress.MaxWriteRetries, loc)
	s.exam = service.NewExamService(s.resolver, repos.progress, cfg.Progress.MaxWriteRetries, loc)
	s.analytics = service.NewAnalyticsService(
		repos.progress,
		repos.course,
		repos.user,
		s.courses,
		s.users,
		cfg.Analytics.RecentPerSource,
		loc,
	)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.report = service.NewReportService(s.analytics, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		progress: controller.NewProgressController(s.progress, s.exam),
		stats:    controller.NewStatsController(s.analytics, s.report),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已经建立好的连接组装应用，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		limiter: security.NewLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute),
		timeout: service.NewCollaboratorTimeout(cfg.Progress.CollaboratorTimeout),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		app.timeout.Set(newCfg.Progress.CollaboratorTimeout)
		logger.Log.Info("Runtime settings updated",
			zap.String("mode", newCfg.Server.Mode),
			zap.Duration("collaboratorTimeout", newCfg.Progress.CollaboratorTimeout))
	})

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// 缓存只是优化，连不上就直接读库
			logger.Log.Warn("Redis unavailable, course cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(&cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Storage.Type == "local" {
		app.Router.Static("/reports", cfg.Storage.LocalPath)
	}

	return app
}

// OrphanReport 命令行模式使用，不启动 HTTP 服务
func (a *App) OrphanReport(ctx context.Context) error {
	report, err := a.services.analytics.OrphanReport(ctx)
	if err != nil {
		return err
	}
	logger.Log.Info("Orphan progress records", zap.Int("total", report.Total))
	for _, r := range report.Records {
		logger.Log.Info("orphan",
			zap.Uint("progressId", r.ProgressID),
			zap.String("learnerId", r.LearnerID),
			zap.String("courseId", r.CourseID))
	}
	return nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := a.startBackgroundTasks(ctx); err != nil {
		logger.Log.Fatal("Failed to schedule background jobs", zap.Error(err))
	}

	go func() {
		configFile := filepath.Join("configs", "config.yaml")
		if err := configwatcher.Watch(ctx, configFile, a.ApplyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stop()
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
