package app

import (
	"context"
	"errors"
	"fmt"
	"lesson_quiz_backend/internal/config"
	"lesson_quiz_backend/internal/controller"
	"lesson_quiz_backend/internal/middleware"
	"lesson_quiz_backend/internal/repository"
	"lesson_quiz_backend/internal/service"
	"lesson_quiz_backend/internal/util"
	"lesson_quiz_backend/pkg/configwatcher"
	"lesson_quiz_backend/pkg/database"
	"lesson_quiz_backend/pkg/logger"
	"lesson_quiz_backend/pkg/monitoring"
	"lesson_quiz_backend/pkg/security"
	"lesson_quiz_backend/pkg/storage"
	"lesson_quiz_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	services        *services
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	closers         []func() error
	configCallbacks []func(*config.Config)
}

type repositories struct {
	submissions repository.SubmissionRepository
}

type services struct {
	lesson *service.LessonService
}

type controllers struct {
	lesson *controller.LessonController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(cfg *config.Config) (*repositories, error) {
	var repo repository.SubmissionRepository

	switch cfg.Storage.Submissions {
	case util.SubmissionsDatabase:
		db, err := database.InitDB(&cfg.Database, repository.SubmissionModels()...)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.closers = append(a.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		repo = repository.NewDBSubmissionRepository(db)
	case util.SubmissionsRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		repo = repository.NewRedisSubmissionRepository(rdb, cfg.Redis.SubmissionsKey, cfg.Redis.MaxSubmissions)
	case util.SubmissionsObject:
		provider, err := storage.NewProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("Object storage unavailable, falling back to local", zap.Error(err))
		}
		repo = repository.NewObjectSubmissionRepository(provider)
	default:
		repo = repository.NewFileSubmissionRepository(cfg.Storage.SubmissionFile)
	}

	logger.Log.Info("Submission store ready", zap.String("backend", repo.Backend()))
	return &repositories{submissions: repo}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{
		lesson: service.NewLessonService(repos.submissions, &cfg.Generation, nil),
	}

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.lesson.ApplyConfig(&newCfg.Generation)
	})
	return s
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		lesson: controller.NewLessonController(s.lesson),
		health: controller.NewHealthController(repos.submissions),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)

	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	app := &App{Config: cfg}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	repos, err := app.initRepositories(cfg)
	if err != nil {
		return nil, err
	}
	app.services = app.initServices(repos, cfg)
	ctrls := app.initControllers(app.services, repos)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	router.HandleMethodNotAllowed = true
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls)

	return app, nil
}

func (a *App) watchConfig(ctx context.Context) {
	if !a.Config.Server.WatchConfig || a.Config.ConfigFile == "" {
		return
	}

	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.watchConfig(ctx)

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	select {
	case err, ok := <-errCh:
		if ok {
			a.shutdown()
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	a.shutdown()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

func (a *App) shutdown() {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logger.Log.Error("Failed to close resource", zap.Error(err))
		}
	}
	_ = logger.Log.Sync()
}
