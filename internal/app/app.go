package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/controller"
	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/pkg/configwatcher"
	"skill_matrix_backend/pkg/database"
	"skill_matrix_backend/pkg/lock"
	"skill_matrix_backend/pkg/logger"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/security"
	"skill_matrix_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client

	services        *services
	tracer          *sdktrace.TracerProvider
	sweepInterval   atomic.Int64
	sweepEnabled    atomic.Bool
	configCallbacks []func(*config.Config)
}

type repositories struct {
	catalog    *repository.CatalogRepository
	assessment *repository.AssessmentRepository
}

type services struct {
	sessions *service.SessionManager
	answers  *service.AnswerRecorder
	sweeper  *service.DeadlineSweeper
}

type controllers struct {
	assessment *controller.AssessmentController
	publicTest *controller.PublicTestController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		catalog:    repository.NewCatalogRepository(db, rdb, cfg.Assessment.CacheTTL()),
		assessment: repository.NewAssessmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	var locker lock.Locker = lock.NewMemoryLocker()
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb, cfg.Assessment.LockTTL())
	}

	s := &services{}
	s.sessions = service.NewSessionManager(repos.catalog, repos.assessment, locker)
	s.answers = service.NewAnswerRecorder(repos.catalog, repos.assessment, locker)
	s.sweeper = service.NewDeadlineSweeper(s.sessions, cfg.Assessment.AutoSubmit.BatchSize)
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		assessment: controller.NewAssessmentController(s.sessions, s.answers),
		publicTest: controller.NewPublicTestController(s.sessions, s.answers),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the deadline sweep until ctx is done. Interval and
// on/off are re-read every round so config reloads take effect.
func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	go func() {
		for {
			timer := time.NewTimer(time.Duration(a.sweepInterval.Load()))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if !a.sweepEnabled.Load() {
				continue
			}
			if _, err := s.sweeper.SweepAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.Error("deadline sweep error", zap.Error(err))
			}
		}
	}()
}

// newCore opens the stores and builds the services shared by every command.
func newCore(cfg *config.Config, configDir string) (*App, error) {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}
	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
		Redis:     rdb,
	}
	repos := a.initRepositories(db, rdb, cfg)
	a.services = a.initServices(repos, cfg, rdb)

	a.sweepInterval.Store(int64(cfg.Assessment.AutoSubmit.Interval()))
	a.sweepEnabled.Store(cfg.Assessment.AutoSubmit.Enabled)
	a.RegisterConfigCallback(func(c *config.Config) {
		a.sweepInterval.Store(int64(c.Assessment.AutoSubmit.Interval()))
		a.sweepEnabled.Store(c.Assessment.AutoSubmit.Enabled)
		logger.Log.Info("Deadline sweep settings updated",
			zap.Bool("enabled", c.Assessment.AutoSubmit.Enabled),
			zap.Duration("interval", c.Assessment.AutoSubmit.Interval()),
		)
	})
	return a, nil
}

// NewApp wires the HTTP server on top of the core services.
func NewApp(cfg *config.Config, configDir string) (*App, error) {
	a, err := newCore(cfg, configDir)
	if err != nil {
		return nil, err
	}

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	a.Router = router

	a.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		a.tracer = tp
	}

	a.registerRoutes(router, a.initControllers(a.services), cfg)
	return a, nil
}

// SweepOnce runs the deadline sweep a single time, for use from cron.
func SweepOnce(ctx context.Context, cfg *config.Config) (service.SweepReport, error) {
	a, err := newCore(cfg, "")
	if err != nil {
		return service.SweepReport{}, err
	}
	defer a.close()
	return a.services.sweeper.SweepAll(ctx)
}

func (a *App) close() {
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.startBackgroundTasks(ctx, a.services)
	if a.ConfigDir != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.ConfigDir, a.applyConfig); err != nil {
				logger.Log.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}
	logger.Log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	a.close()
	logger.Log.Info("Server exiting")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
