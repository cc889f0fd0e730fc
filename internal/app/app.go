package app

import (
	"context"
	"learning_buddy_backend/internal/config"
	"learning_buddy_backend/internal/controller"
	"learning_buddy_backend/internal/middleware"
	"learning_buddy_backend/internal/repository"
	"learning_buddy_backend/internal/service"
	"learning_buddy_backend/pkg/configwatcher"
	"learning_buddy_backend/pkg/database"
	"learning_buddy_backend/pkg/logger"
	"learning_buddy_backend/pkg/monitoring"
	"learning_buddy_backend/pkg/security"
	"learning_buddy_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	catalog  *repository.CatalogRepository
	question *repository.QuestionRepository
	answer   *repository.AnswerRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	storage        *service.StorageService
	catalog        *service.CatalogService
	question       *service.QuestionService
	onboarding     *service.OnboardingService
	progress       *service.ProgressService
	recommendation *service.RecommendationService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	catalog        *controller.CatalogController
	question       *controller.QuestionController
	onboarding     *controller.OnboardingController
	progress       *controller.ProgressController
	recommendation *controller.RecommendationController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		question: repository.NewQuestionRepository(db),
		answer:   repository.NewAnswerRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.catalog = service.NewCatalogService(repos.catalog, repos.question, s.storage, rdb, cfg.Catalog)
	s.question = service.NewQuestionService(s.catalog)
	s.recommendation = service.NewRecommendationService(s.catalog, repos.answer, repos.progress, cfg.Recommendation.Weights())
	s.onboarding = service.NewOnboardingService(db, repos.user, repos.answer, s.question, s.recommendation)
	s.progress = service.NewProgressService(repos.progress, s.catalog)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		user:           controller.NewUserController(s.user),
		catalog:        controller.NewCatalogController(s.catalog),
		question:       controller.NewQuestionController(s.question),
		onboarding:     controller.NewOnboardingController(s.onboarding),
		progress:       controller.NewProgressController(s.progress),
		recommendation: controller.NewRecommendationController(s.recommendation),
		health:         controller.NewHealthController(db, s.catalog),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.AccessLog())
}

// registerConfigCallbacks 配置热更新：推荐权重原子替换
func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		if err := a.services.recommendation.SetWeights(cfg.Recommendation.Weights()); err != nil {
			logger.Log.Error("rejected recommendation weights", zap.Error(err))
			return
		}
		logger.Log.Info("recommendation weights updated")
	})
}

// build wires repositories, services, controllers and routes on an open
// database. It touches no network besides rdb, which may be nil.
func build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services, db)
	app.registerConfigCallbacks()

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

// loadCatalog 启动时加载目录：指定 -seed 时先导入；数据库为空时从配置来源导入
func (a *App) loadCatalog(ctx context.Context) error {
	catalog := a.services.catalog
	if a.Config.SeedFile != "" {
		return catalog.ImportFile(ctx, a.Config.SeedFile)
	}
	if err := catalog.Reload(ctx); err != nil {
		return err
	}
	if catalog.Size() > 0 {
		return nil
	}
	if err := catalog.ImportFromSource(ctx); err != nil {
		logger.Log.Warn("catalog source import failed, starting with an empty catalog", zap.Error(err))
	}
	return nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app, err := build(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if err := app.loadCatalog(context.Background()); err != nil {
		logger.Log.Fatal("Failed to load catalog", zap.Error(err))
	}

	return app
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	go a.services.catalog.Subscribe(ctx)

	if a.Config.ConfigFile == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.startBackgroundTasks(ctx)

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
