package app

import (
	"aba_assessment_backend/internal/config"
	"aba_assessment_backend/internal/controller"
	"aba_assessment_backend/internal/repository"
	"aba_assessment_backend/internal/service"
	"aba_assessment_backend/pkg/database"
	"aba_assessment_backend/pkg/logger"
	"aba_assessment_backend/pkg/monitoring"
	"aba_assessment_backend/pkg/security"
	"aba_assessment_backend/pkg/tracing"
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
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	child    *repository.ChildRepository
	template *repository.TemplateRepository
	session  *repository.SessionRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	child     *service.ChildService
	template  *service.TemplateService
	session   *service.SessionService
	scoring   *service.ScoringService
	report    *service.ReportService
	dashboard *service.DashboardService
	storage   service.StorageProvider
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	child         *controller.ChildController
	questionnaire *controller.QuestionnaireController
	scoring       *controller.ScoringController
	dashboard     *controller.DashboardController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		child:    repository.NewChildRepository(db),
		template: repository.NewTemplateRepository(db),
		session:  repository.NewSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.child = service.NewChildService(repos.child)
	s.template = service.NewTemplateService(repos.template, rdb)
	s.session = service.NewSessionService(repos.session, repos.template, repos.child, s.template)
	s.scoring = service.NewScoringService(repos.session, repos.template, repos.child)
	s.report = service.NewReportService()
	s.dashboard = service.NewDashboardService(repos.child, repos.session, repos.user)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		user:          controller.NewUserController(s.user),
		child:         controller.NewChildController(s.child),
		questionnaire: controller.NewQuestionnaireController(s.template, s.session),
		scoring:       controller.NewScoringController(s.scoring, s.report, s.storage, cfg),
		dashboard:     controller.NewDashboardController(s.dashboard),
		health:        controller.NewHealthController(),
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
		// The template cache is an optimization; run without it.
		logger.Log.Warn("Redis unavailable, template caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("aba-assessment", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/reports", cfg.Storage.LocalPath)
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
