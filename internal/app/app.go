package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"connecta_backend/internal/auth"
	"connecta_backend/internal/cache"
	"connecta_backend/internal/config"
	"connecta_backend/internal/database"
	"connecta_backend/internal/gateway"
	"connecta_backend/internal/handlers"
	"connecta_backend/internal/imageprocessor"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/middleware"
	"connecta_backend/internal/models"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/push"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/routes"
	"connecta_backend/internal/services"
	"connecta_backend/internal/storage"
	"connecta_backend/internal/validator"
	"connecta_backend/internal/workers"
	"connecta_backend/ws"
)

// Run wires the whole application and starts the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	db, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("database migration failed", "error", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("admin seeding failed", "error", err)
	}

	router, scheduler := SetupRouter(cfg, db)
	defer scheduler.Stop()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup failed", "error", err)
	}
}

// SetupRouter builds the full engine with every dependency attached. It
// also starts the websocket manager and the background workers.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *cron.Cron) {
	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("storage initialization failed", "error", err)
	}

	rdb, err := cache.NewRedis()
	if err != nil {
		logger.Fatal("redis connection failed", "error", err)
	}

	wsManager := ws.NewManager()
	go wsManager.Run()

	// The mail provider resolves SMTP settings at send time so admin
	// overrides apply without a restart. The container does not exist
	// yet, hence the indirection.
	var container *services.Container
	mailer := email.NewGomailProvider(func() email.SMTPSettings {
		if container == nil {
			return email.ConfigSettings()
		}
		return container.Settings.SMTPSource()
	}, email.NewTemplateManager())

	container = services.NewContainer(services.Dependencies{
		DB:          db,
		Mailer:      mailer,
		Store:       store,
		Images:      imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
		Gateway:     gateway.NewClient(),
		Emitter:     wsManager,
		Push:        push.NewExpoProvider(),
		Cache:       cache.NewCache(rdb, 0),
		RedirectURL: cfg.Gateway.RedirectURL,
	})

	scheduler := startWorkers(db, container, mailer)

	appHandlers := handlers.NewAppHandlers(validator.New(), container)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	routes.RegisterRoutes(router, appHandlers, wsManager)
	return router, scheduler
}

func startWorkers(db *gorm.DB, container *services.Container, mailer email.Provider) *cron.Cron {
	userRepo := repositories.NewUserRepository(db)
	matchRepo := repositories.NewJobMatchRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	scheduler, err := workers.Start(
		workers.NewGigCleanupWorker(container.ExternalGigs),
		workers.NewDigestWorker(matchRepo, userRepo, mailer),
		workers.NewCleanupWorker(userRepo, notificationRepo),
	)
	if err != nil {
		logger.Fatal("worker registration failed", "error", err)
	}
	logger.Info("background workers started")
	return scheduler
}

// seedFirstAdmin creates the bootstrap admin account when the configured
// credentials do not match an existing user.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("first admin credentials not configured, skipping seed")
		return nil
	}

	var admin models.User
	err := db.Where("email = ?", cfg.FirstAdminEmail).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("admin password hash failed: %w", err)
	}

	admin = models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		UserType:     models.UserTypeAdmin,
		FullName:     "Platform Admin",
		IsActive:     true,
		IsVerified:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("admin creation failed: %w", err)
	}

	logger.Info("first admin user created", "email", cfg.FirstAdminEmail)
	return nil
}
