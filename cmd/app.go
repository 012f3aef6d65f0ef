// Package cmd - application assembly and lifecycle
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/api"
	apianalytics "learnhub/api/analytics"
	apicourse "learnhub/api/course"
	"learnhub/api/health"
	apinotification "learnhub/api/notification"
	analyticsapp "learnhub/application/analytics"
	courseapp "learnhub/application/course"
	notificationapp "learnhub/application/notification"
	"learnhub/config"
	"learnhub/domain/notification"
	"learnhub/infrastructure/cache"
	"learnhub/infrastructure/email"
	"learnhub/infrastructure/persistence"
	"learnhub/infrastructure/persistence/mysql"
	"learnhub/infrastructure/persistence/retry"
	"learnhub/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// readNotificationRetention how long read notifications are kept before
// the janitor prunes them
const readNotificationRetention = 30 * 24 * time.Hour

// App Application structure
type App struct {
	cfg           *config.Config
	router        *api.Router
	db            *gorm.DB
	redisClient   *redis.Client
	notifications notification.Repository

	janitorStop chan struct{}
}

// NewApp Create the application: config, logger, stores, services,
// controllers, routes
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	// Durable store
	dbConfig := mysql.FromAppConfig(cfg)
	db, err := dbConfig.Connect()
	if err != nil {
		return nil, err
	}

	// Cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	courseCache := cache.NewCourseStore(cache.NewRedisKV(redisClient), cfg.Cache.TTL)

	// Repositories
	retryCfg := retry.FromAppConfig(cfg)
	courseRepo := mysql.NewCourseRepository(db, retryCfg)
	userRepo := mysql.NewUserRepository(db)
	notificationRepo := mysql.NewNotificationRepository(db)
	analyticsRepo := mysql.NewAnalyticsRepository(db)
	transactor := persistence.NewGormTransactor(db)

	// Outbound mail
	mailer, err := email.NewSendGridSender(cfg.Mail)
	if err != nil {
		return nil, err
	}

	// Application services
	courseService := courseapp.NewApplicationService(
		courseRepo, userRepo, courseCache, notificationRepo, mailer, transactor)
	notificationService := notificationapp.NewApplicationService(notificationRepo)
	analyticsService := analyticsapp.NewApplicationService(analyticsRepo)

	// Controllers
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	healthController := health.NewController(cfg, sqlDB, redisClient)
	courseController := apicourse.NewController(courseService)
	notificationController := apinotification.NewController(notificationService)
	analyticsController := apianalytics.NewController(analyticsService)

	router := api.NewRouter(cfg, userRepo,
		healthController, courseController, notificationController, analyticsController)
	router.SetupRoutes()

	return &App{
		cfg:           cfg,
		router:        router,
		db:            db,
		redisClient:   redisClient,
		notifications: notificationRepo,
		janitorStop:   make(chan struct{}),
	}, nil
}

// Run Start the HTTP server and the background janitor; block until a
// shutdown signal, then drain gracefully
func (a *App) Run() error {
	server := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      a.router.GetEngine(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	go a.runNotificationJanitor()

	go func() {
		logger.Info("Server starting", zap.String("port", a.cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	close(a.janitorStop)

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := a.redisClient.Close(); err != nil {
		logger.Warn("Failed to close redis client", zap.Error(err))
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	return logger.Sync()
}

// runNotificationJanitor periodically prunes read notifications older
// than the retention window
func (a *App) runNotificationJanitor() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			cutoff := time.Now().Add(-readNotificationRetention)
			removed, err := a.notifications.DeleteReadOlderThan(ctx, cutoff)
			cancel()
			if err != nil {
				logger.Warn("Notification janitor run failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("Pruned read notifications", zap.Int64("removed", removed))
			}
		case <-a.janitorStop:
			return
		}
	}
}
