package api

import (
	"learnhub/api/analytics"
	"learnhub/api/course"
	"learnhub/api/health"
	"learnhub/api/middleware"
	"learnhub/api/notification"
	"learnhub/config"
	"learnhub/domain/user"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine                 *gin.Engine
	config                 *config.Config
	users                  user.Repository
	healthController       *health.Controller
	courseController       *course.Controller
	notificationController *notification.Controller
	analyticsController    *analytics.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	users user.Repository,
	healthController *health.Controller,
	courseController *course.Controller,
	notificationController *notification.Controller,
	analyticsController *analytics.Controller,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before
	// anything logs, recovery wraps everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:                 engine,
		config:                 cfg,
		users:                  users,
		healthController:       healthController,
		courseController:       courseController,
		notificationController: notificationController,
		analyticsController:    analyticsController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	authedGroup := r.engine.Group("/api/v1",
		middleware.AuthMiddleware(r.config.Auth.JWTSecret, r.users))
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.courseController.RegisterRoutes(apiGroup, authedGroup)
		r.notificationController.RegisterRoutes(authedGroup)
		r.analyticsController.RegisterRoutes(authedGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
