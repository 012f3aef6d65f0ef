// Package analytics - dashboard analytics API controller
package analytics

import (
	"learnhub/api/ctxutil"
	"learnhub/api/middleware"
	"learnhub/api/response"
	analyticsapp "learnhub/application/analytics"
	"learnhub/domain/user"
	"learnhub/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller analytics controller
type Controller struct {
	analyticsService *analyticsapp.ApplicationService
}

// NewController create analytics controller
func NewController(analyticsService *analyticsapp.ApplicationService) *Controller {
	return &Controller{
		analyticsService: analyticsService,
	}
}

// RegisterRoutes register analytics routes. Admins see global numbers,
// tutors their own audience; the scoping happens in the domain, the
// route only gates who may ask.
func (c *Controller) RegisterRoutes(authed *gin.RouterGroup) {
	group := authed.Group("/analytics", middleware.RequireRoles(user.RoleAdmin, user.RoleTutor))
	{
		group.GET("/users", c.UserSeries)
		group.GET("/courses", c.CourseSeries)
		group.GET("/orders", c.OrderSeries)
	}
}

// UserSeries GET /api/v1/analytics/users
func (c *Controller) UserSeries(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	series, err := c.analyticsService.UserSeries(ctxutil.WithRequestID(ctx), identity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, series, "user analytics retrieved successfully")
}

// CourseSeries GET /api/v1/analytics/courses
func (c *Controller) CourseSeries(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	series, err := c.analyticsService.CourseSeries(ctxutil.WithRequestID(ctx), identity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, series, "course analytics retrieved successfully")
}

// OrderSeries GET /api/v1/analytics/orders
func (c *Controller) OrderSeries(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	series, err := c.analyticsService.OrderSeries(ctxutil.WithRequestID(ctx), identity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, series, "order analytics retrieved successfully")
}
