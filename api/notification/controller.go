// Package notification - notification feed API controller
package notification

import (
	"net/http"

	"learnhub/api/ctxutil"
	"learnhub/api/middleware"
	"learnhub/api/response"
	notificationapp "learnhub/application/notification"
	"learnhub/domain/user"
	"learnhub/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller notification controller
type Controller struct {
	notificationService *notificationapp.ApplicationService
}

// NewController create notification controller
func NewController(notificationService *notificationapp.ApplicationService) *Controller {
	return &Controller{
		notificationService: notificationService,
	}
}

// RegisterRoutes register notification routes (admins and tutors)
func (c *Controller) RegisterRoutes(authed *gin.RouterGroup) {
	group := authed.Group("/notifications", middleware.RequireRoles(user.RoleAdmin, user.RoleTutor))
	{
		group.GET("", c.GetAll)
		group.PUT("/:id", c.MarkRead)
	}
}

// GetAll the requester's notifications, newest first
// GET /api/v1/notifications
func (c *Controller) GetAll(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	notifications, err := c.notificationService.GetAll(ctxutil.WithRequestID(ctx), identity.ID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, notifications, "notifications retrieved successfully")
}

// MarkRead flip one of the requester's notifications to read
// PUT /api/v1/notifications/:id
func (c *Controller) MarkRead(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	id := ctx.Param("id")
	if id == "" {
		response.HandleError(ctx, errors.BadRequest("notification ID is required"), "notification ID is required", http.StatusBadRequest)
		return
	}

	n, err := c.notificationService.MarkRead(ctxutil.WithRequestID(ctx), identity.ID, id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, n, "notification updated successfully")
}
