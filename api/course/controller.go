/*
Package course - course API controller

Responsibilities:
 1. Receive HTTP requests and bind parameters
 2. Resolve the authenticated identity from middleware
 3. Call the application service and let the response package map
    errors and status codes

Visibility rules live here as route wiring: the public catalog needs no
identity, content access needs one, lifecycle and dashboards are gated
by role.
*/
package course

import (
	"net/http"

	"learnhub/api/ctxutil"
	"learnhub/api/middleware"
	"learnhub/api/response"
	courseapp "learnhub/application/course"
	"learnhub/domain/user"
	"learnhub/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller course controller
type Controller struct {
	courseService *courseapp.ApplicationService
}

// NewController create course controller
func NewController(courseService *courseapp.ApplicationService) *Controller {
	return &Controller{
		courseService: courseService,
	}
}

// RegisterRoutes register course routes
func (c *Controller) RegisterRoutes(public, authed *gin.RouterGroup) {
	publicGroup := public.Group("/courses")
	{
		publicGroup.GET("", c.GetCatalog)
		publicGroup.GET("/:id", c.GetSingle)
	}

	authedGroup := authed.Group("/courses")
	{
		authedGroup.GET("/:id/content", c.GetContent)
		authedGroup.PUT("/question", c.AddQuestion)
		authedGroup.PUT("/answer", c.AddAnswer)
		authedGroup.PUT("/review", c.AddReview)
		authedGroup.PUT("/review-reply", middleware.RequireRoles(user.RoleAdmin, user.RoleTutor), c.AddReviewReply)

		authedGroup.POST("", middleware.RequireRoles(user.RoleAdmin, user.RoleTutor), c.Create)
		authedGroup.PUT("/:id", middleware.RequireRoles(user.RoleAdmin, user.RoleTutor), c.Edit)
		authedGroup.DELETE("/:id", middleware.RequireRoles(user.RoleAdmin), c.Delete)

		authedGroup.GET("/all", middleware.RequireRoles(user.RoleAdmin), c.ListAll)
		authedGroup.GET("/owned", middleware.RequireRoles(user.RoleTutor), c.ListOwned)
	}
}

// GetCatalog approved courses, public shape
// GET /api/v1/courses
func (c *Controller) GetCatalog(ctx *gin.Context) {
	courses, err := c.courseService.GetAll(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, courses, "courses retrieved successfully")
}

// GetSingle one course, public shape, cache-aside
// GET /api/v1/courses/:id
func (c *Controller) GetSingle(ctx *gin.Context) {
	courseID := ctx.Param("id")
	if courseID == "" {
		response.HandleError(ctx, errors.BadRequest("course ID is required"), "course ID is required", http.StatusBadRequest)
		return
	}

	course, err := c.courseService.GetSingle(ctxutil.WithRequestID(ctx), courseID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "course retrieved successfully")
}

// GetContent the full course content, enrolled requesters only
// GET /api/v1/courses/:id/content
func (c *Controller) GetContent(ctx *gin.Context) {
	courseID := ctx.Param("id")
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.GetByUser(ctxutil.WithRequestID(ctx), identity, courseID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "course content retrieved successfully")
}

// Create create a course
// POST /api/v1/courses
func (c *Controller) Create(ctx *gin.Context) {
	var req courseapp.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.Create(ctxutil.WithRequestID(ctx), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, course, "course created successfully")
}

// Edit partial edit, optionally with a status transition
// PUT /api/v1/courses/:id
func (c *Controller) Edit(ctx *gin.Context) {
	courseID := ctx.Param("id")
	var req courseapp.EditCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.Edit(ctxutil.WithRequestID(ctx), identity, courseID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "course updated successfully")
}

// Delete delete an unpurchased course with its reference cascade
// DELETE /api/v1/courses/:id
func (c *Controller) Delete(ctx *gin.Context) {
	courseID := ctx.Param("id")
	if err := c.courseService.Delete(ctxutil.WithRequestID(ctx), courseID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "course deleted successfully")
}

// ListAll every course, admin dashboard
// GET /api/v1/courses/all
func (c *Controller) ListAll(ctx *gin.Context) {
	courses, err := c.courseService.ListAll(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, courses, "courses retrieved successfully")
}

// ListOwned the requester's courses, tutor dashboard
// GET /api/v1/courses/owned
func (c *Controller) ListOwned(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	courses, err := c.courseService.ListOwned(ctxutil.WithRequestID(ctx), identity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, courses, "courses retrieved successfully")
}

// AddQuestion ask a question under a content item
// PUT /api/v1/courses/question
func (c *Controller) AddQuestion(ctx *gin.Context) {
	var req courseapp.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.AddQuestion(ctxutil.WithRequestID(ctx), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "question added successfully")
}

// AddAnswer answer a question
// PUT /api/v1/courses/answer
func (c *Controller) AddAnswer(ctx *gin.Context) {
	var req courseapp.AddAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.AddAnswer(ctxutil.WithRequestID(ctx), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "answer added successfully")
}

// AddReview review a course (enrolled learners only)
// PUT /api/v1/courses/review
func (c *Controller) AddReview(ctx *gin.Context) {
	var req courseapp.AddReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.AddReview(ctxutil.WithRequestID(ctx), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "review added successfully")
}

// AddReviewReply reply under a review
// PUT /api/v1/courses/review-reply
func (c *Controller) AddReviewReply(ctx *gin.Context) {
	var req courseapp.AddReviewReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("missing identity"))
		return
	}

	course, err := c.courseService.AddReviewReply(ctxutil.WithRequestID(ctx), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, course, "reply added successfully")
}
