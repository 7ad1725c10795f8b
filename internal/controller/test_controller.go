package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// Create godoc
// @Summary Create a mock test (admin)
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateTestRequest true "Test definition"
// @Success 201 {object} util.Response{data=model.MockTest}
// @Failure 400 {object} util.Response
// @Router /api/admin/tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	var req service.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	test, err := c.TestService.Create(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, test)
}

// Publish godoc
// @Summary Publish a mock test (admin)
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/tests/{id}/publish [post]
func (c *TestController) Publish(ctx *gin.Context) {
	if err := c.TestService.Publish(ctx.Param("id")); err != nil {
		writeTestError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete a mock test (admin)
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/tests/{id} [delete]
func (c *TestController) Delete(ctx *gin.Context) {
	if err := c.TestService.Delete(ctx.Param("id")); err != nil {
		writeTestError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary List published mock tests
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "Category"
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tests [get]
func (c *TestController) List(ctx *gin.Context) {
	var query service.ListTestsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	includeUnpublished := claims != nil && claims.Role == model.Admin
	tests, total, err := c.TestService.List(&query, includeUnpublished)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  tests,
		Total: total,
		Page:  query.Page,
		Limit: query.PageSize,
	})
}

// Get godoc
// @Summary Mock test details
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=model.MockTest}
// @Failure 404 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	includeUnpublished := claims != nil && claims.Role == model.Admin
	test, err := c.TestService.Get(ctx.Param("id"), includeUnpublished)
	if err != nil {
		writeTestError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// Start godoc
// @Summary Start a timed exam session for a test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 201 {object} util.Response{data=service.SessionState}
// @Failure 404 {object} util.Response
// @Router /api/tests/{id}/start [post]
func (c *TestController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.TestService.StartExam(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		writeTestError(ctx, err)
		return
	}
	util.Created(ctx, state)
}

// Attempt godoc
// @Summary One attempt's scored result
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=model.TestAttempt}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *TestController) Attempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.TestService.Attempt(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

// History godoc
// @Summary The caller's attempt history
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/attempts [get]
func (c *TestController) History(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	claims := util.GetUserFromContext(ctx)
	attempts, total, err := c.TestService.AttemptHistory(claims.UserID, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  attempts,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}

func writeTestError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTestNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrTestNotPublished):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrEmptyQuestionSet):
		util.Error(ctx, 404, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
