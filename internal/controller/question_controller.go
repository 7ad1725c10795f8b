package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Create godoc
// @Summary Create a question (admin)
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// Update godoc
// @Summary Update a question (admin)
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.Update(uint(id), &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// Delete godoc
// @Summary Delete a question (admin)
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	if err := c.QuestionService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary List questions with filters (admin)
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "Category"
// @Param difficulty query string false "easy|medium|hard"
// @Param type query string false "General|Current Affairs"
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	var query service.ListQuestionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	questions, total, err := c.QuestionService.List(&query)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  query.Page,
		Limit: query.PageSize,
	})
}

// Categories godoc
// @Summary List available categories
// @Tags questions
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/categories [get]
func (c *QuestionController) Categories(ctx *gin.Context) {
	categories, err := c.QuestionService.Categories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// Subcategories godoc
// @Summary List subcategories for a category
// @Tags questions
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/categories/{category}/subcategories [get]
func (c *QuestionController) Subcategories(ctx *gin.Context) {
	subs, err := c.QuestionService.Subcategories(ctx.Param("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// DailyCurrentAffairs godoc
// @Summary Current affairs questions for a date
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} util.Response{data=[]service.LearnerQuestion}
// @Router /api/current-affairs [get]
func (c *QuestionController) DailyCurrentAffairs(ctx *gin.Context) {
	questions, err := c.QuestionService.DailyCurrentAffairs(ctx.Query("date"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
