package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/engine"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// Start godoc
// @Summary Start a practice session
// @Description Surface "home" locks each answer on first pick; "category"
// @Description additionally resets XP on a wrong answer.
// @Tags practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartPracticeRequest true "Session parameters"
// @Success 201 {object} util.Response{data=service.SessionState}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "No questions match the filters"
// @Router /api/practice/sessions [post]
func (c *PracticeController) Start(ctx *gin.Context) {
	var req service.StartPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	state, err := c.PracticeService.StartSession(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrEmptyQuestionSet) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, state)
}

// Answer godoc
// @Summary Answer a question in a session
// @Tags practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param body body service.AnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=engine.AnswerOutcome}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Already answered or submitted"
// @Router /api/practice/sessions/{id}/answer [post]
func (c *PracticeController) Answer(ctx *gin.Context) {
	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	outcome, err := c.PracticeService.Answer(claims.UserID, ctx.Param("id"), &req)
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

// State godoc
// @Summary Snapshot of a live session
// @Tags practice
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response{data=service.SessionState}
// @Failure 404 {object} util.Response
// @Router /api/practice/sessions/{id} [get]
func (c *PracticeController) State(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.PracticeService.State(claims.UserID, ctx.Param("id"))
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Goto godoc
// @Summary Move the question pointer
// @Tags practice
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param index query int true "Question index"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/practice/sessions/{id}/goto [post]
func (c *PracticeController) Goto(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Query("index"))
	if err != nil {
		util.BadRequest(ctx, "index must be an integer")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.PracticeService.Goto(claims.UserID, ctx.Param("id"), index); err != nil {
		writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ToggleReview godoc
// @Summary Toggle mark-for-review on a question (exam sessions)
// @Tags practice
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param index query int true "Question index"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/practice/sessions/{id}/review [post]
func (c *PracticeController) ToggleReview(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Query("index"))
	if err != nil {
		util.BadRequest(ctx, "index must be an integer")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.PracticeService.ToggleReview(claims.UserID, ctx.Param("id"), index); err != nil {
		writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Submit godoc
// @Summary Submit a session for scoring
// @Description Idempotent: repeat calls return the stored result. When the
// @Description attempt could not be saved, the response carries a notice and
// @Description the result is still returned.
// @Tags practice
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response{data=service.SubmitResponse}
// @Failure 404 {object} util.Response
// @Router /api/practice/sessions/{id}/submit [post]
func (c *PracticeController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	resp, err := c.PracticeService.Submit(claims.UserID, ctx.Param("id"))
	if err != nil {
		writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// writeSessionError maps engine and store errors onto HTTP statuses.
func writeSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, engine.ErrAlreadySubmitted), errors.Is(err, engine.ErrAlreadyAnswered):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, engine.ErrInvalidOption),
		errors.Is(err, engine.ErrReviewNotAllowed):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
