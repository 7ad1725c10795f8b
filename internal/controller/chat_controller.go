package controller

import (
	"errors"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	AIService *service.AIService
}

func NewChatController(aiService *service.AIService) *ChatController {
	return &ChatController{AIService: aiService}
}

// Send godoc
// @Summary Send a message to the exam tutor
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ChatRequest true "Message; omit sessionId to start a new conversation"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Send(ctx *gin.Context) {
	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	reply, err := c.AIService.SendMessage(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, reply)
}

// Sessions godoc
// @Summary The caller's tutor conversations
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ChatSession}
// @Router /api/chat/sessions [get]
func (c *ChatController) Sessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sessions, err := c.AIService.ListSessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// Messages godoc
// @Summary Messages in one conversation
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Chat session ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Failure 404 {object} util.Response
// @Router /api/chat/sessions/{id} [get]
func (c *ChatController) Messages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	messages, err := c.AIService.SessionMessages(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, messages)
}

// GenerateTest godoc
// @Summary Draft MCQs with the AI (admin)
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GenerateTestRequest true "Draft parameters"
// @Success 200 {object} util.Response{data=[]service.GeneratedQuestion}
// @Failure 400 {object} util.Response
// @Router /api/admin/ai/generate-test [post]
func (c *ChatController) GenerateTest(ctx *gin.Context) {
	var req service.GenerateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.AIService.GenerateTestDraft(ctx.Request.Context(), &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
