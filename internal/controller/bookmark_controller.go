package controller

import (
	"errors"
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	BookmarkService *service.BookmarkService
}

func NewBookmarkController(bookmarkService *service.BookmarkService) *BookmarkController {
	return &BookmarkController{BookmarkService: bookmarkService}
}

// Toggle godoc
// @Summary Toggle a bookmark on a question
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/bookmarks/{questionId} [post]
func (c *BookmarkController) Toggle(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	bookmarked, err := c.BookmarkService.Toggle(claims.UserID, uint(questionID))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"bookmarked": bookmarked})
}

// List godoc
// @Summary The caller's bookmarked questions
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/bookmarks [get]
func (c *BookmarkController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	claims := util.GetUserFromContext(ctx)
	bookmarks, total, err := c.BookmarkService.List(claims.UserID, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  bookmarks,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}
