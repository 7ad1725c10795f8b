package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	NewsService *service.NewsService
}

func NewNewsController(newsService *service.NewsService) *NewsController {
	return &NewsController{NewsService: newsService}
}

// Daily godoc
// @Summary Cached current-affairs headlines
// @Tags news
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.NewsArticle}
// @Failure 502 {object} util.Response "Upstream news API unavailable"
// @Router /api/news [get]
func (c *NewsController) Daily(ctx *gin.Context) {
	articles, err := c.NewsService.DailyDigest(ctx.Request.Context())
	if err != nil {
		util.Error(ctx, 502, "news provider unavailable")
		return
	}
	util.Success(ctx, articles)
}
