package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	BadgeService *service.BadgeService
}

func NewBadgeController(badgeService *service.BadgeService) *BadgeController {
	return &BadgeController{BadgeService: badgeService}
}

// Catalog godoc
// @Summary All badges and how to earn them
// @Tags badges
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/badges [get]
func (c *BadgeController) Catalog(ctx *gin.Context) {
	badges, err := c.BadgeService.ListCatalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// Mine godoc
// @Summary Badges the caller has earned
// @Tags badges
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserBadge}
// @Router /api/badges/mine [get]
func (c *BadgeController) Mine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	earned, err := c.BadgeService.ListEarned(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, earned)
}
