package controller

import (
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// Top godoc
// @Summary XP leaderboard
// @Tags leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Rows" default(20)
// @Param period query string false "all|weekly" default(all)
// @Success 200 {object} util.Response{data=[]service.RankedUser}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	weekly := ctx.DefaultQuery("period", "all") == "weekly"

	ranked, err := c.LeaderboardService.Top(ctx.Request.Context(), limit, weekly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ranked)
}

// MyRank godoc
// @Summary The caller's rank and XP
// @Tags leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.RankedUser}
// @Router /api/leaderboard/me [get]
func (c *LeaderboardController) MyRank(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	row, err := c.LeaderboardService.MyRank(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, row)
}
