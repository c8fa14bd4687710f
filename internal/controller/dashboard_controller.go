package controller

import (
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	ProgressService  *service.ProgressService
}

func NewDashboardController(dashboardService *service.DashboardService, progressService *service.ProgressService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		ProgressService:  progressService,
	}
}

// GetStats godoc
// @Summary 仪表盘统计
// @Description 面试总数、平均分、月度提升率、掌握技能数以及最近 5 场面试
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId query string false "未配置数据库时的用户 ID"
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Failure 401 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	dashboard, err := c.DashboardService.GetDashboard(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// GetProgress godoc
// @Summary 学习进度报告
// @Description 总体分数、按前后两半计算的提升率、各能力维度分数
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=stats.ProgressReport}
// @Failure 401 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/progress [get]
func (c *DashboardController) GetProgress(ctx *gin.Context) {
	report, err := c.ProgressService.GetProgress(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
