package controller

import (
	"context"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 3 * time.Second

type HealthController struct {
	Store       repository.InterviewStore
	Cache       *repository.QuestionCache
	AuthService *service.AuthService
	// FFmpegVersion 为空表示未检测
	FFmpegVersion func() (string, error)
}

func NewHealthController(store repository.InterviewStore, cache *repository.QuestionCache, authService *service.AuthService) *HealthController {
	return &HealthController{
		Store:         store,
		Cache:         cache,
		AuthService:   authService,
		FFmpegVersion: util.GetFFmpegVersion,
	}
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 检查数据库、Redis 与 ffmpeg 状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), probeTimeout)
	defer cancel()

	components := gin.H{}
	healthy := true

	switch {
	case !c.Store.Configured():
		components["database"] = "not_configured"
	case c.Store.Ping(probeCtx) != nil:
		components["database"] = "down"
		healthy = false
	default:
		components["database"] = "up"
	}

	switch {
	case !c.Cache.Enabled():
		components["redis"] = "disabled"
	case c.Cache.Ping(probeCtx) != nil:
		// 缓存故障不计入整体状态
		components["redis"] = "down"
	default:
		components["redis"] = "up"
	}

	if c.FFmpegVersion != nil {
		if _, err := c.FFmpegVersion(); err != nil {
			components["ffmpeg"] = "unavailable"
		} else {
			components["ffmpeg"] = "available"
		}
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Database unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}

// TestConnection godoc
// @Summary 数据库连通性测试
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/test-connection [get]
func (c *HealthController) TestConnection(ctx *gin.Context) {
	if !c.Store.Configured() {
		util.Success(ctx, gin.H{
			"connected": false,
			"message":   "Database client not initialized",
			"checkEnv":  "Verify DATABASE_DRIVER and the DATABASE_* settings in .env.local",
		})
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), probeTimeout)
	defer cancel()

	if err := c.Store.Ping(probeCtx); err != nil {
		util.Success(ctx, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	util.Success(ctx, gin.H{
		"connected": true,
		"message":   "Successfully connected to database",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// AuthTest godoc
// @Summary 认证连通性测试
// @Description 未携带令牌时仅测试数据库；携带令牌时同时校验令牌并查询该用户的面试
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth-test [get]
func (c *HealthController) AuthTest(ctx *gin.Context) {
	if !c.Store.Configured() {
		util.Success(ctx, gin.H{
			"connected": false,
			"message":   "Database client not initialized",
		})
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), probeTimeout)
	defer cancel()

	if err := c.Store.Ping(probeCtx); err != nil {
		util.Success(ctx, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		util.Success(ctx, gin.H{
			"connected": true,
			"message":   "Database connection successful (no auth)",
			"needsAuth": true,
		})
		return
	}

	claims, err := c.AuthService.Authenticate(authHeader)
	if err != nil {
		util.Success(ctx, gin.H{
			"connected":     true,
			"authenticated": false,
			"error":         "Invalid token",
			"message":       "Database connected but authentication failed",
		})
		return
	}

	interviews, err := c.Store.ListByUser(probeCtx, claims.UserID, repository.InterviewQuery{Limit: 1})
	if err != nil {
		util.Success(ctx, gin.H{
			"connected":     true,
			"authenticated": true,
			"userId":        claims.UserID,
			"error":         err.Error(),
		})
		return
	}

	util.Success(ctx, gin.H{
		"connected":     true,
		"authenticated": true,
		"userId":        claims.UserID,
		"hasInterviews": len(interviews) > 0,
		"message":       "Authenticated connection successful",
	})
}
