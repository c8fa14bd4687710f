package middleware

import (
	"errors"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextUserIDKey = "userID"

// AuthMiddleware 必须携带有效的 Bearer 令牌
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// IdentityMiddleware 配置了数据库时等同 AuthMiddleware；
// 未配置时依次取有效令牌、?userId、X-User-Id，最后退回演示用户。
func IdentityMiddleware(auth *service.AuthService, configured bool) gin.HandlerFunc {
	if configured {
		return AuthMiddleware(auth)
	}

	return func(c *gin.Context) {
		if claims, err := auth.Authenticate(c.GetHeader("Authorization")); err == nil {
			c.Set(util.ContextUserKey, claims)
			c.Set(ContextUserIDKey, claims.UserID)
			c.Next()
			return
		}

		userID := strings.TrimSpace(c.Query("userId"))
		if userID == "" {
			userID = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if userID == "" {
			userID = util.DemoUserID
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 由上述中间件写入
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

func abortUnauthorized(c *gin.Context, err error) {
	if errors.Is(err, util.ErrUnauthenticated) {
		util.Unauthorized(c, "No authorization token provided")
	} else {
		logger.Log.Debug("Token rejected", zap.String("path", c.FullPath()), zap.Error(err))
		util.Unauthorized(c, "Invalid or expired token")
	}
	c.Abort()
}
