package app

import (
	"mock_interview_backend/docs"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要身份的路由，未配置数据库时允许演示用户
	identity := router.Group("/api")
	identity.Use(middleware.IdentityMiddleware(a.services.auth, a.Store.Configured()))
	{
		a.registerDashboardRoutes(identity, c)
		a.registerInterviewRoutes(identity, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/test-connection", c.health.TestConnection)
		public.GET("/auth-test", c.health.AuthTest)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/profile", middleware.AuthMiddleware(a.services.auth), c.auth.Profile)
	}
}

func (a *App) registerDashboardRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/dashboard/stats", c.dashboard.GetStats)
	group.GET("/progress", c.dashboard.GetProgress)
}

func (a *App) registerInterviewRoutes(group *gin.RouterGroup, c *controllers) {
	interviews := group.Group("/interviews")
	{
		interviews.GET("", c.interview.ListInterviews)
		interviews.POST("", c.interview.CreateInterview)
		interviews.GET("/:id", c.interview.GetInterview)
		interviews.POST("/:id/start", c.interview.StartInterview)
		interviews.POST("/:id/complete", c.interview.CompleteInterview)
		interviews.POST("/:id/questions/:questionId/answer", c.interview.SubmitAnswer)
		interviews.POST("/:id/questions/:questionId/recording", c.interview.UploadRecording)
	}

	group.POST("/questions/generate", c.question.GenerateQuestions)
	group.POST("/evaluation", c.question.Evaluate)
	group.POST("/resumes", c.resume.UploadResume)
}
