package app

import (
	"time"

	"skill_matrix_backend/docs"
	"skill_matrix_backend/internal/config"
	"skill_matrix_backend/internal/middleware"
	"skill_matrix_backend/internal/util"
	"skill_matrix_backend/pkg/monitoring"
	"skill_matrix_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. no login required
	a.registerPublicRoutes(router, c, cfg)

	// 2. bearer token required
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAssessmentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	link := router.Group("/api/public/test/:assessmentId")
	link.Use(security.RateLimiter(cfg.RateLimit.PublicMaxRequests, window))
	{
		link.GET("", c.publicTest.Get)
		link.POST("/start", c.publicTest.Start)
		link.POST("/answer", c.publicTest.SubmitAnswer)
		link.POST("/submit", c.publicTest.Submit)
		link.GET("/result", c.publicTest.Result)
	}
}

func (a *App) registerAssessmentRoutes(group *gin.RouterGroup, c *controllers) {
	assessments := group.Group("/assessments")
	{
		assessments.POST("/start", c.assessment.Start)
		assessments.POST("/answer", c.assessment.SubmitAnswer)
		assessments.GET("/employee/:employeeId", c.assessment.ListByEmployee)
		assessments.GET("/available/:employeeId", c.assessment.AvailableTests)
		assessments.GET("/:id", c.assessment.Get)
		assessments.GET("/:id/continue", c.assessment.Continue)
		assessments.POST("/:id/submit", c.assessment.Submit)
		assessments.GET("/:id/result", c.assessment.Result)
	}

	grading := group.Group("/assessments")
	grading.Use(middleware.RoleMiddleware(util.RoleGrader))
	{
		grading.POST("/assign", c.assessment.Assign)
		grading.PUT("/:id/responses/:questionId/grade", c.assessment.GradeResponse)
	}
}
