package app

import (
	"lingua_backend/docs"
	"lingua_backend/internal/config"
	"lingua_backend/internal/middleware"
	"lingua_backend/internal/model"
	"lingua_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 学习进度与考试，学习者只能访问自己的记录
	a.registerResultRoutes(router, c, cfg)

	// 3. 管理后台统计
	a.registerStatsRoutes(router, c, cfg)
}

func (a *App) registerResultRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	results := router.Group("/api/results")
	results.Use(middleware.AuthMiddleware(&cfg.JWT), middleware.LearnerOwnership("learnerId"))
	{
		progress := results.Group("/progress/:learnerId/:courseId")
		{
			progress.GET("", c.progress.GetProgress)
			progress.PUT("/vocabulary", c.progress.UpdateVocabulary)
			progress.PUT("/exercises", c.progress.UpdateExercises)
			progress.POST("/sessions", c.progress.RecordSession)
		}

		results.POST("/exam/:learnerId/:courseId", c.progress.SubmitExam)
	}
}

func (a *App) registerStatsRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	stats := router.Group("/api/stats")
	stats.Use(middleware.AuthMiddleware(&cfg.JWT))
	if cfg.JWT.Enabled {
		stats.Use(middleware.RoleMiddleware(model.Admin))
	}
	{
		stats.GET("/overview", c.stats.Overview)
		stats.GET("/users", c.stats.Learners)
		stats.GET("/users/:learnerId", c.stats.LearnerDetail)
		stats.GET("/courses", c.stats.Courses)
		stats.GET("/activities", c.stats.Activities)
		stats.GET("/timeseries", c.stats.TimeSeries)
		stats.GET("/orphans", c.stats.Orphans)
		stats.GET("/export", c.stats.Export)
	}
}
