package app

import (
	"lesson_quiz_backend/docs"
	"lesson_quiz_backend/internal/util"
	"lesson_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.NoMethod(util.MethodNotAllowed)
	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx)
	})

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/generate", c.lesson.Generate)
	}
}
