package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pressroom-backend/internal/shared/middleware"
	"pressroom-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupSiteRoutes(v1, c)
		setupContentRoutes(v1, c)
		setupPublishRoutes(v1, c)
	}

	return router
}

func setupSiteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	sites := v1.Group("/sites")
	sites.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		sites.POST("/sync", c.SiteHandler.Sync)
		sites.GET("", c.SiteHandler.List)
		sites.GET("/:id", c.SiteHandler.Get)
		sites.POST("/:id/reload", c.SiteHandler.Reload)
		sites.GET("/:id/connectivity", c.SiteHandler.Connectivity)
		sites.POST("/:id/tags", c.SiteHandler.CreateTag)
	}
}

func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	ideas := v1.Group("/ideas")
	ideas.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		ideas.POST("", c.ContentHandler.CreateIdea)
		ideas.GET("", c.ContentHandler.ListIdeas)
		ideas.GET("/:id", c.ContentHandler.GetIdea)
		ideas.DELETE("/:id", c.ContentHandler.DeleteIdea)
		ideas.POST("/:id/produce", c.ContentHandler.ProduceArticle)
	}

	articles := v1.Group("/articles")
	articles.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		articles.GET("", c.ContentHandler.ListArticles)
		articles.GET("/:id", c.ContentHandler.GetArticle)
	}

	plan := v1.Group("/plan")
	plan.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		plan.GET("/usage", c.ContentHandler.Usage)
	}
}

func setupPublishRoutes(v1 *gin.RouterGroup, c *container.Container) {
	articles := v1.Group("/articles")
	articles.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		articles.POST("/:id/publish", c.PublishHandler.Publish)
		articles.POST("/:id/schedule", c.PublishHandler.Schedule)
	}

	scheduled := v1.Group("/scheduled-posts")
	scheduled.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		scheduled.GET("", c.PublishHandler.ListScheduled)
	}

	media := v1.Group("/media")
	media.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		media.POST("/staging", c.MediaHandler.Upload)
		media.DELETE("/staging", c.MediaHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisStatus := "ok"
		status := "ok"
		statusCode := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		storageStatus := "ok"
		if appCtx.Storage == nil {
			storageStatus = "disabled"
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"redis":   redisStatus,
				"storage": storageStatus,
			},
		})
	}
}
