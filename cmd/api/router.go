package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"species-catalog/internal/shared/middleware"
	"species-catalog/internal/shared/response"
	"species-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(c.Metrics),
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Metrics.Registry(), promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		auth := middleware.AuthMiddleware(c.JWTManager)

		setupAuthRoutes(v1, c)
		setupSpeciesRoutes(v1, c, auth)
		setupSessionRoutes(v1, c, auth)
		setupChatRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// SPECIES ROUTES
// ========================================
func setupSpeciesRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	species := v1.Group("/species")
	{
		// Public
		species.GET("", c.SpeciesHandler.List)
		species.GET("/:id", c.SpeciesHandler.GetByID)

		// Author only
		species.POST("", auth, c.SpeciesHandler.Create)
		species.PUT("/:id", auth, c.SpeciesHandler.Update)
		species.DELETE("/:id", auth, c.SpeciesHandler.Delete)
		species.POST("/:id/edit-sessions", auth, c.SessionHandler.Open)
	}
}

// ========================================
// EDIT SESSION ROUTES
// ========================================
func setupSessionRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	sessions := v1.Group("/edit-sessions/:sid", auth)
	{
		sessions.GET("", c.SessionHandler.Get)
		sessions.DELETE("", c.SessionHandler.Close)
		sessions.POST("/edit", c.SessionHandler.BeginEdit)
		sessions.PUT("/draft", c.SessionHandler.SetDraft)
		sessions.POST("/submit", c.SessionHandler.Submit)
		sessions.POST("/discard", c.SessionHandler.RequestDiscard)
		sessions.POST("/delete", c.SessionHandler.RequestDelete)
		sessions.POST("/confirm", c.SessionHandler.Confirm)
	}
}

// ========================================
// CHAT ROUTES
// ========================================
func setupChatRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/chat", c.ChatHandler.Chat)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"database": "ok",
			"cache":    "ok",
			"chat":     c.Config.ChatEnabled(),
		}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unavailable", status)
			return
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			status["cache"] = err.Error()
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
