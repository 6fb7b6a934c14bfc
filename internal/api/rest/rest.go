package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/premintlabs/premintpool/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Premint submission (requires authentication)
		v1.POST("/premints", middleware.Auth(authCfg), handler.SubmitPremint)

		// Premint endpoints (public read access)
		v1.GET("/premints", handler.ListPremints)
		v1.GET("/premints/:kind/:id", handler.GetPremint)
	}
}
