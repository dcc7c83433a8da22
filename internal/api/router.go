package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KushalZanzari/Echo-AI/internal/api/account"
	"github.com/KushalZanzari/Echo-AI/internal/api/assistant"
	"github.com/KushalZanzari/Echo-AI/internal/api/middleware"
	"github.com/KushalZanzari/Echo-AI/internal/api/workspace"
	"github.com/KushalZanzari/Echo-AI/internal/config"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	RateLimit config.RateLimitConfig
}

// SetupRouter sets up the Gin router
func SetupRouter(
	accountHandler *account.Handler,
	assistantHandler *assistant.Handler,
	workspaceHandler *workspace.Handler,
	verifier middleware.TokenVerifier,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth API (public)
	authGroup := r.Group("/api/auth")
	accountHandler.RegisterRoutes(authGroup)

	// Completion proxy and extraction (public, rate limited)
	proxyGroup := r.Group("/api")
	if cfg.RateLimit.Enabled {
		proxyGroup.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerHour))
	}
	assistantHandler.RegisterRoutes(proxyGroup)

	// Session workspace (requires a signed-in user)
	workspaceGroup := r.Group("/api")
	workspaceGroup.Use(middleware.Auth(verifier))
	workspaceHandler.RegisterRoutes(workspaceGroup)

	return r
}
