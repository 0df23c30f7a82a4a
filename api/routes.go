package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/podbrief/summary-api/api/budget"
	"github.com/podbrief/summary-api/api/health"
	"github.com/podbrief/summary-api/api/metadata"
	"github.com/podbrief/summary-api/api/summaries"
	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/api/version"
	_ "github.com/podbrief/summary-api/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Summary routes get tight limits: each accepted job fans out into
	// provider calls that cost real money (2 req/s, burst of 5)
	summariesGroup := v1.Group("/summaries")
	summariesGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	summaries.RegisterRoutes(summariesGroup, deps)

	// Metadata lookups hit external providers, moderate limits (5 req/s, burst of 10)
	metadataGroup := v1.Group("/metadata")
	metadataGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	metadata.RegisterRoutes(metadataGroup, deps)

	// Budget status and estimates are cheap reads (10 req/s, burst of 20)
	budgetGroup := v1.Group("/budget")
	budgetGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	budget.RegisterRoutes(budgetGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
