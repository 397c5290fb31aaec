package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ojayWillow/latvian-price-scraper/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.Server.RatePerIP))
	{
		v1.GET("/products", handler.ListProducts)
		v1.POST("/products", handler.IngestProducts)
		v1.GET("/comparison", handler.GetComparison)
	}

	return router
}
