package router

import (
	"net/http"

	"github.com/dnpham/sketch2mesh-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	convertHandler := handler.NewConvertHandler(deps)

	// Health check / readiness probe
	r.GET("/health", convertHandler.Health)

	// Root endpoint with service metadata
	r.GET("/", func(c *gin.Context) {
		status := "healthy"
		if !deps.Ready.Load() {
			status = "initializing"
		}
		c.JSON(http.StatusOK, gin.H{
			"service": deps.AppName,
			"status":  status,
			"version": deps.AppVersion,
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		convert := v1.Group("/convert")
		{
			// POST /api/v1/convert - Submit a sketch for conversion
			convert.POST("", convertHandler.Convert)

			// GET /api/v1/convert/:mesh_id/status - Poll conversion progress
			convert.GET("/:mesh_id/status", convertHandler.GetStatus)

			// GET /api/v1/convert/:mesh_id/download - Download the GLB artifact
			convert.GET("/:mesh_id/download", convertHandler.Download)
		}
	}

	return r
}
