package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires all HTTP endpoints onto the router.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		search := apiGroup.Group("/search")
		{
			search.GET("", handler.Search)
			search.GET("/stats", handler.Stats)
		}

		sync := apiGroup.Group("/sync")
		{
			sync.POST("", handler.Sync)
			sync.GET("/status", handler.SyncStatus)
		}
	}
}
