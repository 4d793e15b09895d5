package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the banner and health check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/", handleRoot)
	r.GET("/api/health", handleHealth)
}

// RegisterMetricsRoutes exposes Prometheus metrics.
func RegisterMetricsRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ContentPilot AI backend is running!"})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
