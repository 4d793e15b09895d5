package api

import (
	"strconv"
	"time"

	"contentpilot/metrics"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware records request counts and durations per route.
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		statusCode := strconv.Itoa(c.Writer.Status())

		metrics.HttpRequestsTotal.WithLabelValues(method, path, statusCode, serviceName).Inc()
		metrics.HttpRequestDuration.WithLabelValues(method, path, serviceName).Observe(time.Since(start).Seconds())
	}
}
