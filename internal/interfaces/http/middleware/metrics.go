package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPMetricsRecorder records one finished request
type HTTPMetricsRecorder interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// HTTPMetrics records request count and latency per route pattern.
// A nil recorder yields a pass-through middleware.
func HTTPMetrics(recorder HTTPMetricsRecorder) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// FullPath is the route pattern, which keeps label cardinality bounded
		recorder.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
