package middleware

import (
	"strconv"
	"time"

	"storesync/internal/metrics"

	"github.com/gin-gonic/gin"
)

const notFoundPath = "/not-found"

// Metrics records request latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// unmatched paths collapse to one label value
		path := c.FullPath()
		if path == "" {
			path = notFoundPath
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
