package middleware

import (
	"time"

	"storesync/internal/logger"

	"github.com/gin-gonic/gin"
)

func Logger(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		if status >= 500 {
			logger.Error("%s %s %d %s %s", c.Request.Method, path, status, latency, c.ClientIP())
			return
		}
		logger.Debug("%s %s %d %s %s", c.Request.Method, path, status, latency, c.ClientIP())
	}
}
