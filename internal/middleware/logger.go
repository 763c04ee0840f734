package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/pkg/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString(ContextRequestID),
			"client_ip":  c.ClientIP(),
		})
	}
}
