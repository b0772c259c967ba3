package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/constants"
	"hungrylist/internal/shared/logger"
)

// Logger writes one line per request. Health probes are not logged.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if c.Request.URL.Path == constants.HealthPath {
			return
		}

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		if requestID := c.GetHeader(constants.HeaderXRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.Last().Error())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("http_request", args...)
		case status >= 400:
			log.Warnw("http_request", args...)
		default:
			log.Infow("http_request", args...)
		}
	}
}
