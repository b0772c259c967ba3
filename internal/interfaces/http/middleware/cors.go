package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/constants"
)

// CORS reflects the request origin with credentials allowed. It runs behind
// OriginGuard, so every origin that reaches it is already accepted.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader(constants.HeaderOrigin)
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, DELETE, PATCH, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityHeaders sets the usual hardening headers. No Content-Security-Policy
// is sent: the frontend bundle sets its own.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("X-Download-Options", "noopen")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Origin-Agent-Cluster", "?1")
		c.Header("Strict-Transport-Security", "max-age=15552000; includeSubDomains")

		c.Next()
	}
}
