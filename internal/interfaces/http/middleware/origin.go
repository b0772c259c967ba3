package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/constants"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/utils"
)

// OriginGuard admits requests that carry no Origin header, an allowlisted
// origin, or the origin of the host they were sent to. Everything else is
// rejected with ORIGIN_NOT_ALLOWED. Forwarded host and protocol headers
// are honoured only when trustProxy is set.
func OriginGuard(allowedOrigins []string, trustProxy bool) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader(constants.HeaderOrigin)
		if origin == "" {
			c.Next()
			return
		}
		if _, ok := allowed[origin]; ok {
			c.Next()
			return
		}
		if isSameOrigin(c, origin, trustProxy) {
			c.Next()
			return
		}

		utils.AbortWithError(c, errors.NewForbiddenError(errors.CodeForbidden, "Request origin is not allowed."))
	}
}

func isSameOrigin(c *gin.Context, origin string, trustProxy bool) bool {
	host := c.Request.Host
	protocol := "http"
	if c.Request.TLS != nil {
		protocol = "https"
	}

	if trustProxy {
		if forwardedHost := firstHeaderValue(c.GetHeader(constants.HeaderXForwardedHost)); forwardedHost != "" {
			host = forwardedHost
		}
		if forwardedProto := firstHeaderValue(c.GetHeader(constants.HeaderXForwardedProt)); forwardedProto != "" {
			protocol = forwardedProto
		}
	}

	if host == "" {
		return false
	}
	return origin == protocol+"://"+host
}

func firstHeaderValue(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.TrimSpace(first)
}
