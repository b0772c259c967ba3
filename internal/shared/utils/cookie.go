package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/config"
)

// SessionCookieSecure reports whether the session cookie gets the Secure
// flag: always when configured, otherwise only for TLS requests (directly
// or as reported by a trusted proxy).
func SessionCookieSecure(c *gin.Context, cfg config.CookieConfig, trustProxy bool) bool {
	if cfg.Secure || c.Request.TLS != nil {
		return true
	}
	return trustProxy && strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}

// SetSessionCookie writes the HttpOnly session cookie with the given
// lifetime.
func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, token string, maxAge time.Duration, secure bool) {
	c.SetSameSite(parseSameSite(cfg.SameSite))
	c.SetCookie(cfg.Name, token, int(maxAge/time.Second), cookiePath(cfg), cfg.Domain, secure, true)
}

// ClearSessionCookie expires the session cookie with the same attributes it
// was set with.
func ClearSessionCookie(c *gin.Context, cfg config.CookieConfig, secure bool) {
	c.SetSameSite(parseSameSite(cfg.SameSite))
	c.SetCookie(cfg.Name, "", -1, cookiePath(cfg), cfg.Domain, secure, true)
}

// GetTokenFromCookie returns the cookie value or "".
func GetTokenFromCookie(c *gin.Context, name string) string {
	token, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return token
}

func cookiePath(cfg config.CookieConfig) string {
	if cfg.Path == "" {
		return "/"
	}
	return cfg.Path
}

func parseSameSite(sameSite string) http.SameSite {
	switch strings.ToLower(sameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
