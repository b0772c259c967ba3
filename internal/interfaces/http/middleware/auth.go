package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/constants"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/utils"
)

// SessionAuthenticator resolves a presented session token.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

type AuthMiddleware struct {
	authenticator SessionAuthenticator
	cookieName    string
	logger        logger.Interface
}

func NewAuthMiddleware(authenticator SessionAuthenticator, cookieName string, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		cookieName:    cookieName,
		logger:        logger,
	}
}

// RequireAuth rejects requests without a valid session cookie with
// AUTH_REQUIRED. The session is stored under constants.ContextKeySession.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTokenFromCookie(c, m.cookieName)

		session, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.HasCode(err, errors.CodeAuthRequired) {
				m.logger.Errorw("session lookup failed", "error", err)
			}
			utils.AbortWithError(c, err)
			return
		}

		c.Set(constants.ContextKeySession, session)
		c.Next()
	}
}

// SessionFromContext returns the session stored by RequireAuth.
func SessionFromContext(c *gin.Context) (*auth.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil, false
	}
	session, ok := value.(*auth.Session)
	return session, ok
}
