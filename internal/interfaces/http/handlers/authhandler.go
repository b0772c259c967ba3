package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appauth "hungrylist/internal/application/auth"
	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/config"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/utils"
)

type authService interface {
	Login(ctx context.Context, cmd appauth.LoginCommand) (*appauth.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context) (int64, error)
}

type AuthHandler struct {
	service    authService
	cookie     config.CookieConfig
	trustProxy bool
	logger     logger.Interface
}

func NewAuthHandler(service authService, cookie config.CookieConfig, trustProxy bool, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookie:     cookie,
		trustProxy: trustProxy,
		logger:     logger,
	}
}

type LoginRequest struct {
	PIN string `json:"pin" validate:"required,pin"`
	// Trusted defaults to true when omitted.
	Trusted *bool `json:"trusted"`
}

type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	Trusted       bool      `json:"trusted"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	trusted := true
	if req.Trusted != nil {
		trusted = *req.Trusted
	}

	result, err := h.service.Login(c.Request.Context(), appauth.LoginCommand{
		PIN:       req.PIN,
		Trusted:   trusted,
		ClientID:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cookie, result.Token, result.MaxAge, h.secure(c))
	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		Trusted:       result.Trusted,
		ExpiresAt:     result.ExpiresAt,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	token := utils.GetTokenFromCookie(c, h.cookie.Name)

	session, err := h.service.Authenticate(c.Request.Context(), token)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		Trusted:       session.Trusted,
		ExpiresAt:     session.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout. It succeeds without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := utils.GetTokenFromCookie(c, h.cookie.Name)

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearSessionCookie(c, h.cookie, h.secure(c))
	utils.NoContentResponse(c)
}

// LogoutAll handles POST /api/auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	revoked, err := h.service.LogoutAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("all sessions revoked", "count", revoked)
	utils.ClearSessionCookie(c, h.cookie, h.secure(c))
	utils.NoContentResponse(c)
}

func (h *AuthHandler) secure(c *gin.Context) bool {
	return utils.SessionCookieSecure(c, h.cookie, h.trustProxy)
}
