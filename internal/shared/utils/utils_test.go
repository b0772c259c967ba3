package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type loginBody struct {
	PIN   string `json:"pin" validate:"required,pin"`
	Color string `json:"color" validate:"omitempty,color6"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(&loginBody{PIN: "0420", Color: "#A1b2C3"}))

	err := ValidateStruct(&loginBody{PIN: "12a4", Color: "#fff"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	fields := appErr.Details["fields"].(map[string]any)
	assert.Contains(t, fields, "pin")
	assert.Contains(t, fields, "color")
}

func TestErrorResponseWithError(t *testing.T) {
	t.Run("app error keeps code and details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

		ErrorResponseWithError(c, apperrors.NewInvalidCredentialError(2))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_PIN", body.Code)
		assert.EqualValues(t, 2, body.Details["remainingAttempts"])
	})

	t.Run("unexpected error is opaque", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/items", nil)

		ErrorResponseWithError(c, errors.New("database is locked"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "locked")
		assert.Contains(t, w.Body.String(), apperrors.CodeInternal)
	})
}

func TestSessionCookie(t *testing.T) {
	cfg := config.CookieConfig{Name: "hungrylist_session", Path: "/", SameSite: "Lax"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	SetSessionCookie(c, cfg, "tok", 24*time.Hour, false)
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, "hungrylist_session", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.False(t, cookie.Secure)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	ClearSessionCookie(c, cfg, true)
	cleared := w.Result().Cookies()[0]
	assert.Equal(t, "", cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
	assert.True(t, cleared.Secure)
}

func TestSessionCookieSecure(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("X-Forwarded-Proto", "https")

	assert.False(t, SessionCookieSecure(c, config.CookieConfig{}, false))
	assert.True(t, SessionCookieSecure(c, config.CookieConfig{}, true))
	assert.True(t, SessionCookieSecure(c, config.CookieConfig{Secure: true}, false))
}
