package routes

import (
	"github.com/gin-gonic/gin"

	"hungrylist/internal/interfaces/http/handlers"
	"hungrylist/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAuthRoutes configures authentication routes. Only logout-all needs a
// session; me reports the missing session itself.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.GET("/me", cfg.AuthHandler.Me)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.POST("/logout-all", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.LogoutAll)
	}
}
