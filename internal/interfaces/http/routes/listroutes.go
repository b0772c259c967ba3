package routes

import (
	"github.com/gin-gonic/gin"

	"hungrylist/internal/interfaces/http/handlers"
	"hungrylist/internal/interfaces/http/middleware"
)

// ListRouteConfig holds dependencies for section and item routes.
type ListRouteConfig struct {
	SectionHandler *handlers.SectionHandler
	ItemHandler    *handlers.ItemHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupListRoutes(api *gin.RouterGroup, cfg *ListRouteConfig) {
	sections := api.Group("/sections", cfg.AuthMiddleware.RequireAuth())
	{
		sections.GET("", cfg.SectionHandler.List)
		sections.POST("", cfg.SectionHandler.Create)
		sections.PUT("/:id", cfg.SectionHandler.Update)
		sections.DELETE("/:id", cfg.SectionHandler.Delete)
	}

	items := api.Group("/items", cfg.AuthMiddleware.RequireAuth())
	{
		items.GET("", cfg.ItemHandler.List)
		items.POST("", cfg.ItemHandler.Create)
		items.GET("/:id", cfg.ItemHandler.Get)
		items.PUT("/:id", cfg.ItemHandler.Update)
		items.PATCH("/:id/check", cfg.ItemHandler.ToggleChecked)
		items.PATCH("/:id/favorite", cfg.ItemHandler.ToggleFavorite)
		items.PATCH("/:id/running-low", cfg.ItemHandler.ToggleRunningLow)
		items.DELETE("/:id", cfg.ItemHandler.Delete)
	}
}
