package routes

import (
	"github.com/gin-gonic/gin"

	"hungrylist/internal/interfaces/http/handlers"
	"hungrylist/internal/interfaces/http/middleware"
)

// BackupRouteConfig holds dependencies for backup and history routes.
type BackupRouteConfig struct {
	BackupHandler  *handlers.BackupHandler
	HistoryHandler *handlers.HistoryHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupBackupRoutes(api *gin.RouterGroup, cfg *BackupRouteConfig) {
	backups := api.Group("/backups", cfg.AuthMiddleware.RequireAuth())
	{
		backups.GET("", cfg.BackupHandler.List)
		backups.POST("", cfg.BackupHandler.Create)
		backups.POST("/:id/restore", cfg.BackupHandler.Restore)
		backups.DELETE("/:id", cfg.BackupHandler.Delete)
	}

	api.GET("/history", cfg.AuthMiddleware.RequireAuth(), cfg.HistoryHandler.List)
}
