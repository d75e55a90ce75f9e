package api

import "github.com/gin-gonic/gin"

// SetupRoutes configures the /i18n API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	i18n := router.Group("/i18n")
	{
		i18n.POST("/load", handler.Load)
		i18n.POST("/save", handler.Save)
		i18n.POST("/snapshot", handler.Snapshot)
		i18n.GET("/backups", handler.Backups)
		i18n.POST("/restore_backup", handler.RestoreBackup)
		i18n.POST("/preview", handler.Preview)
		i18n.POST("/export", handler.Export)
		i18n.GET("/modes", handler.Modes)
	}
}
