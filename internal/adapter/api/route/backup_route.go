package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupBackupRoutes configura as rotas de exportação e importação
func SetupBackupRoutes(router *gin.RouterGroup, backupController *controller.BackupController) {
	backupRouter := router.Group("/backup")
	{
		backupRouter.GET("/export", backupController.Export)
		backupRouter.POST("/import", backupController.Import)
	}
}
