package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupSettingsRoutes configura as rotas de preferências
func SetupSettingsRoutes(router *gin.RouterGroup, settingsController *controller.SettingsController) {
	settingsRouter := router.Group("/settings")
	{
		settingsRouter.GET("", settingsController.Get)
		settingsRouter.PUT("", settingsController.Update)
		settingsRouter.DELETE("", settingsController.Reset)
	}
}
