package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupDeviceRoutes configura as rotas do estoque de aparelhos
func SetupDeviceRoutes(router *gin.RouterGroup, deviceController *controller.DeviceController) {
	deviceRouter := router.Group("/devices")
	{
		deviceRouter.POST("", deviceController.Create)
		deviceRouter.GET("", deviceController.List)
		deviceRouter.GET("/:id", deviceController.Get)
		deviceRouter.PUT("/:id", deviceController.Update)
		deviceRouter.PATCH("/:id", deviceController.Update)
		deviceRouter.DELETE("/:id", deviceController.Delete)
		deviceRouter.POST("/bulk-delete", deviceController.BulkDelete)

		// Mudanças de status
		deviceRouter.POST("/:id/reserve", deviceController.Reserve)
		deviceRouter.POST("/:id/release", deviceController.Release)

		// Indicadores
		deviceRouter.GET("/stats", deviceController.Stats)
		deviceRouter.GET("/old", deviceController.Old)
		deviceRouter.GET("/breakdown", deviceController.Breakdown)
	}
}
