package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupSupplierRoutes configura as rotas de fornecedores
func SetupSupplierRoutes(router *gin.RouterGroup, supplierController *controller.SupplierController) {
	supplierRouter := router.Group("/suppliers")
	{
		supplierRouter.POST("", supplierController.Create)
		supplierRouter.GET("", supplierController.List)
		supplierRouter.GET("/:id", supplierController.Get)
		supplierRouter.GET("/:id/devices", supplierController.Devices)
		supplierRouter.PUT("/:id", supplierController.Update)
		supplierRouter.PATCH("/:id", supplierController.Update)
		supplierRouter.DELETE("/:id", supplierController.Delete)
		supplierRouter.POST("/bulk-delete", supplierController.BulkDelete)
	}
}
