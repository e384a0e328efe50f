package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupCustomerRoutes configura as rotas de clientes
func SetupCustomerRoutes(router *gin.RouterGroup, customerController *controller.CustomerController) {
	customerRouter := router.Group("/customers")
	{
		customerRouter.POST("", customerController.Create)
		customerRouter.GET("", customerController.List)
		customerRouter.GET("/:id", customerController.Get)
		customerRouter.GET("/:id/sales", customerController.Sales)
		customerRouter.PUT("/:id", customerController.Update)
		customerRouter.PATCH("/:id", customerController.Update)
		customerRouter.DELETE("/:id", customerController.Delete)
		customerRouter.POST("/bulk-delete", customerController.BulkDelete)
	}
}
