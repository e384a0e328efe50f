package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupSaleRoutes configura as rotas de vendas
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	saleRouter := router.Group("/sales")
	{
		saleRouter.POST("", saleController.Create)
		saleRouter.POST("/sell", saleController.Sell)
		saleRouter.GET("", saleController.List)
		saleRouter.GET("/:id", saleController.Get)
		saleRouter.PUT("/:id", saleController.Update)
		saleRouter.PATCH("/:id", saleController.Update)
		saleRouter.DELETE("/:id", saleController.Delete)
		saleRouter.POST("/bulk-delete", saleController.BulkDelete)

		saleRouter.GET("/stats", saleController.Stats)
		saleRouter.GET("/payments", saleController.Payments)
		saleRouter.GET("/chart/daily", saleController.Daily)
		saleRouter.GET("/chart/monthly", saleController.Monthly)
	}
}
