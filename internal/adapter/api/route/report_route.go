package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupReportRoutes configura o painel e os relatórios
func SetupReportRoutes(router *gin.RouterGroup, reportController *controller.ReportController) {
	router.GET("/dashboard", reportController.Dashboard)

	reportRouter := router.Group("/reports")
	{
		reportRouter.GET("/top-customers", reportController.TopCustomers)
		reportRouter.GET("/suppliers", reportController.Suppliers)
		reportRouter.GET("/device-profits", reportController.DeviceProfits)
	}
}
