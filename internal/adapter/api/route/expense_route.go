package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
)

// SetupExpenseRoutes configura as rotas de despesas
func SetupExpenseRoutes(router *gin.RouterGroup, expenseController *controller.ExpenseController) {
	expenseRouter := router.Group("/expenses")
	{
		expenseRouter.POST("", expenseController.Create)
		expenseRouter.GET("", expenseController.List)
		expenseRouter.GET("/:id", expenseController.Get)
		expenseRouter.PUT("/:id", expenseController.Update)
		expenseRouter.PATCH("/:id", expenseController.Update)
		expenseRouter.DELETE("/:id", expenseController.Delete)
		expenseRouter.POST("/bulk-delete", expenseController.BulkDelete)

		expenseRouter.GET("/stats", expenseController.Stats)
		expenseRouter.GET("/categories", expenseController.Categories)
	}
}
