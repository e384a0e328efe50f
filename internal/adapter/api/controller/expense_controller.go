package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// ExpenseController gerencia as requisições relacionadas às despesas
type ExpenseController struct {
	expenses *service.ExpenseService
	logger   logger.Logger
}

// NewExpenseController cria uma nova instância de ExpenseController
func NewExpenseController(expenses *service.ExpenseService, log logger.Logger) *ExpenseController {
	return &ExpenseController{expenses: expenses, logger: log}
}

// Create registra uma despesa
// @Summary Registrar despesa
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param expense body expense.Expense true "Dados da despesa"
// @Success 201 {object} expense.Expense
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /expenses [post]
func (c *ExpenseController) Create(ctx *gin.Context) {
	var req expense.Expense
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	v, err := c.expenses.Add(ctx, req)
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar despesa", err)
		return
	}
	ctx.JSON(http.StatusCreated, v)
}

// List retorna as despesas
// @Summary Listar despesas
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param device_id query string false "ID do aparelho"
// @Param category query string false "Categoria"
// @Param period query string false "today ou month"
// @Success 200 {object} dto.ListResponse
// @Router /expenses [get]
func (c *ExpenseController) List(ctx *gin.Context) {
	var items []expense.Expense
	switch {
	case ctx.Query("device_id") != "":
		items = c.expenses.ByDevice(ctx.Query("device_id"))
	case ctx.Query("category") != "":
		items = c.expenses.ByCategory(ctx.Query("category"))
	case ctx.Query("period") == "today":
		items = c.expenses.Today()
	case ctx.Query("period") == "month":
		items = c.expenses.ThisMonth()
	default:
		items = c.expenses.List()
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Get retorna uma despesa pelo ID
// @Summary Buscar despesa
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param id path string true "ID da despesa"
// @Success 200 {object} expense.Expense
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{id} [get]
func (c *ExpenseController) Get(ctx *gin.Context) {
	v, ok := c.expenses.GetByID(ctx.Param("id"))
	if !ok {
		notFound(ctx, "despesa não encontrada")
		return
	}
	ctx.JSON(http.StatusOK, v)
}

// Update atualiza os campos informados da despesa
// @Summary Atualizar despesa
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da despesa"
// @Param expense body expense.Patch true "Campos a alterar"
// @Success 200 {object} expense.Expense
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{id} [patch]
func (c *ExpenseController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.expenses.GetByID(id); !ok {
		notFound(ctx, "despesa não encontrada")
		return
	}
	var patch expense.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.expenses.Update(ctx, id, patch); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar despesa", err)
		return
	}
	v, _ := c.expenses.GetByID(id)
	ctx.JSON(http.StatusOK, v)
}

// Delete remove uma despesa
// @Summary Remover despesa
// @Tags expenses
// @Security Bearer
// @Param id path string true "ID da despesa"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{id} [delete]
func (c *ExpenseController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.expenses.GetByID(id); !ok {
		notFound(ctx, "despesa não encontrada")
		return
	}
	c.expenses.Delete(ctx, id)
	ctx.Status(http.StatusNoContent)
}

// BulkDelete remove várias despesas
// @Summary Remover despesas em lote
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param ids body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Router /expenses/bulk-delete [post]
func (c *ExpenseController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	before := len(c.expenses.List())
	c.expenses.DeleteMany(ctx, req.IDs)
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: before - len(c.expenses.List())})
}

// Stats resume as despesas
// @Summary Resumo das despesas
// @Tags expenses
// @Produce json
// @Security Bearer
// @Success 200 {object} service.ExpenseStats
// @Router /expenses/stats [get]
func (c *ExpenseController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.expenses.Stats())
}

// Categories lista as categorias em uso
// @Summary Categorias de despesa
// @Tags expenses
// @Produce json
// @Security Bearer
// @Success 200 {array} string
// @Router /expenses/categories [get]
func (c *ExpenseController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.expenses.Categories())
}
