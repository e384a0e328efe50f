package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// SaleController gerencia as requisições relacionadas às vendas
type SaleController struct {
	sales  *service.SaleService
	logger logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(sales *service.SaleService, log logger.Logger) *SaleController {
	return &SaleController{sales: sales, logger: log}
}

// Create registra uma venda com o lucro informado
// @Summary Registrar venda
// @Description Registra uma venda com lucro informado pelo cliente da API. Use /sales/sell para calcular o lucro e baixar o estoque.
// @Tags sales
// @Accept json
// @Produce json
// @Security Bearer
// @Param sale body sale.Sale true "Dados da venda"
// @Success 201 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req sale.Sale
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	v, err := c.sales.Add(ctx, req)
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar venda", err)
		return
	}
	ctx.JSON(http.StatusCreated, v)
}

// Sell vende um aparelho disponível
// @Summary Vender aparelho
// @Description Calcula o lucro sobre o preço de compra, registra a venda e marca o aparelho como vendido
// @Tags sales
// @Accept json
// @Produce json
// @Security Bearer
// @Param sale body dto.SellDeviceRequest true "Dados da venda"
// @Success 201 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /sales/sell [post]
func (c *SaleController) Sell(ctx *gin.Context) {
	var req dto.SellDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	v, err := c.sales.SellDevice(ctx, req.ToSellInput())
	if err != nil {
		respondError(ctx, c.logger, "erro ao vender aparelho", err)
		return
	}
	ctx.JSON(http.StatusCreated, v)
}

// List retorna as vendas, com filtros opcionais
// @Summary Listar vendas
// @Tags sales
// @Produce json
// @Security Bearer
// @Param status query string false "completed, pending ou cancelled"
// @Param customer_id query string false "ID do cliente"
// @Param device_id query string false "ID do aparelho"
// @Param payment_method query string false "Forma de pagamento"
// @Param period query string false "today ou month"
// @Param limit query int false "Quantidade das mais recentes"
// @Success 200 {object} dto.ListResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	var items []sale.Sale
	switch {
	case ctx.Query("customer_id") != "":
		items = c.sales.ByCustomer(ctx.Query("customer_id"))
	case ctx.Query("device_id") != "":
		items = c.sales.ByDevice(ctx.Query("device_id"))
	case ctx.Query("status") != "":
		items = c.sales.ByStatus(sale.Status(ctx.Query("status")))
	case ctx.Query("payment_method") != "":
		items = c.sales.ByPaymentMethod(sale.PaymentMethod(ctx.Query("payment_method")))
	case ctx.Query("period") == "today":
		items = c.sales.Today()
	case ctx.Query("period") == "month":
		items = c.sales.ThisMonth()
	default:
		limit, ok := queryInt(ctx, "limit", -1)
		if !ok {
			return
		}
		items = c.sales.Recent(limit)
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Security Bearer
// @Param id path string true "ID da venda"
// @Success 200 {object} sale.Sale
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	v, ok := c.sales.GetByID(ctx.Param("id"))
	if !ok {
		notFound(ctx, "venda não encontrada")
		return
	}
	ctx.JSON(http.StatusOK, v)
}

// Update atualiza os campos informados da venda
// @Summary Atualizar venda
// @Tags sales
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da venda"
// @Param sale body sale.Patch true "Campos a alterar"
// @Success 200 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /sales/{id} [patch]
func (c *SaleController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.sales.GetByID(id); !ok {
		notFound(ctx, "venda não encontrada")
		return
	}
	var patch sale.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.sales.Update(ctx, id, patch); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar venda", err)
		return
	}
	v, _ := c.sales.GetByID(id)
	ctx.JSON(http.StatusOK, v)
}

// Delete remove uma venda
// @Summary Remover venda
// @Tags sales
// @Security Bearer
// @Param id path string true "ID da venda"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.sales.GetByID(id); !ok {
		notFound(ctx, "venda não encontrada")
		return
	}
	c.sales.Delete(ctx, id)
	ctx.Status(http.StatusNoContent)
}

// BulkDelete remove várias vendas
// @Summary Remover vendas em lote
// @Tags sales
// @Accept json
// @Produce json
// @Security Bearer
// @Param ids body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Router /sales/bulk-delete [post]
func (c *SaleController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	before := len(c.sales.List())
	c.sales.DeleteMany(ctx, req.IDs)
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: before - len(c.sales.List())})
}

// Stats resume as vendas
// @Summary Resumo das vendas
// @Tags sales
// @Produce json
// @Security Bearer
// @Success 200 {object} service.SaleStats
// @Router /sales/stats [get]
func (c *SaleController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.sales.Stats())
}

// Daily retorna a série diária de vendas
// @Summary Vendas por dia
// @Tags sales
// @Produce json
// @Security Bearer
// @Param days query int false "Quantidade de dias (padrão 30)"
// @Success 200 {array} service.SeriesPoint
// @Router /sales/chart/daily [get]
func (c *SaleController) Daily(ctx *gin.Context) {
	days, ok := queryInt(ctx, "days", service.DailySeriesDays)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.sales.DailySeries(days))
}

// Monthly retorna a série mensal de vendas
// @Summary Vendas por mês
// @Tags sales
// @Produce json
// @Security Bearer
// @Param months query int false "Quantidade de meses (padrão 12)"
// @Success 200 {array} service.SeriesPoint
// @Router /sales/chart/monthly [get]
func (c *SaleController) Monthly(ctx *gin.Context) {
	months, ok := queryInt(ctx, "months", service.MonthlySeriesMonths)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, c.sales.MonthlySeries(months))
}

// Payments agrupa as vendas por forma de pagamento
// @Summary Vendas por forma de pagamento
// @Tags sales
// @Produce json
// @Security Bearer
// @Success 200 {array} service.Breakdown
// @Router /sales/payments [get]
func (c *SaleController) Payments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.sales.PaymentBreakdown())
}
