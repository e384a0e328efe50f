package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/service"
)

// defaultRankingSize é o tamanho padrão do ranking de clientes
const defaultRankingSize = 10

// ReportController expõe o painel e os relatórios
type ReportController struct {
	reports *service.ReportService
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(reports *service.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// Dashboard retorna os indicadores do painel
// @Summary Painel
// @Tags reports
// @Produce json
// @Security Bearer
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.reports.Dashboard())
}

// TopCustomers retorna os clientes que mais compraram
// @Summary Melhores clientes
// @Tags reports
// @Produce json
// @Security Bearer
// @Param limit query int false "Quantidade (padrão 10)"
// @Success 200 {object} dto.ListResponse
// @Router /reports/top-customers [get]
func (c *ReportController) TopCustomers(ctx *gin.Context) {
	n, ok := queryInt(ctx, "limit", defaultRankingSize)
	if !ok {
		return
	}
	items := c.reports.TopCustomers(n)
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Suppliers retorna o total comprado de cada fornecedor
// @Summary Compras por fornecedor
// @Tags reports
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ListResponse
// @Router /reports/suppliers [get]
func (c *ReportController) Suppliers(ctx *gin.Context) {
	items := c.reports.SupplierTotals()
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// DeviceProfits retorna o lucro líquido de cada aparelho vendido
// @Summary Lucro por aparelho
// @Tags reports
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ListResponse
// @Router /reports/device-profits [get]
func (c *ReportController) DeviceProfits(ctx *gin.Context) {
	items := c.reports.DeviceProfits()
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}
