package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customers *service.CustomerService
	sales     *service.SaleService
	logger    logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customers *service.CustomerService, sales *service.SaleService, log logger.Logger) *CustomerController {
	return &CustomerController{customers: customers, sales: sales, logger: log}
}

// Create cadastra um cliente
// @Summary Criar cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security Bearer
// @Param customer body customer.Customer true "Dados do cliente"
// @Success 201 {object} customer.Customer
// @Failure 400 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req customer.Customer
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	v, err := c.customers.Add(ctx, req)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar cliente", err)
		return
	}
	ctx.JSON(http.StatusCreated, v)
}

// List retorna os clientes
// @Summary Listar clientes
// @Tags customers
// @Produce json
// @Security Bearer
// @Param q query string false "Busca por nome, email ou telefone"
// @Success 200 {object} dto.ListResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	items := c.customers.Search(ctx.Query("q"))
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Tags customers
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Success 200 {object} customer.Customer
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	v, ok := c.customers.GetByID(ctx.Param("id"))
	if !ok {
		notFound(ctx, "cliente não encontrado")
		return
	}
	ctx.JSON(http.StatusOK, v)
}

// Sales retorna as vendas do cliente
// @Summary Vendas do cliente
// @Tags customers
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.ListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/sales [get]
func (c *CustomerController) Sales(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.customers.Exists(id) {
		notFound(ctx, "cliente não encontrado")
		return
	}
	items := c.sales.ByCustomer(id)
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Update atualiza os campos informados do cliente
// @Summary Atualizar cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Param customer body customer.Patch true "Campos a alterar"
// @Success 200 {object} customer.Customer
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [patch]
func (c *CustomerController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.customers.Exists(id) {
		notFound(ctx, "cliente não encontrado")
		return
	}
	var patch customer.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.customers.Update(ctx, id, patch); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar cliente", err)
		return
	}
	v, _ := c.customers.GetByID(id)
	ctx.JSON(http.StatusOK, v)
}

// Delete remove um cliente sem vendas
// @Summary Remover cliente
// @Tags customers
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.customers.Exists(id) {
		notFound(ctx, "cliente não encontrado")
		return
	}
	if err := c.customers.Delete(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao remover cliente", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// BulkDelete remove vários clientes; se algum tiver vendas nenhum é removido
// @Summary Remover clientes em lote
// @Tags customers
// @Accept json
// @Produce json
// @Security Bearer
// @Param ids body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /customers/bulk-delete [post]
func (c *CustomerController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	before := c.customers.Count()
	if err := c.customers.DeleteMany(ctx, req.IDs); err != nil {
		respondError(ctx, c.logger, "erro ao remover clientes", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: before - c.customers.Count()})
}
