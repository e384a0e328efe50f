package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// SupplierController gerencia as requisições relacionadas a fornecedores
type SupplierController struct {
	suppliers *service.SupplierService
	devices   *service.DeviceService
	logger    logger.Logger
}

// NewSupplierController cria uma nova instância de SupplierController
func NewSupplierController(suppliers *service.SupplierService, devices *service.DeviceService, log logger.Logger) *SupplierController {
	return &SupplierController{suppliers: suppliers, devices: devices, logger: log}
}

// Create cadastra um fornecedor
// @Summary Criar fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Security Bearer
// @Param supplier body supplier.Supplier true "Dados do fornecedor"
// @Success 201 {object} supplier.Supplier
// @Failure 400 {object} dto.ErrorResponse
// @Router /suppliers [post]
func (c *SupplierController) Create(ctx *gin.Context) {
	var req supplier.Supplier
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	v, err := c.suppliers.Add(ctx, req)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar fornecedor", err)
		return
	}
	ctx.JSON(http.StatusCreated, v)
}

// List retorna os fornecedores
// @Summary Listar fornecedores
// @Tags suppliers
// @Produce json
// @Security Bearer
// @Param q query string false "Busca por nome, email ou telefone"
// @Success 200 {object} dto.ListResponse
// @Router /suppliers [get]
func (c *SupplierController) List(ctx *gin.Context) {
	items := c.suppliers.Search(ctx.Query("q"))
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Get retorna um fornecedor pelo ID
// @Summary Buscar fornecedor
// @Tags suppliers
// @Produce json
// @Security Bearer
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} supplier.Supplier
// @Failure 404 {object} dto.ErrorResponse
// @Router /suppliers/{id} [get]
func (c *SupplierController) Get(ctx *gin.Context) {
	v, ok := c.suppliers.GetByID(ctx.Param("id"))
	if !ok {
		notFound(ctx, "fornecedor não encontrado")
		return
	}
	ctx.JSON(http.StatusOK, v)
}

// Devices retorna os aparelhos comprados do fornecedor
// @Summary Aparelhos do fornecedor
// @Tags suppliers
// @Produce json
// @Security Bearer
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} dto.ListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /suppliers/{id}/devices [get]
func (c *SupplierController) Devices(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.suppliers.Exists(id) {
		notFound(ctx, "fornecedor não encontrado")
		return
	}
	items := c.devices.BySupplier(id)
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Update atualiza os campos informados do fornecedor
// @Summary Atualizar fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do fornecedor"
// @Param supplier body supplier.Patch true "Campos a alterar"
// @Success 200 {object} supplier.Supplier
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /suppliers/{id} [patch]
func (c *SupplierController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.suppliers.Exists(id) {
		notFound(ctx, "fornecedor não encontrado")
		return
	}
	var patch supplier.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.suppliers.Update(ctx, id, patch); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar fornecedor", err)
		return
	}
	v, _ := c.suppliers.GetByID(id)
	ctx.JSON(http.StatusOK, v)
}

// Delete remove um fornecedor sem aparelhos
// @Summary Remover fornecedor
// @Tags suppliers
// @Security Bearer
// @Param id path string true "ID do fornecedor"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /suppliers/{id} [delete]
func (c *SupplierController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.suppliers.Exists(id) {
		notFound(ctx, "fornecedor não encontrado")
		return
	}
	if err := c.suppliers.Delete(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao remover fornecedor", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// BulkDelete remove vários fornecedores; se algum tiver aparelhos nenhum é removido
// @Summary Remover fornecedores em lote
// @Tags suppliers
// @Accept json
// @Produce json
// @Security Bearer
// @Param ids body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /suppliers/bulk-delete [post]
func (c *SupplierController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	before := c.suppliers.Count()
	if err := c.suppliers.DeleteMany(ctx, req.IDs); err != nil {
		respondError(ctx, c.logger, "erro ao remover fornecedores", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: before - c.suppliers.Count()})
}
