package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// DeviceController gerencia as requisições relacionadas ao estoque de aparelhos
type DeviceController struct {
	devices *service.DeviceService
	logger  logger.Logger
}

// NewDeviceController cria uma nova instância de DeviceController
func NewDeviceController(devices *service.DeviceService, log logger.Logger) *DeviceController {
	return &DeviceController{devices: devices, logger: log}
}

// Create cadastra um aparelho
// @Summary Cadastrar aparelho
// @Tags devices
// @Accept json
// @Produce json
// @Security Bearer
// @Param device body device.Device true "Dados do aparelho"
// @Success 201 {object} device.Device
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /devices [post]
func (c *DeviceController) Create(ctx *gin.Context) {
	var req device.Device
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	d, err := c.devices.Add(ctx, req)
	if err != nil {
		respondError(ctx, c.logger, "erro ao cadastrar aparelho", err)
		return
	}
	ctx.JSON(http.StatusCreated, d)
}

// List retorna os aparelhos, com filtros opcionais
// @Summary Listar aparelhos
// @Tags devices
// @Produce json
// @Security Bearer
// @Param status query string false "available, sold ou reserved"
// @Param supplier_id query string false "ID do fornecedor"
// @Param q query string false "Busca por modelo, cor, armazenamento, série ou IMEI"
// @Success 200 {object} dto.ListResponse
// @Router /devices [get]
func (c *DeviceController) List(ctx *gin.Context) {
	var items []device.Device
	switch {
	case ctx.Query("q") != "":
		items = c.devices.Search(ctx.Query("q"))
	case ctx.Query("status") != "":
		items = c.devices.ByStatus(device.Status(ctx.Query("status")))
	case ctx.Query("supplier_id") != "":
		items = c.devices.BySupplier(ctx.Query("supplier_id"))
	default:
		items = c.devices.List()
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Get retorna um aparelho pelo ID
// @Summary Buscar aparelho
// @Tags devices
// @Produce json
// @Security Bearer
// @Param id path string true "ID do aparelho"
// @Success 200 {object} device.Device
// @Failure 404 {object} dto.ErrorResponse
// @Router /devices/{id} [get]
func (c *DeviceController) Get(ctx *gin.Context) {
	d, ok := c.devices.GetByID(ctx.Param("id"))
	if !ok {
		notFound(ctx, "aparelho não encontrado")
		return
	}
	ctx.JSON(http.StatusOK, d)
}

// Update atualiza os campos informados do aparelho
// @Summary Atualizar aparelho
// @Tags devices
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do aparelho"
// @Param device body device.Patch true "Campos a alterar"
// @Success 200 {object} device.Device
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /devices/{id} [patch]
func (c *DeviceController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.devices.Exists(id) {
		notFound(ctx, "aparelho não encontrado")
		return
	}
	var patch device.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.devices.Update(ctx, id, patch); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar aparelho", err)
		return
	}
	d, _ := c.devices.GetByID(id)
	ctx.JSON(http.StatusOK, d)
}

// Reserve reserva o aparelho para um cliente
// @Summary Reservar aparelho
// @Tags devices
// @Produce json
// @Security Bearer
// @Param id path string true "ID do aparelho"
// @Success 200 {object} device.Device
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /devices/{id}/reserve [post]
func (c *DeviceController) Reserve(ctx *gin.Context) {
	c.changeStatus(ctx, c.devices.Reserve)
}

// Release devolve o aparelho reservado ao estoque
// @Summary Liberar reserva
// @Tags devices
// @Produce json
// @Security Bearer
// @Param id path string true "ID do aparelho"
// @Success 200 {object} device.Device
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /devices/{id}/release [post]
func (c *DeviceController) Release(ctx *gin.Context) {
	c.changeStatus(ctx, c.devices.Release)
}

func (c *DeviceController) changeStatus(ctx *gin.Context, change func(context.Context, string) error) {
	id := ctx.Param("id")
	if !c.devices.Exists(id) {
		notFound(ctx, "aparelho não encontrado")
		return
	}
	if err := change(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao alterar status do aparelho", err)
		return
	}
	d, _ := c.devices.GetByID(id)
	ctx.JSON(http.StatusOK, d)
}

// Delete remove um aparelho sem vendas nem despesas
// @Summary Remover aparelho
// @Tags devices
// @Security Bearer
// @Param id path string true "ID do aparelho"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /devices/{id} [delete]
func (c *DeviceController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.devices.Exists(id) {
		notFound(ctx, "aparelho não encontrado")
		return
	}
	if err := c.devices.Delete(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao remover aparelho", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// BulkDelete remove vários aparelhos; se algum estiver referenciado nenhum é removido
// @Summary Remover aparelhos em lote
// @Tags devices
// @Accept json
// @Produce json
// @Security Bearer
// @Param ids body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /devices/bulk-delete [post]
func (c *DeviceController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	before := len(c.devices.List())
	if err := c.devices.DeleteMany(ctx, req.IDs); err != nil {
		respondError(ctx, c.logger, "erro ao remover aparelhos", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: before - len(c.devices.List())})
}

// Stats resume o estoque
// @Summary Resumo do estoque
// @Tags devices
// @Produce json
// @Security Bearer
// @Success 200 {object} service.DeviceStats
// @Router /devices/stats [get]
func (c *DeviceController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.devices.Stats())
}

// Old lista os aparelhos parados no estoque
// @Summary Estoque parado
// @Tags devices
// @Produce json
// @Security Bearer
// @Param days query int false "Dias no estoque (padrão: preferência oldDevicesAlert)"
// @Success 200 {object} dto.ListResponse
// @Router /devices/old [get]
func (c *DeviceController) Old(ctx *gin.Context) {
	days, ok := queryInt(ctx, "days", c.devices.OldStockThreshold())
	if !ok {
		return
	}
	items := c.devices.OldDevices(days)
	ctx.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Breakdown agrupa o estoque disponível por modelo ou por estado de conservação
// @Summary Estoque agrupado
// @Tags devices
// @Produce json
// @Security Bearer
// @Param by query string false "model (padrão) ou condition"
// @Success 200 {array} service.Breakdown
// @Router /devices/breakdown [get]
func (c *DeviceController) Breakdown(ctx *gin.Context) {
	if ctx.DefaultQuery("by", "model") == "condition" {
		ctx.JSON(http.StatusOK, c.devices.ByCondition())
		return
	}
	ctx.JSON(http.StatusOK, c.devices.ByModel())
}
