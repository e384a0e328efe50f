package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// SettingsController gerencia as preferências da loja
type SettingsController struct {
	settings *service.SettingsService
	logger   logger.Logger
}

// NewSettingsController cria uma nova instância de SettingsController
func NewSettingsController(s *service.SettingsService, log logger.Logger) *SettingsController {
	return &SettingsController{settings: s, logger: log}
}

// Get retorna as preferências atuais
// @Summary Preferências
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} settings.Settings
// @Router /settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.settings.Get())
}

// Update altera os campos informados
// @Summary Atualizar preferências
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param settings body settings.Patch true "Campos a alterar"
// @Success 200 {object} settings.Settings
// @Failure 400 {object} dto.ErrorResponse
// @Router /settings [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	var patch settings.Patch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	updated, err := c.settings.Update(ctx, patch)
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar preferências", err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// Reset volta às preferências de fábrica
// @Summary Restaurar preferências
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} settings.Settings
// @Router /settings [delete]
func (c *SettingsController) Reset(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.settings.Reset(ctx))
}
