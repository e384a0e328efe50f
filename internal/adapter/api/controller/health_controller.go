package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
)

// HealthController responde a verificação de saúde
type HealthController struct {
	version string
	storage string
}

// NewHealthController cria uma nova instância de HealthController
func NewHealthController(version, storage string) *HealthController {
	return &HealthController{version: version, storage: storage}
}

// Check informa que a API está no ar
// @Summary Saúde da API
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Version: c.version,
		Storage: c.storage,
		Time:    datetime.FormatISO(time.Now()),
	})
}
