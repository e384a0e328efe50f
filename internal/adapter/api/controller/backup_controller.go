package controller

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/adapter/repository"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// maxBackupBytes limita o tamanho do arquivo enviado na importação
const maxBackupBytes = 32 << 20

// BackupController exporta e importa o backup completo
type BackupController struct {
	db       *repository.Database
	services *service.Services
	now      datetime.Clock
	logger   logger.Logger
}

// NewBackupController cria uma nova instância de BackupController
func NewBackupController(db *repository.Database, services *service.Services, log logger.Logger) *BackupController {
	return &BackupController{db: db, services: services, now: time.Now, logger: log}
}

// Export baixa o backup em JSON
// @Summary Exportar backup
// @Tags backup
// @Produce json
// @Security Bearer
// @Success 200 {object} repository.Backup
// @Router /backup/export [get]
func (c *BackupController) Export(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.db.WriteBackup(ctx, &buf); err != nil {
		respondError(ctx, c.logger, "erro ao exportar backup", err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+repository.BackupFileName(c.now())+`"`)
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

// Import substitui todos os dados pelos do backup
// @Summary Importar backup
// @Description Aceita o arquivo no campo multipart "file" ou o JSON direto no corpo. Se o arquivo for inválido nada é alterado.
// @Tags backup
// @Accept json,mpfd
// @Produce json
// @Security Bearer
// @Param file formData file false "Arquivo de backup"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /backup/import [post]
func (c *BackupController) Import(ctx *gin.Context) {
	body, err := c.source(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	defer body.Close()

	if err := c.db.Import(ctx, io.LimitReader(body, maxBackupBytes)); err != nil {
		respondError(ctx, c.logger, "erro ao importar backup", err)
		return
	}
	c.services.Reload(ctx)

	ctx.JSON(http.StatusOK, dto.ImportResponse{
		Devices:   len(c.services.Devices.List()),
		Sales:     len(c.services.Sales.List()),
		Customers: c.services.Customers.Count(),
		Suppliers: c.services.Suppliers.Count(),
		Expenses:  len(c.services.Expenses.List()),
	})
}

func (c *BackupController) source(ctx *gin.Context) (io.ReadCloser, error) {
	if ctx.ContentType() != "multipart/form-data" {
		return ctx.Request.Body, nil
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		return nil, err
	}
	return header.Open()
}
