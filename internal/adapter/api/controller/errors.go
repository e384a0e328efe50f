package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-revenda/internal/adapter/repository"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// statusFor traduz os erros dos serviços para o status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidBackup),
		errors.Is(err, repository.ErrMissingKey):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrEntityReferenced),
		errors.Is(err, service.ErrDeviceNotAvailable),
		errors.Is(err, device.ErrInvalidStatusTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.FullPath())
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
}

func notFound(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, message, ctx.Param("id")))
}

// queryInt lê um parâmetro inteiro não negativo; ausente vale def
func queryInt(ctx *gin.Context, name string, def int) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "parâmetro "+name+" inválido", raw))
		return 0, false
	}
	return n, true
}
