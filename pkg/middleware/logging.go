package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// RequestLogger registra uma linha por requisição. Erros 5xx saem como Error,
// 4xx como Warn e o resto como Info.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(ContextRequestID),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("Requisição com erro", fields...)
		case status >= 400:
			log.Warn("Requisição rejeitada", fields...)
		default:
			log.Info("Requisição atendida", fields...)
		}
	}
}
