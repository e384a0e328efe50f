package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader é o cabeçalho que carrega o identificador da requisição
const RequestIDHeader = "X-Request-ID"

// ContextRequestID é a chave do identificador no contexto do gin
const ContextRequestID = "request_id"

type requestIDKey struct{}

// RequestID reaproveita o X-Request-ID recebido ou gera um novo, e o devolve
// na resposta
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID recupera o identificador da requisição do contexto, se existir
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
