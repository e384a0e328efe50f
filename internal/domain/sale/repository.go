package sale

import (
	"context"
)

// Repository define a persistência da coleção de vendas
type Repository interface {
	// FindAll retorna a coleção completa
	FindAll(ctx context.Context) []Sale

	// SaveAll substitui a coleção completa
	SaveAll(ctx context.Context, sales []Sale)
}
