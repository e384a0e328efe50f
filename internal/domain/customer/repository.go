package customer

import (
	"context"
)

// Repository define a persistência da coleção de clientes
type Repository interface {
	// FindAll retorna a coleção completa
	FindAll(ctx context.Context) []Customer

	// SaveAll substitui a coleção completa
	SaveAll(ctx context.Context, customers []Customer)
}
