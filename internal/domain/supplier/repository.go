package supplier

import (
	"context"
)

// Repository define a persistência da coleção de fornecedores
type Repository interface {
	// FindAll retorna a coleção completa
	FindAll(ctx context.Context) []Supplier

	// SaveAll substitui a coleção completa
	SaveAll(ctx context.Context, suppliers []Supplier)
}
