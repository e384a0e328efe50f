package expense

import (
	"context"
)

// Repository define a persistência da coleção de despesas
type Repository interface {
	// FindAll retorna a coleção completa
	FindAll(ctx context.Context) []Expense

	// SaveAll substitui a coleção completa
	SaveAll(ctx context.Context, expenses []Expense)
}
