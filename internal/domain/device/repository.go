package device

import (
	"context"
)

// Repository define a persistência da coleção de aparelhos.
// A coleção é sempre lida e gravada inteira.
type Repository interface {
	// FindAll retorna a coleção completa
	FindAll(ctx context.Context) []Device

	// SaveAll substitui a coleção completa
	SaveAll(ctx context.Context, devices []Device)
}
