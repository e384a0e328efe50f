package storage

import (
	"context"
	"errors"
)

// Erros específicos do armazenamento
var (
	ErrQuotaExceeded      = errors.New("limite de armazenamento excedido")
	ErrStorageUnavailable = errors.New("armazenamento indisponível")
	ErrInvalidDocument    = errors.New("documento de importação inválido")
)

// Backend é o armazenamento chave/valor de texto por trás do Store
type Backend interface {
	// Get retorna o valor bruto da chave e se ela existe
	Get(ctx context.Context, key string) (string, bool, error)

	// Set grava o valor bruto da chave
	Set(ctx context.Context, key, value string) error

	// Delete remove a chave
	Delete(ctx context.Context, key string) error

	// Clear remove todas as chaves
	Clear(ctx context.Context) error

	// Entries retorna uma cópia de todas as chaves e valores
	Entries(ctx context.Context) (map[string]string, error)

	// ReplaceAll substitui todo o conteúdo de uma só vez: ou todas as
	// chaves novas passam a valer, ou nada muda
	ReplaceAll(ctx context.Context, entries map[string]string) error
}
