// Package events é o canal de notificação de alterações do armazenamento.
// Quem grava publica a chave alterada; quem mantém cópia em memória assina
// o canal e recarrega a chave quando a alteração veio de outra origem.
package events

import (
	"context"
	"sync"
	"time"
)

// Change descreve a alteração de uma chave do armazenamento.
// Key vazia significa que todas as chaves foram afetadas (clear/import).
type Change struct {
	Key    string    `json:"key"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// AllKeys indica se a alteração afeta todas as chaves
func (c Change) AllKeys() bool {
	return c.Key == ""
}

// Affects indica se a alteração diz respeito à chave informada
func (c Change) Affects(key string) bool {
	return c.AllKeys() || c.Key == key
}

// Handler recebe as alterações publicadas
type Handler func(Change)

// Bus publica e distribui alterações
type Bus interface {
	Publish(ctx context.Context, change Change) error
	Subscribe(handler Handler) (unsubscribe func())
}

// LocalBus distribui as alterações dentro do próprio processo
type LocalBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// NewLocalBus cria um barramento em memória
func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[int]Handler)}
}

var _ Bus = (*LocalBus)(nil)

// Publish entrega a alteração a todos os assinantes
func (b *LocalBus) Publish(_ context.Context, change Change) error {
	b.dispatch(change)
	return nil
}

// Subscribe registra um assinante
func (b *LocalBus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

func (b *LocalBus) dispatch(change Change) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(change)
	}
}

// NopBus descarta as alterações
type NopBus struct{}

// Publish não faz nada
func (NopBus) Publish(context.Context, Change) error { return nil }

// Subscribe não registra nada
func (NopBus) Subscribe(Handler) func() { return func() {} }
