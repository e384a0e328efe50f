// Package storage é o armazenamento chave/valor genérico com serialização JSON.
//
// Falhas de leitura caem no valor padrão informado pelo chamador; falhas de
// escrita são registradas no log e descartadas. Nenhuma operação do Store
// devolve erro ao chamador, com exceção do que a importação/exportação
// precisa sinalizar.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-revenda/pkg/events"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// Store é o armazenamento genérico sobre um Backend
type Store struct {
	backend       Backend
	bus           events.Bus
	logger        logger.Logger
	origin        string
	maxValueBytes int
	now           func() time.Time
}

// Option configura o Store
type Option func(*Store)

// WithBus define o canal onde as alterações são publicadas
func WithBus(bus events.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithLogger define o logger
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMaxValueBytes limita o tamanho de cada valor gravado (0 = sem limite)
func WithMaxValueBytes(n int) Option {
	return func(s *Store) { s.maxValueBytes = n }
}

// WithOrigin fixa a origem usada nas notificações
func WithOrigin(origin string) Option {
	return func(s *Store) { s.origin = origin }
}

// NewStore cria um novo Store
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		bus:     events.NopBus{},
		logger:  logger.NewNop(),
		origin:  uuid.New().String(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Origin identifica este Store nas notificações de alteração
func (s *Store) Origin() string { return s.origin }

// Bus retorna o canal de notificações
func (s *Store) Bus() events.Bus { return s.bus }

// Save serializa o valor e grava na chave. Falhas são registradas e descartadas.
func (s *Store) Save(ctx context.Context, key string, value interface{}) {
	if err := s.save(ctx, key, value); err != nil {
		s.logger.Error("erro ao salvar no armazenamento", "key", key, "error", err)
	}
}

func (s *Store) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao serializar valor: %w", err)
	}
	if s.maxValueBytes > 0 && len(data) > s.maxValueBytes {
		return fmt.Errorf("%w: %d bytes", ErrQuotaExceeded, len(data))
	}
	if err := s.backend.Set(ctx, key, string(data)); err != nil {
		return err
	}
	s.publish(ctx, key)
	return nil
}

// Raw retorna o valor bruto da chave
func (s *Store) Raw(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Error("erro ao ler do armazenamento", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// Get lê a chave e desserializa em T. Chave ausente ou valor corrompido
// retornam def; o chamador não distingue os dois casos.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok := s.Raw(ctx, key)
	if !ok {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Error("erro ao interpretar valor armazenado", "key", key, "error", err)
		return def
	}
	return out
}

// Remove apaga a chave. Falhas são registradas e descartadas.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.logger.Error("erro ao remover do armazenamento", "key", key, "error", err)
		return
	}
	s.publish(ctx, key)
}

// Clear apaga todas as chaves. Falhas são registradas e descartadas.
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.Clear(ctx); err != nil {
		s.logger.Error("erro ao limpar armazenamento", "error", err)
		return
	}
	s.publish(ctx, "")
}

// ExportData tira um retrato de todas as chaves. Valores que não são JSON
// válido entram no documento como texto.
func (s *Store) ExportData(ctx context.Context) (map[string]json.RawMessage, error) {
	entries, err := s.backend.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(entries))
	for k, v := range entries {
		if json.Valid([]byte(v)) {
			out[k] = json.RawMessage(v)
			continue
		}
		quoted, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("erro ao exportar chave %s: %w", k, err)
		}
		out[k] = quoted
	}
	return out, nil
}

// Snapshot retorna os valores brutos de todas as chaves
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	return s.backend.Entries(ctx)
}

// WriteExport grava o retrato como um único documento JSON
func (s *Store) WriteExport(ctx context.Context, w io.Writer) error {
	doc, err := s.ExportData(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ImportData interpreta o documento e substitui todo o armazenamento por ele.
// O documento é validado por completo antes de qualquer escrita; se algo
// falhar, retorna false e o armazenamento fica como estava.
func (s *Store) ImportData(ctx context.Context, document []byte) bool {
	var doc map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(document))
	if err := dec.Decode(&doc); err != nil || doc == nil {
		s.logger.Error("erro ao importar dados", "error", fmt.Errorf("%w: %v", ErrInvalidDocument, err))
		return false
	}

	entries := make(map[string]string, len(doc))
	for k, v := range doc {
		entries[k] = string(v)
	}
	return s.Commit(ctx, entries) == nil
}

// Commit grava as chaves já validadas em um único passo, substituindo as atuais
func (s *Store) Commit(ctx context.Context, entries map[string]string) error {
	if s.maxValueBytes > 0 {
		for k, v := range entries {
			if len(v) > s.maxValueBytes {
				err := fmt.Errorf("%w: chave %s", ErrQuotaExceeded, k)
				s.logger.Error("erro ao importar dados", "key", k, "error", err)
				return err
			}
		}
	}
	if err := s.backend.ReplaceAll(ctx, entries); err != nil {
		s.logger.Error("erro ao importar dados", "error", err)
		return err
	}
	s.publish(ctx, "")
	return nil
}

func (s *Store) publish(ctx context.Context, key string) {
	change := events.Change{Key: key, Origin: s.origin, At: s.now()}
	if err := s.bus.Publish(ctx, change); err != nil {
		s.logger.Warn("erro ao publicar alteração", "key", key, "error", err)
	}
}
