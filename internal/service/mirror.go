package service

import (
	"context"
	"sync"

	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

type collection[T any] interface {
	FindAll(ctx context.Context) []T
	SaveAll(ctx context.Context, items []T)
}

// watcher é implementado pelos repositórios que avisam sobre alterações feitas
// por outra origem (outro processo sobre o mesmo armazenamento)
type watcher interface {
	Watch(fn func()) (stop func())
}

// mirror é a cópia em memória de uma coleção.
// A função de update nunca deve consultar outro mirror enquanto segura o lock.
type mirror[T any] struct {
	mu     sync.RWMutex
	name   string
	repo   collection[T]
	id     func(T) string
	items  []T
	stop   func()
	logger logger.Logger
}

func newMirror[T any](name string, repo collection[T], id func(T) string, log logger.Logger) *mirror[T] {
	return &mirror[T]{name: name, repo: repo, id: id, items: []T{}, logger: log}
}

func (m *mirror[T]) init(ctx context.Context) {
	m.load(ctx)
	w, ok := m.repo.(watcher)
	if !ok || m.stop != nil {
		return
	}
	m.stop = w.Watch(func() {
		m.load(context.Background())
		m.logger.Debug("coleção recarregada após alteração externa", "collection", m.name)
	})
}

func (m *mirror[T]) load(ctx context.Context) {
	items := m.repo.FindAll(ctx)
	if items == nil {
		items = []T{}
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
}

func (m *mirror[T]) close() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
}

func (m *mirror[T]) all() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

func (m *mirror[T]) get(id string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if m.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (m *mirror[T]) has(id string) bool {
	_, ok := m.get(id)
	return ok
}

func (m *mirror[T]) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// update calcula a coleção nova a partir de uma cópia da atual, troca a cópia
// em memória e grava a coleção inteira. Se fn falhar nada muda.
func (m *mirror[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := make([]T, len(m.items))
	copy(current, m.items)
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	m.items = next
	m.repo.SaveAll(ctx, next)
	return nil
}

// add acrescenta um registro no fim da coleção
func (m *mirror[T]) add(ctx context.Context, item T) {
	_ = m.update(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// patch substitui o registro id pelo resultado de fn. Id inexistente não muda
// nada, mas a coleção é gravada do mesmo jeito.
func (m *mirror[T]) patch(ctx context.Context, id string, fn func(T) (T, error)) error {
	return m.update(ctx, func(items []T) ([]T, error) {
		for i, it := range items {
			if m.id(it) != id {
				continue
			}
			next, err := fn(it)
			if err != nil {
				return nil, err
			}
			items[i] = next
			break
		}
		return items, nil
	})
}

// removeIDs tira da coleção os registros com os ids informados e grava o resultado
func (m *mirror[T]) removeIDs(ctx context.Context, ids []string) {
	set := toSet(ids)
	_ = m.update(ctx, func(items []T) ([]T, error) {
		return filter(items, func(it T) bool { return !set[m.id(it)] }), nil
	})
}
