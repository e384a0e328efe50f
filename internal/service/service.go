// Package service contém os módulos de agregação de cada coleção.
//
// Cada serviço mantém uma cópia em memória da sua coleção, carregada em Init.
// Toda mutação calcula a coleção nova e a grava inteira pelo repositório.
// As consultas derivadas (filtros, totais, séries) são sempre recalculadas a
// partir da cópia em memória.
package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/integrity"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// Erros dos serviços
var (
	ErrInvalidInput       = errors.New("dados inválidos")
	ErrDeviceNotAvailable = errors.New("aparelho não está disponível para venda")
	ErrInvalidReference   = integrity.ErrInvalidReference
	ErrEntityReferenced   = integrity.ErrEntityReferenced
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Option configura os serviços
type Option func(*options)

type options struct {
	clock    datetime.Clock
	location *time.Location
	logger   logger.Logger

	// writes serializa as mutações de todos os serviços do mesmo container,
	// para que checagem de referência e gravação aconteçam juntas
	writes *sync.Mutex
}

// WithClock define o relógio usado em datas de criação e janelas de tempo
func WithClock(clock datetime.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLocation define o fuso das janelas de "hoje" e "mês atual"
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// WithLogger define o logger
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

func withWriteLock(mu *sync.Mutex) Option {
	return func(o *options) { o.writes = mu }
}

func newOptions(opts []Option) options {
	o := options{
		clock:    datetime.SystemClock,
		location: time.Local,
		logger:   logger.NewNop(),
		writes:   &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) now() time.Time {
	return o.clock()
}

// Breakdown é uma linha de agrupamento (por modelo, categoria, forma de pagamento...)
type Breakdown struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// SeriesPoint é um intervalo da série temporal de vendas
type SeriesPoint struct {
	Period  string  `json:"period"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// sortBreakdown ordena por quantidade decrescente e, no empate, pela chave
func sortBreakdown(rows []Breakdown) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
}

// sortNewestFirst ordena pela data, mais recente primeiro. Datas ilegíveis vão para o fim.
func sortNewestFirst[T any](items []T, date func(T) string, loc *time.Location) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := datetime.ParseISO(date(items[i]), loc)
		tj, _ := datetime.ParseISO(date(items[j]), loc)
		return ti.After(tj)
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
