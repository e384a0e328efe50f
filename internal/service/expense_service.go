package service

import (
	"context"
	"sort"
	"strings"

	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/integrity"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
	"github.com/hugohenrick/erp-revenda/pkg/money"
)

// ExpenseStats resume as despesas
type ExpenseStats struct {
	Total      int         `json:"total"`
	TotalSpent float64     `json:"total_spent"`
	TodaySpent float64     `json:"today_spent"`
	MonthSpent float64     `json:"month_spent"`
	ByCategory []Breakdown `json:"by_category"`
}

// ExpenseService é o módulo de agregação das despesas
type ExpenseService struct {
	items   *mirror[expense.Expense]
	devices *DeviceService
	opts    options
}

// NewExpenseService cria uma nova instância de ExpenseService
func NewExpenseService(repo expense.Repository, devices *DeviceService, opts ...Option) *ExpenseService {
	o := newOptions(opts)
	return &ExpenseService{
		items:   newMirror[expense.Expense]("expenses", repo, func(e expense.Expense) string { return e.ID }, o.logger),
		devices: devices,
		opts:    o,
	}
}

// Init carrega a coleção do armazenamento
func (s *ExpenseService) Init(ctx context.Context) { s.items.init(ctx) }

// Reload recarrega a coleção do armazenamento
func (s *ExpenseService) Reload(ctx context.Context) { s.items.load(ctx) }

// Close para de acompanhar alterações externas
func (s *ExpenseService) Close() { s.items.close() }

// List retorna todas as despesas, as mais recentes primeiro
func (s *ExpenseService) List() []expense.Expense {
	items := s.items.all()
	sortNewestFirst(items, func(e expense.Expense) string { return e.Date }, s.opts.location)
	return items
}

// GetByID busca uma despesa pelo ID
func (s *ExpenseService) GetByID(id string) (expense.Expense, bool) {
	return s.items.get(id)
}

// Add registra uma despesa. Quando informado, o aparelho precisa existir;
// despesas sem aparelho são gastos gerais da loja.
func (s *ExpenseService) Add(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	if err := e.Validate(); err != nil {
		return expense.Expense{}, invalid(err)
	}
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if err := s.checkDevice(e.DeviceID); err != nil {
		return expense.Expense{}, err
	}
	now := s.opts.now()
	e.ID = identifier.GenerateAt(identifier.Expense, now)
	e.CreatedDate = datetime.FormatISO(now)

	s.items.add(ctx, e)
	s.opts.logger.Info("Despesa registrada", "id", e.ID, "device_id", e.DeviceID, "amount", e.Amount)
	return e, nil
}

// Update aplica a atualização parcial. ID inexistente não muda nada, mas a
// coleção é gravada do mesmo jeito.
func (s *ExpenseService) Update(ctx context.Context, id string, patch expense.Patch) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if patch.DeviceID != nil {
		if err := s.checkDevice(*patch.DeviceID); err != nil {
			return err
		}
	}
	return s.items.patch(ctx, id, func(current expense.Expense) (expense.Expense, error) {
		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return current, invalid(err)
		}
		return next, nil
	})
}

// Delete remove a despesa
func (s *ExpenseService) Delete(ctx context.Context, id string) {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	s.items.removeIDs(ctx, []string{id})
}

// DeleteMany remove várias despesas
func (s *ExpenseService) DeleteMany(ctx context.Context, ids []string) {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	s.items.removeIDs(ctx, ids)
}

func (s *ExpenseService) checkDevice(id string) error {
	if id == "" {
		return nil
	}
	return integrity.CheckReference("device_id", id, identifier.Device, s.devices.Exists)
}

// ByDevice filtra as despesas de um aparelho
func (s *ExpenseService) ByDevice(deviceID string) []expense.Expense {
	return filter(s.List(), func(e expense.Expense) bool { return e.DeviceID == deviceID })
}

// ByCategory filtra as despesas pela categoria, sem diferenciar maiúsculas
func (s *ExpenseService) ByCategory(category string) []expense.Expense {
	return filter(s.List(), func(e expense.Expense) bool { return strings.EqualFold(e.Category, category) })
}

// Categories retorna as categorias em uso, em ordem alfabética
func (s *ExpenseService) Categories() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range s.items.all() {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}

// Total soma todas as despesas
func (s *ExpenseService) Total() float64 {
	return spent(s.items.all())
}

// TotalByDevice soma as despesas de um aparelho
func (s *ExpenseService) TotalByDevice(deviceID string) float64 {
	return spent(s.ByDevice(deviceID))
}

// Today retorna as despesas com data de hoje
func (s *ExpenseService) Today() []expense.Expense {
	now := s.opts.now()
	return filter(s.List(), func(e expense.Expense) bool {
		return datetime.IsSameDay(e.Date, now, s.opts.location)
	})
}

// ThisMonth retorna as despesas do mês calendário atual
func (s *ExpenseService) ThisMonth() []expense.Expense {
	now := s.opts.now()
	return filter(s.List(), func(e expense.Expense) bool {
		return datetime.IsSameMonth(e.Date, now, s.opts.location)
	})
}

// TodayTotal soma as despesas de hoje
func (s *ExpenseService) TodayTotal() float64 { return spent(s.Today()) }

// MonthTotal soma as despesas do mês
func (s *ExpenseService) MonthTotal() float64 { return spent(s.ThisMonth()) }

// CategoryBreakdown agrupa as despesas por categoria
func (s *ExpenseService) CategoryBreakdown() []Breakdown {
	index := make(map[string]int)
	rows := []Breakdown{}
	var totals []money.Accumulator
	for _, e := range s.items.all() {
		i, ok := index[e.Category]
		if !ok {
			i = len(rows)
			index[e.Category] = i
			rows = append(rows, Breakdown{Key: e.Category})
			totals = append(totals, money.Accumulator{})
		}
		rows[i].Count++
		totals[i].Add(e.Amount)
	}
	for i := range rows {
		rows[i].Total = totals[i].Value()
	}
	sortBreakdown(rows)
	return rows
}

// Stats resume as despesas
func (s *ExpenseService) Stats() ExpenseStats {
	return ExpenseStats{
		Total:      s.items.count(),
		TotalSpent: s.Total(),
		TodaySpent: s.TodayTotal(),
		MonthSpent: s.MonthTotal(),
		ByCategory: s.CategoryBreakdown(),
	}
}

func spent(items []expense.Expense) float64 {
	return money.SumBy(items, func(e expense.Expense) float64 { return e.Amount })
}
