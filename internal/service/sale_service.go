package service

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/integrity"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
	"github.com/hugohenrick/erp-revenda/pkg/money"
)

// Tamanhos padrão das séries de vendas
const (
	DailySeriesDays     = 30
	MonthlySeriesMonths = 12
)

// SaleStats resume as vendas
type SaleStats struct {
	Total         int                 `json:"total"`
	ByStatus      map[sale.Status]int `json:"by_status"`
	TotalRevenue  float64             `json:"total_revenue"`
	TotalProfit   float64             `json:"total_profit"`
	TodayCount    int                 `json:"today_count"`
	TodayRevenue  float64             `json:"today_revenue"`
	TodayProfit   float64             `json:"today_profit"`
	MonthCount    int                 `json:"month_count"`
	MonthRevenue  float64             `json:"month_revenue"`
	MonthProfit   float64             `json:"month_profit"`
	AverageTicket float64             `json:"average_ticket"`
}

// SellInput são os dados de uma venda cujo lucro é calculado na hora
type SellInput struct {
	DeviceID      string             `json:"device_id"`
	CustomerID    string             `json:"customer_id"`
	SalePrice     float64            `json:"sale_price"`
	SaleDate      string             `json:"sale_date"`
	PaymentMethod sale.PaymentMethod `json:"payment_method"`
	Status        sale.Status        `json:"status"`
}

// SaleService é o módulo de agregação das vendas
type SaleService struct {
	items     *mirror[sale.Sale]
	devices   *DeviceService
	customers *CustomerService
	opts      options
}

// NewSaleService cria uma nova instância de SaleService. devices e customers
// resolvem as referências das vendas novas.
func NewSaleService(repo sale.Repository, devices *DeviceService, customers *CustomerService, opts ...Option) *SaleService {
	o := newOptions(opts)
	return &SaleService{
		items:     newMirror[sale.Sale]("sales", repo, func(s sale.Sale) string { return s.ID }, o.logger),
		devices:   devices,
		customers: customers,
		opts:      o,
	}
}

// Init carrega a coleção do armazenamento
func (s *SaleService) Init(ctx context.Context) { s.items.init(ctx) }

// Reload recarrega a coleção do armazenamento
func (s *SaleService) Reload(ctx context.Context) { s.items.load(ctx) }

// Close para de acompanhar alterações externas
func (s *SaleService) Close() { s.items.close() }

// List retorna todas as vendas, as mais recentes primeiro
func (s *SaleService) List() []sale.Sale {
	items := s.items.all()
	sortNewestFirst(items, func(v sale.Sale) string { return v.SaleDate }, s.opts.location)
	return items
}

// GetByID busca uma venda pelo ID
func (s *SaleService) GetByID(id string) (sale.Sale, bool) {
	return s.items.get(id)
}

// Add registra uma venda com o lucro informado pelo chamador. O aparelho e o
// cliente precisam existir e o aparelho não pode já estar vendido.
func (s *SaleService) Add(ctx context.Context, v sale.Sale) (sale.Sale, error) {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	v, err := s.prepare(v)
	if err != nil {
		return sale.Sale{}, err
	}
	d, _ := s.devices.GetByID(v.DeviceID)
	if d.Status == device.StatusSold {
		return sale.Sale{}, ErrDeviceNotAvailable
	}

	s.items.add(ctx, v)
	s.opts.logger.Info("Venda registrada", "id", v.ID, "device_id", v.DeviceID, "profit", v.Profit)
	return v, nil
}

// SellDevice vende um aparelho disponível: calcula o lucro sobre o preço de
// compra atual, registra a venda e marca o aparelho como vendido. O lucro fica
// gravado na venda e não acompanha mudanças futuras no preço de compra.
func (s *SaleService) SellDevice(ctx context.Context, in SellInput) (sale.Sale, error) {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	v, err := s.prepare(sale.Sale{
		DeviceID:      in.DeviceID,
		CustomerID:    in.CustomerID,
		SalePrice:     in.SalePrice,
		SaleDate:      in.SaleDate,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
	})
	if err != nil {
		return sale.Sale{}, err
	}
	d, err := s.devices.sell(ctx, v.DeviceID)
	if err != nil {
		return sale.Sale{}, err
	}
	v.Profit = money.Sub(v.SalePrice, d.PurchasePrice)
	s.items.add(ctx, v)
	s.opts.logger.Info("Aparelho vendido", "id", v.ID, "device_id", d.ID, "profit", v.Profit)
	return v, nil
}

// prepare preenche ID, datas e padrões e valida a venda e suas referências
func (s *SaleService) prepare(v sale.Sale) (sale.Sale, error) {
	now := s.opts.now()
	v.ID = identifier.GenerateAt(identifier.Sale, now)
	v.CreatedDate = datetime.FormatISO(now)
	if v.SaleDate == "" {
		v.SaleDate = v.CreatedDate
	}
	if v.Status == "" {
		v.Status = sale.StatusCompleted
	}
	if err := v.Validate(); err != nil {
		return sale.Sale{}, invalid(err)
	}
	if err := s.checkReferences(v.DeviceID, v.CustomerID); err != nil {
		return sale.Sale{}, err
	}
	return v, nil
}

func (s *SaleService) checkReferences(deviceID, customerID string) error {
	if deviceID != "" {
		if err := integrity.CheckReference("device_id", deviceID, identifier.Device, s.devices.Exists); err != nil {
			return err
		}
	}
	if customerID != "" {
		if err := integrity.CheckReference("customer_id", customerID, identifier.Customer, s.customers.Exists); err != nil {
			return err
		}
	}
	return nil
}

// Update aplica a atualização parcial. ID inexistente não muda nada, mas a
// coleção é gravada do mesmo jeito.
func (s *SaleService) Update(ctx context.Context, id string, patch sale.Patch) error {
	var deviceID, customerID string
	if patch.DeviceID != nil {
		deviceID = *patch.DeviceID
	}
	if patch.CustomerID != nil {
		customerID = *patch.CustomerID
	}
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if err := s.checkReferences(deviceID, customerID); err != nil {
		return err
	}
	return s.items.patch(ctx, id, func(current sale.Sale) (sale.Sale, error) {
		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return current, invalid(err)
		}
		return next, nil
	})
}

// Delete remove a venda. O aparelho continua com o status que tinha.
func (s *SaleService) Delete(ctx context.Context, id string) {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	s.items.removeIDs(ctx, []string{id})
}

// DeleteMany remove várias vendas
func (s *SaleService) DeleteMany(ctx context.Context, ids []string) {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	s.items.removeIDs(ctx, ids)
}

// ByStatus filtra as vendas pelo status
func (s *SaleService) ByStatus(status sale.Status) []sale.Sale {
	return filter(s.List(), func(v sale.Sale) bool { return v.Status == status })
}

// ByCustomer filtra as vendas de um cliente
func (s *SaleService) ByCustomer(customerID string) []sale.Sale {
	return filter(s.List(), func(v sale.Sale) bool { return v.CustomerID == customerID })
}

// ByDevice filtra as vendas de um aparelho
func (s *SaleService) ByDevice(deviceID string) []sale.Sale {
	return filter(s.List(), func(v sale.Sale) bool { return v.DeviceID == deviceID })
}

// ByPaymentMethod filtra as vendas pela forma de pagamento
func (s *SaleService) ByPaymentMethod(method sale.PaymentMethod) []sale.Sale {
	return filter(s.List(), func(v sale.Sale) bool { return v.PaymentMethod == method })
}

// Recent retorna as n vendas mais recentes
func (s *SaleService) Recent(n int) []sale.Sale {
	items := s.List()
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// Today retorna as vendas cuja data, no formato yyyy-MM-dd, é a de hoje
func (s *SaleService) Today() []sale.Sale {
	now := s.opts.now()
	return filter(s.List(), func(v sale.Sale) bool {
		return datetime.IsSameDay(v.SaleDate, now, s.opts.location)
	})
}

// ThisMonth retorna as vendas do mês calendário atual
func (s *SaleService) ThisMonth() []sale.Sale {
	now := s.opts.now()
	return filter(s.List(), func(v sale.Sale) bool {
		return datetime.IsSameMonth(v.SaleDate, now, s.opts.location)
	})
}

// TotalRevenue soma o valor das vendas não canceladas
func (s *SaleService) TotalRevenue() float64 {
	return revenue(s.items.all())
}

// TotalProfit soma o lucro das vendas não canceladas
func (s *SaleService) TotalProfit() float64 {
	return profit(s.items.all())
}

// TodayRevenue soma o valor das vendas de hoje
func (s *SaleService) TodayRevenue() float64 { return revenue(s.Today()) }

// TodayProfit soma o lucro das vendas de hoje
func (s *SaleService) TodayProfit() float64 { return profit(s.Today()) }

// MonthRevenue soma o valor das vendas do mês
func (s *SaleService) MonthRevenue() float64 { return revenue(s.ThisMonth()) }

// MonthProfit soma o lucro das vendas do mês
func (s *SaleService) MonthProfit() float64 { return profit(s.ThisMonth()) }

// CountByStatus conta as vendas em cada status. Todos os status aparecem.
func (s *SaleService) CountByStatus() map[sale.Status]int {
	out := make(map[sale.Status]int, len(sale.Statuses))
	for _, st := range sale.Statuses {
		out[st] = 0
	}
	for _, v := range s.items.all() {
		out[v.Status]++
	}
	return out
}

// DailySeries agrupa as vendas dos últimos days dias, terminando hoje.
// Dias sem venda aparecem zerados.
func (s *SaleService) DailySeries(days int) []SeriesPoint {
	loc := s.opts.location
	today := datetime.StartOfDay(s.opts.now(), loc)
	return s.series(days, func(i int) time.Time {
		return today.AddDate(0, 0, i-(days-1))
	}, datetime.DayLayout)
}

// MonthlySeries agrupa as vendas dos últimos months meses, terminando no mês atual.
// Meses sem venda aparecem zerados.
func (s *SaleService) MonthlySeries(months int) []SeriesPoint {
	loc := s.opts.location
	month := datetime.StartOfMonth(s.opts.now(), loc)
	return s.series(months, func(i int) time.Time {
		return month.AddDate(0, i-(months-1), 0)
	}, datetime.MonthLayout)
}

func (s *SaleService) series(n int, period func(i int) time.Time, layout string) []SeriesPoint {
	if n <= 0 {
		return []SeriesPoint{}
	}
	loc := s.opts.location
	points := make([]SeriesPoint, n)
	index := make(map[string]int, n)
	revenues := make([]money.Accumulator, n)
	profits := make([]money.Accumulator, n)
	for i := 0; i < n; i++ {
		key := period(i).Format(layout)
		points[i] = SeriesPoint{Period: key}
		index[key] = i
	}

	for _, v := range s.items.all() {
		if !v.CountsAsRevenue() {
			continue
		}
		t, ok := datetime.ParseISO(v.SaleDate, loc)
		if !ok {
			continue
		}
		i, ok := index[t.In(loc).Format(layout)]
		if !ok {
			continue
		}
		points[i].Sales++
		revenues[i].Add(v.SalePrice)
		profits[i].Add(v.Profit)
	}
	for i := range points {
		points[i].Revenue = revenues[i].Value()
		points[i].Profit = profits[i].Value()
	}
	return points
}

// PaymentBreakdown agrupa as vendas não canceladas por forma de pagamento.
// Todas as formas aparecem, mesmo sem vendas.
func (s *SaleService) PaymentBreakdown() []Breakdown {
	totals := make(map[sale.PaymentMethod]*money.Accumulator, len(sale.PaymentMethods))
	counts := make(map[sale.PaymentMethod]int, len(sale.PaymentMethods))
	for _, m := range sale.PaymentMethods {
		totals[m] = &money.Accumulator{}
	}
	for _, v := range s.items.all() {
		if !v.CountsAsRevenue() {
			continue
		}
		acc, ok := totals[v.PaymentMethod]
		if !ok {
			continue
		}
		acc.Add(v.SalePrice)
		counts[v.PaymentMethod]++
	}
	rows := make([]Breakdown, 0, len(sale.PaymentMethods))
	for _, m := range sale.PaymentMethods {
		rows = append(rows, Breakdown{Key: string(m), Count: counts[m], Total: totals[m].Value()})
	}
	sortBreakdown(rows)
	return rows
}

// Stats resume as vendas
func (s *SaleService) Stats() SaleStats {
	all := s.items.all()
	today := s.Today()
	month := s.ThisMonth()
	st := SaleStats{
		Total:        len(all),
		ByStatus:     s.CountByStatus(),
		TotalRevenue: revenue(all),
		TotalProfit:  profit(all),
		TodayCount:   countRevenue(today),
		TodayRevenue: revenue(today),
		TodayProfit:  profit(today),
		MonthCount:   countRevenue(month),
		MonthRevenue: revenue(month),
		MonthProfit:  profit(month),
	}
	if n := countRevenue(all); n > 0 {
		st.AverageTicket = money.Div(st.TotalRevenue, n)
	}
	return st
}

func revenue(items []sale.Sale) float64 {
	return money.SumBy(items, func(v sale.Sale) float64 {
		if !v.CountsAsRevenue() {
			return 0
		}
		return v.SalePrice
	})
}

func profit(items []sale.Sale) float64 {
	return money.SumBy(items, func(v sale.Sale) float64 {
		if !v.CountsAsRevenue() {
			return 0
		}
		return v.Profit
	})
}

func countRevenue(items []sale.Sale) int {
	return len(filter(items, func(v sale.Sale) bool { return v.CountsAsRevenue() }))
}
