package service

import (
	"context"
	"strings"

	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/integrity"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
	"github.com/hugohenrick/erp-revenda/pkg/money"
)

// DeviceStats resume o estoque
type DeviceStats struct {
	Total            int                   `json:"total"`
	ByStatus         map[device.Status]int `json:"by_status"`
	Available        int                   `json:"available"`
	InventoryValue   float64               `json:"inventory_value"`
	PotentialRevenue float64               `json:"potential_revenue"`
	PotentialProfit  float64               `json:"potential_profit"`
	OldStock         int                   `json:"old_stock"`
	OldStockDays     int                   `json:"old_stock_days"`
}

// DeviceService é o módulo de agregação dos aparelhos
type DeviceService struct {
	items *mirror[device.Device]
	opts  options

	// preenchidos pelo container de serviços
	supplierExists integrity.Lookup
	references     func() map[string]integrity.Source
	oldStockDays   func() int
}

// NewDeviceService cria uma nova instância de DeviceService
func NewDeviceService(repo device.Repository, opts ...Option) *DeviceService {
	o := newOptions(opts)
	return &DeviceService{
		items: newMirror[device.Device]("devices", repo, func(d device.Device) string { return d.ID }, o.logger),
		opts:  o,
	}
}

// Init carrega a coleção do armazenamento
func (s *DeviceService) Init(ctx context.Context) { s.items.init(ctx) }

// Reload recarrega a coleção do armazenamento
func (s *DeviceService) Reload(ctx context.Context) { s.items.load(ctx) }

// Close para de acompanhar alterações externas
func (s *DeviceService) Close() { s.items.close() }

// List retorna todos os aparelhos, os mais recentes primeiro
func (s *DeviceService) List() []device.Device {
	items := s.items.all()
	sortNewestFirst(items, func(d device.Device) string { return d.CreatedDate }, s.opts.location)
	return items
}

// GetByID busca um aparelho pelo ID
func (s *DeviceService) GetByID(id string) (device.Device, bool) {
	return s.items.get(id)
}

// Exists indica se o aparelho existe
func (s *DeviceService) Exists(id string) bool {
	return s.items.has(id)
}

// Add cadastra um aparelho com ID e data de criação novos
func (s *DeviceService) Add(ctx context.Context, d device.Device) (device.Device, error) {
	now := s.opts.now()
	d.ID = identifier.GenerateAt(identifier.Device, now)
	d.CreatedDate = datetime.FormatISO(now)
	if d.Status == "" {
		d.Status = device.StatusAvailable
	}
	if d.Status == device.StatusSold {
		return device.Device{}, invalid(device.ErrInvalidStatusTransition)
	}
	if err := d.Validate(); err != nil {
		return device.Device{}, invalid(err)
	}

	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if err := s.checkSupplier(d.SupplierID); err != nil {
		return device.Device{}, err
	}

	s.items.add(ctx, d)
	s.opts.logger.Info("Aparelho cadastrado", "id", d.ID, "model", d.Model)
	return d, nil
}

// Update aplica a atualização parcial. ID inexistente não muda nada, mas a
// coleção é gravada do mesmo jeito.
func (s *DeviceService) Update(ctx context.Context, id string, patch device.Patch) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if patch.SupplierID != nil {
		if err := s.checkSupplier(*patch.SupplierID); err != nil {
			return err
		}
	}
	return s.items.patch(ctx, id, func(current device.Device) (device.Device, error) {
		next := patch.Apply(current)
		if !current.Status.CanTransitionTo(next.Status) {
			return current, device.ErrInvalidStatusTransition
		}
		if err := next.Validate(); err != nil {
			return current, invalid(err)
		}
		return next, nil
	})
}

// Reserve marca o aparelho como reservado
func (s *DeviceService) Reserve(ctx context.Context, id string) error {
	status := device.StatusReserved
	return s.Update(ctx, id, device.Patch{Status: &status})
}

// Release devolve um aparelho reservado para disponível
func (s *DeviceService) Release(ctx context.Context, id string) error {
	status := device.StatusAvailable
	return s.Update(ctx, id, device.Patch{Status: &status})
}

// MarkSold marca o aparelho como vendido
func (s *DeviceService) MarkSold(ctx context.Context, id string) error {
	status := device.StatusSold
	return s.Update(ctx, id, device.Patch{Status: &status})
}

// sell troca o status de disponível para vendido e devolve o aparelho como
// estava antes. Falha com ErrDeviceNotAvailable se ele não existir ou não
// estiver disponível. Quem chama precisa segurar a trava de escrita.
func (s *DeviceService) sell(ctx context.Context, id string) (device.Device, error) {
	var before device.Device
	err := s.items.update(ctx, func(items []device.Device) ([]device.Device, error) {
		for i, d := range items {
			if d.ID != id {
				continue
			}
			if !d.IsAvailable() {
				return nil, ErrDeviceNotAvailable
			}
			before = d
			items[i].Status = device.StatusSold
			return items, nil
		}
		return nil, ErrDeviceNotAvailable
	})
	return before, err
}

// Delete remove o aparelho. Falha com ErrEntityReferenced se houver vendas
// ou despesas apontando para ele.
func (s *DeviceService) Delete(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

// DeleteMany remove vários aparelhos. Se algum estiver referenciado nenhum é removido.
func (s *DeviceService) DeleteMany(ctx context.Context, ids []string) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if err := s.guard(ids); err != nil {
		return err
	}
	s.items.removeIDs(ctx, ids)
	return nil
}

func (s *DeviceService) guard(ids []string) error {
	if s.references == nil {
		return nil
	}
	sources := s.references()
	for _, id := range ids {
		if err := integrity.Guard(id, identifier.Device, sources); err != nil {
			return err
		}
	}
	return nil
}

func (s *DeviceService) checkSupplier(id string) error {
	if id == "" || s.supplierExists == nil {
		return nil
	}
	return integrity.CheckReference("supplier_id", id, identifier.Supplier, s.supplierExists)
}

// ByStatus filtra os aparelhos pelo status
func (s *DeviceService) ByStatus(status device.Status) []device.Device {
	return filter(s.List(), func(d device.Device) bool { return d.Status == status })
}

// BySupplier filtra os aparelhos pelo fornecedor
func (s *DeviceService) BySupplier(supplierID string) []device.Device {
	return filter(s.List(), func(d device.Device) bool { return d.SupplierID == supplierID })
}

// Search busca o termo no modelo, cor, armazenamento, número de série e IMEIs
func (s *DeviceService) Search(term string) []device.Device {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}
	return filter(s.List(), func(d device.Device) bool {
		for _, field := range []string{d.Model, d.Color, d.Storage, d.SerialNumber, d.IMEI1, d.IMEI2} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

// CountByStatus conta os aparelhos em cada status. Todos os status aparecem.
func (s *DeviceService) CountByStatus() map[device.Status]int {
	out := map[device.Status]int{
		device.StatusAvailable: 0,
		device.StatusSold:      0,
		device.StatusReserved:  0,
	}
	for _, d := range s.items.all() {
		out[d.Status]++
	}
	return out
}

// AvailableCount é a quantidade de aparelhos disponíveis
func (s *DeviceService) AvailableCount() int {
	return len(s.available())
}

// InventoryValue é a soma dos preços de compra dos aparelhos disponíveis
func (s *DeviceService) InventoryValue() float64 {
	return money.SumBy(s.available(), func(d device.Device) float64 { return d.PurchasePrice })
}

// PotentialRevenue é a soma dos preços de venda dos aparelhos disponíveis
func (s *DeviceService) PotentialRevenue() float64 {
	return money.SumBy(s.available(), func(d device.Device) float64 { return d.SalePrice })
}

// PotentialProfit é o lucro previsto se todo o estoque disponível for vendido
func (s *DeviceService) PotentialProfit() float64 {
	return money.Sub(s.PotentialRevenue(), s.InventoryValue())
}

// OldDevices retorna os aparelhos disponíveis cadastrados há days dias ou
// mais. Conta dias completos de 24h desde created_date.
func (s *DeviceService) OldDevices(days int) []device.Device {
	now := s.opts.now()
	return filter(s.available(), func(d device.Device) bool {
		created, ok := datetime.ParseISO(d.CreatedDate, s.opts.location)
		if !ok {
			return false
		}
		return datetime.DaysSince(created, now) >= days
	})
}

// OldStockThreshold é o prazo configurado do alerta de estoque parado
func (s *DeviceService) OldStockThreshold() int {
	if s.oldStockDays == nil {
		return settings.DefaultOldDevicesAlert
	}
	return s.oldStockDays()
}

// OldStock usa o prazo das preferências
func (s *DeviceService) OldStock() []device.Device {
	return s.OldDevices(s.OldStockThreshold())
}

// ByModel agrupa os aparelhos disponíveis por modelo, somando o preço de compra
func (s *DeviceService) ByModel() []Breakdown {
	return s.breakdown(func(d device.Device) string { return d.Model })
}

// ByCondition agrupa os aparelhos disponíveis pelo estado de conservação
func (s *DeviceService) ByCondition() []Breakdown {
	return s.breakdown(func(d device.Device) string { return d.Condition })
}

func (s *DeviceService) breakdown(key func(device.Device) string) []Breakdown {
	index := make(map[string]int)
	var rows []Breakdown
	totals := make(map[string]*money.Accumulator)
	for _, d := range s.available() {
		k := key(d)
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, Breakdown{Key: k})
			totals[k] = &money.Accumulator{}
		}
		rows[i].Count++
		totals[k].Add(d.PurchasePrice)
	}
	for i := range rows {
		rows[i].Total = totals[rows[i].Key].Value()
	}
	if rows == nil {
		rows = []Breakdown{}
	}
	sortBreakdown(rows)
	return rows
}

// Stats resume o estoque
func (s *DeviceService) Stats() DeviceStats {
	days := s.OldStockThreshold()
	return DeviceStats{
		Total:            s.items.count(),
		ByStatus:         s.CountByStatus(),
		Available:        s.AvailableCount(),
		InventoryValue:   s.InventoryValue(),
		PotentialRevenue: s.PotentialRevenue(),
		PotentialProfit:  s.PotentialProfit(),
		OldStock:         len(s.OldDevices(days)),
		OldStockDays:     days,
	}
}

func (s *DeviceService) available() []device.Device {
	return filter(s.items.all(), func(d device.Device) bool { return d.IsAvailable() })
}
