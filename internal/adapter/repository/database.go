package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/adapter/storage"
	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/events"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// Chaves das coleções no armazenamento
const (
	KeyDevices   = "devices"
	KeySales     = "sales"
	KeyCustomers = "customers"
	KeySuppliers = "suppliers"
	KeyExpenses  = "expenses"
	KeySettings  = "settings"
)

// CollectionKeys são as chaves obrigatórias de um backup
var CollectionKeys = []string{KeyDevices, KeySales, KeyCustomers, KeySuppliers, KeyExpenses}

var (
	ErrInvalidBackup = errors.New("arquivo de backup inválido")
	ErrMissingKey    = errors.New("coleção ausente no backup")
)

// Backup é o documento de exportação completo
type Backup struct {
	Devices    []device.Device     `json:"devices"`
	Sales      []sale.Sale         `json:"sales"`
	Customers  []customer.Customer `json:"customers"`
	Suppliers  []supplier.Supplier `json:"suppliers"`
	Expenses   []expense.Expense   `json:"expenses"`
	Settings   settings.Settings   `json:"settings"`
	ExportDate string              `json:"exportDate"`
}

// Database é a fachada tipada sobre o armazenamento chave/valor
type Database struct {
	store  *storage.Store
	logger logger.Logger
	now    datetime.Clock
}

// NewDatabase cria uma nova instância de Database
func NewDatabase(store *storage.Store, log logger.Logger) *Database {
	if log == nil {
		log = logger.NewNop()
	}
	return &Database{store: store, logger: log, now: datetime.SystemClock}
}

// WithClock troca o relógio usado na data de exportação
func (d *Database) WithClock(clock datetime.Clock) *Database {
	d.now = clock
	return d
}

// Store retorna o armazenamento por trás da fachada
func (d *Database) Store() *storage.Store { return d.store }

// GetDevices retorna a coleção de aparelhos
func (d *Database) GetDevices(ctx context.Context) []device.Device {
	return nonNil(storage.Get(ctx, d.store, KeyDevices, []device.Device{}))
}

// SaveDevices grava a coleção de aparelhos
func (d *Database) SaveDevices(ctx context.Context, devices []device.Device) {
	d.store.Save(ctx, KeyDevices, nonNil(devices))
}

// GetSales retorna a coleção de vendas
func (d *Database) GetSales(ctx context.Context) []sale.Sale {
	return nonNil(storage.Get(ctx, d.store, KeySales, []sale.Sale{}))
}

// SaveSales grava a coleção de vendas
func (d *Database) SaveSales(ctx context.Context, sales []sale.Sale) {
	d.store.Save(ctx, KeySales, nonNil(sales))
}

// GetCustomers retorna a coleção de clientes
func (d *Database) GetCustomers(ctx context.Context) []customer.Customer {
	return nonNil(storage.Get(ctx, d.store, KeyCustomers, []customer.Customer{}))
}

// SaveCustomers grava a coleção de clientes
func (d *Database) SaveCustomers(ctx context.Context, customers []customer.Customer) {
	d.store.Save(ctx, KeyCustomers, nonNil(customers))
}

// GetSuppliers retorna a coleção de fornecedores
func (d *Database) GetSuppliers(ctx context.Context) []supplier.Supplier {
	return nonNil(storage.Get(ctx, d.store, KeySuppliers, []supplier.Supplier{}))
}

// SaveSuppliers grava a coleção de fornecedores
func (d *Database) SaveSuppliers(ctx context.Context, suppliers []supplier.Supplier) {
	d.store.Save(ctx, KeySuppliers, nonNil(suppliers))
}

// GetExpenses retorna a coleção de despesas
func (d *Database) GetExpenses(ctx context.Context) []expense.Expense {
	return nonNil(storage.Get(ctx, d.store, KeyExpenses, []expense.Expense{}))
}

// SaveExpenses grava a coleção de despesas
func (d *Database) SaveExpenses(ctx context.Context, expenses []expense.Expense) {
	d.store.Save(ctx, KeyExpenses, nonNil(expenses))
}

// GetSettings retorna as preferências. Campos ausentes no valor gravado
// ficam com o valor de fábrica.
func (d *Database) GetSettings(ctx context.Context) settings.Settings {
	raw, ok := d.store.Raw(ctx, KeySettings)
	if !ok {
		return settings.Default()
	}
	s := settings.Default()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		d.logger.Error("erro ao interpretar preferências", "error", err)
		return settings.Default()
	}
	return s
}

// SaveSettings grava as preferências
func (d *Database) SaveSettings(ctx context.Context, s settings.Settings) {
	d.store.Save(ctx, KeySettings, s)
}

// Export reúne todas as coleções e as preferências em um único documento
func (d *Database) Export(ctx context.Context) Backup {
	return Backup{
		Devices:    d.GetDevices(ctx),
		Sales:      d.GetSales(ctx),
		Customers:  d.GetCustomers(ctx),
		Suppliers:  d.GetSuppliers(ctx),
		Expenses:   d.GetExpenses(ctx),
		Settings:   d.GetSettings(ctx),
		ExportDate: datetime.FormatISO(d.now()),
	}
}

// WriteBackup grava o documento de exportação
func (d *Database) WriteBackup(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Export(ctx)); err != nil {
		return fmt.Errorf("erro ao gravar backup: %w", err)
	}
	return nil
}

// BackupFileName é o nome sugerido para o arquivo de exportação
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("backup-%s.json", now.Format(datetime.DayLayout))
}

// ParseBackup lê e valida um documento de backup sem tocar no armazenamento.
// As cinco coleções precisam estar presentes; as preferências são opcionais.
// Os registros são lidos nos tipos do domínio, então campos desconhecidos
// são descartados.
func ParseBackup(r io.Reader) (Backup, bool, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Backup{}, false, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if doc == nil {
		return Backup{}, false, ErrInvalidBackup
	}
	for _, key := range CollectionKeys {
		raw, ok := doc[key]
		if !ok || isNull(raw) {
			return Backup{}, false, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}

	var b Backup
	targets := map[string]interface{}{
		KeyDevices:   &b.Devices,
		KeySales:     &b.Sales,
		KeyCustomers: &b.Customers,
		KeySuppliers: &b.Suppliers,
		KeyExpenses:  &b.Expenses,
	}
	for key, target := range targets {
		if err := json.Unmarshal(doc[key], target); err != nil {
			return Backup{}, false, fmt.Errorf("%w: %s: %v", ErrInvalidBackup, key, err)
		}
	}

	b.Settings = settings.Default()
	raw, hasSettings := doc[KeySettings]
	if hasSettings && !isNull(raw) {
		if err := json.Unmarshal(raw, &b.Settings); err != nil {
			return Backup{}, false, fmt.Errorf("%w: %s: %v", ErrInvalidBackup, KeySettings, err)
		}
	} else {
		hasSettings = false
	}
	if raw, ok := doc["exportDate"]; ok {
		_ = json.Unmarshal(raw, &b.ExportDate)
	}
	return b, hasSettings, nil
}

// Import substitui as coleções pelas do backup em um único passo. Se o
// documento for inválido nada é gravado. Preferências ausentes no backup
// mantêm as atuais; chaves fora da fachada são preservadas.
func (d *Database) Import(ctx context.Context, r io.Reader) error {
	b, hasSettings, err := ParseBackup(r)
	if err != nil {
		d.logger.Error("erro ao importar backup", "error", err)
		return err
	}

	entries, err := d.store.Snapshot(ctx)
	if err != nil {
		d.logger.Error("erro ao ler armazenamento para importação", "error", err)
		return err
	}

	staged := map[string]interface{}{
		KeyDevices:   nonNil(b.Devices),
		KeySales:     nonNil(b.Sales),
		KeyCustomers: nonNil(b.Customers),
		KeySuppliers: nonNil(b.Suppliers),
		KeyExpenses:  nonNil(b.Expenses),
	}
	if hasSettings {
		staged[KeySettings] = b.Settings
	}
	for key, value := range staged {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("erro ao serializar %s: %w", key, err)
		}
		entries[key] = string(data)
	}

	if err := d.store.Commit(ctx, entries); err != nil {
		return err
	}
	d.logger.Info("Backup importado",
		"devices", len(b.Devices),
		"sales", len(b.Sales),
		"customers", len(b.Customers),
		"suppliers", len(b.Suppliers),
		"expenses", len(b.Expenses),
	)
	return nil
}

// Watch chama fn sempre que a chave for alterada por outra origem
func (d *Database) Watch(key string, fn func()) (stop func()) {
	origin := d.store.Origin()
	return d.store.Bus().Subscribe(func(c events.Change) {
		if c.Origin == origin || !c.Affects(key) {
			return
		}
		fn()
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
