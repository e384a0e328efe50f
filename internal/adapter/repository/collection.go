package repository

import (
	"context"

	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
)

// CollectionRepository implementa o Repository de uma coleção sobre a fachada
type CollectionRepository[T any] struct {
	db   *Database
	key  string
	load func(context.Context) []T
	save func(context.Context, []T)
}

// FindAll retorna a coleção completa
func (r *CollectionRepository[T]) FindAll(ctx context.Context) []T {
	return r.load(ctx)
}

// SaveAll substitui a coleção completa
func (r *CollectionRepository[T]) SaveAll(ctx context.Context, items []T) {
	r.save(ctx, items)
}

// Watch avisa quando a coleção for alterada por outra origem
func (r *CollectionRepository[T]) Watch(fn func()) func() {
	return r.db.Watch(r.key, fn)
}

// NewDeviceRepository cria o repositório de aparelhos
func NewDeviceRepository(db *Database) *CollectionRepository[device.Device] {
	return &CollectionRepository[device.Device]{db: db, key: KeyDevices, load: db.GetDevices, save: db.SaveDevices}
}

// NewSaleRepository cria o repositório de vendas
func NewSaleRepository(db *Database) *CollectionRepository[sale.Sale] {
	return &CollectionRepository[sale.Sale]{db: db, key: KeySales, load: db.GetSales, save: db.SaveSales}
}

// NewCustomerRepository cria o repositório de clientes
func NewCustomerRepository(db *Database) *CollectionRepository[customer.Customer] {
	return &CollectionRepository[customer.Customer]{db: db, key: KeyCustomers, load: db.GetCustomers, save: db.SaveCustomers}
}

// NewSupplierRepository cria o repositório de fornecedores
func NewSupplierRepository(db *Database) *CollectionRepository[supplier.Supplier] {
	return &CollectionRepository[supplier.Supplier]{db: db, key: KeySuppliers, load: db.GetSuppliers, save: db.SaveSuppliers}
}

// NewExpenseRepository cria o repositório de despesas
func NewExpenseRepository(db *Database) *CollectionRepository[expense.Expense] {
	return &CollectionRepository[expense.Expense]{db: db, key: KeyExpenses, load: db.GetExpenses, save: db.SaveExpenses}
}

// SettingsRepository implementa settings.Repository sobre a fachada
type SettingsRepository struct {
	db *Database
}

// NewSettingsRepository cria o repositório de preferências
func NewSettingsRepository(db *Database) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Find retorna as preferências
func (r *SettingsRepository) Find(ctx context.Context) settings.Settings {
	return r.db.GetSettings(ctx)
}

// Save grava as preferências
func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) {
	r.db.SaveSettings(ctx, s)
}

// Watch avisa quando as preferências forem alteradas por outra origem
func (r *SettingsRepository) Watch(fn func()) func() {
	return r.db.Watch(KeySettings, fn)
}

var (
	_ device.Repository   = (*CollectionRepository[device.Device])(nil)
	_ sale.Repository     = (*CollectionRepository[sale.Sale])(nil)
	_ customer.Repository = (*CollectionRepository[customer.Customer])(nil)
	_ supplier.Repository = (*CollectionRepository[supplier.Supplier])(nil)
	_ expense.Repository  = (*CollectionRepository[expense.Expense])(nil)
	_ settings.Repository = (*SettingsRepository)(nil)
)
