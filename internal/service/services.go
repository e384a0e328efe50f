package service

import (
	"context"
	"sync"

	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
	"github.com/hugohenrick/erp-revenda/internal/integrity"
)

// Repositories agrupa a persistência de todas as coleções
type Repositories struct {
	Devices   device.Repository
	Sales     sale.Repository
	Customers customer.Repository
	Suppliers supplier.Repository
	Expenses  expense.Repository
	Settings  settings.Repository
}

// Services é o conjunto de módulos de agregação, construído uma vez e
// compartilhado por quem precisar
type Services struct {
	Devices   *DeviceService
	Sales     *SaleService
	Customers *CustomerService
	Suppliers *SupplierService
	Expenses  *ExpenseService
	Settings  *SettingsService
	Reports   *ReportService
}

// New monta os serviços e liga as referências entre coleções. Todos os
// serviços compartilham a mesma trava de escrita.
func New(repos Repositories, opts ...Option) *Services {
	opts = append(append([]Option{}, opts...), withWriteLock(&sync.Mutex{}))
	s := &Services{
		Devices:   NewDeviceService(repos.Devices, opts...),
		Customers: NewCustomerService(repos.Customers, opts...),
		Suppliers: NewSupplierService(repos.Suppliers, opts...),
		Settings:  NewSettingsService(repos.Settings, opts...),
	}
	s.Sales = NewSaleService(repos.Sales, s.Devices, s.Customers, opts...)
	s.Expenses = NewExpenseService(repos.Expenses, s.Devices, opts...)
	s.Reports = NewReportService(s.Devices, s.Sales, s.Customers, s.Suppliers, s.Expenses)

	s.Devices.supplierExists = s.Suppliers.Exists
	s.Devices.oldStockDays = func() int { return s.Settings.Get().OldDevicesAlert }
	s.Devices.references = func() map[string]integrity.Source {
		return map[string]integrity.Source{
			"sales": integrity.NewSource(s.Sales.items.all(),
				func(v sale.Sale) string { return v.ID },
				func(v sale.Sale) string { return v.DeviceID }),
			"expenses": integrity.NewSource(s.Expenses.items.all(),
				func(e expense.Expense) string { return e.ID },
				func(e expense.Expense) string { return e.DeviceID }),
		}
	}
	s.Customers.references = func() map[string]integrity.Source {
		return map[string]integrity.Source{
			"sales": integrity.NewSource(s.Sales.items.all(),
				func(v sale.Sale) string { return v.ID },
				func(v sale.Sale) string { return v.CustomerID }),
		}
	}
	s.Suppliers.references = func() map[string]integrity.Source {
		return map[string]integrity.Source{
			"devices": integrity.NewSource(s.Devices.items.all(),
				func(d device.Device) string { return d.ID },
				func(d device.Device) string { return d.SupplierID }),
		}
	}
	return s
}

// Init carrega todas as coleções
func (s *Services) Init(ctx context.Context) {
	s.Settings.Init(ctx)
	s.Suppliers.Init(ctx)
	s.Customers.Init(ctx)
	s.Devices.Init(ctx)
	s.Sales.Init(ctx)
	s.Expenses.Init(ctx)
}

// Reload recarrega todas as coleções, por exemplo depois de importar um backup
func (s *Services) Reload(ctx context.Context) {
	s.Settings.Reload(ctx)
	s.Suppliers.Reload(ctx)
	s.Customers.Reload(ctx)
	s.Devices.Reload(ctx)
	s.Sales.Reload(ctx)
	s.Expenses.Reload(ctx)
}

// Close para de acompanhar alterações externas
func (s *Services) Close() {
	s.Settings.Close()
	s.Suppliers.Close()
	s.Customers.Close()
	s.Devices.Close()
	s.Sales.Close()
	s.Expenses.Close()
}
