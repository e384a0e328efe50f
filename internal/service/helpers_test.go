package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
)

var brt = time.FixedZone("BRT", -3*60*60)

// testClock é um relógio ajustável
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, time.June, 15, 12, 0, 0, 0, brt)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// memRepo guarda a coleção em memória e conta as gravações
type memRepo[T any] struct {
	mu    sync.Mutex
	items []T
	saves int
}

func (r *memRepo[T]) FindAll(context.Context) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *memRepo[T]) SaveAll(_ context.Context, items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]T(nil), items...)
	r.saves++
}

func (r *memRepo[T]) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type memSettings struct {
	mu      sync.Mutex
	current settings.Settings
}

func (r *memSettings) Find(context.Context) settings.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *memSettings) Save(_ context.Context, s settings.Settings) {
	r.mu.Lock()
	r.current = s
	r.mu.Unlock()
}

type fixture struct {
	ctx       context.Context
	clock     *testClock
	services  *Services
	devices   *memRepo[device.Device]
	sales     *memRepo[sale.Sale]
	customers *memRepo[customer.Customer]
	suppliers *memRepo[supplier.Supplier]
	expenses  *memRepo[expense.Expense]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:       context.Background(),
		clock:     newTestClock(),
		devices:   &memRepo[device.Device]{},
		sales:     &memRepo[sale.Sale]{},
		customers: &memRepo[customer.Customer]{},
		suppliers: &memRepo[supplier.Supplier]{},
		expenses:  &memRepo[expense.Expense]{},
	}
	f.services = New(Repositories{
		Devices:   f.devices,
		Sales:     f.sales,
		Customers: f.customers,
		Suppliers: f.suppliers,
		Expenses:  f.expenses,
		Settings:  &memSettings{current: settings.Default()},
	}, WithClock(f.clock.Now), WithLocation(brt))
	f.services.Init(f.ctx)
	t.Cleanup(f.services.Close)
	return f
}

func (f *fixture) addDevice(t *testing.T, purchase, price float64) device.Device {
	t.Helper()
	d, err := f.services.Devices.Add(f.ctx, device.Device{
		Model:         "iPhone 13",
		Storage:       "128GB",
		Condition:     "excelente",
		PurchasePrice: purchase,
		SalePrice:     price,
	})
	if err != nil {
		t.Fatalf("Devices.Add() error = %v", err)
	}
	return d
}

func (f *fixture) addCustomer(t *testing.T, name string) customer.Customer {
	t.Helper()
	c, err := f.services.Customers.Add(f.ctx, customer.Customer{Name: name, Phone: "11999990000"})
	if err != nil {
		t.Fatalf("Customers.Add() error = %v", err)
	}
	return c
}

func (f *fixture) addSale(t *testing.T, d device.Device, c customer.Customer, price, profit float64, date string, status sale.Status) sale.Sale {
	t.Helper()
	v, err := f.services.Sales.Add(f.ctx, sale.Sale{
		DeviceID:      d.ID,
		CustomerID:    c.ID,
		SalePrice:     price,
		Profit:        profit,
		SaleDate:      date,
		PaymentMethod: sale.PaymentPix,
		Status:        status,
	})
	if err != nil {
		t.Fatalf("Sales.Add() error = %v", err)
	}
	return v
}
