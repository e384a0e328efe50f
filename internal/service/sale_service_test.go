package service

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
)

func TestSaleService_SellDevice(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")

	v, err := f.services.Sales.SellDevice(f.ctx, SellInput{
		DeviceID:      d.ID,
		CustomerID:    c.ID,
		SalePrice:     1500,
		PaymentMethod: sale.PaymentCash,
	})
	if err != nil {
		t.Fatalf("SellDevice() error = %v", err)
	}
	if v.Profit != 500 {
		t.Errorf("Profit = %v, esperado 500", v.Profit)
	}
	if v.Status != sale.StatusCompleted {
		t.Errorf("Status = %s, esperado completed", v.Status)
	}
	if v.SaleDate != v.CreatedDate {
		t.Errorf("SaleDate = %s, esperado %s", v.SaleDate, v.CreatedDate)
	}
	got, _ := f.services.Devices.GetByID(d.ID)
	if got.Status != device.StatusSold {
		t.Errorf("status do aparelho = %s, esperado sold", got.Status)
	}
	if f.services.Devices.AvailableCount() != 0 {
		t.Error("nenhum aparelho deveria estar disponível")
	}

	_, err = f.services.Sales.SellDevice(f.ctx, SellInput{DeviceID: d.ID, CustomerID: c.ID, SalePrice: 1500, PaymentMethod: sale.PaymentCash})
	if !errors.Is(err, ErrDeviceNotAvailable) {
		t.Errorf("vender de novo error = %v", err)
	}
	if len(f.services.Sales.List()) != 1 {
		t.Errorf("vendas = %d, esperado 1", len(f.services.Sales.List()))
	}
}

func TestSaleService_SellReservedDevice(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")
	if err := f.services.Devices.Reserve(f.ctx, d.ID); err != nil {
		t.Fatal(err)
	}
	_, err := f.services.Sales.SellDevice(f.ctx, SellInput{DeviceID: d.ID, CustomerID: c.ID, SalePrice: 1500, PaymentMethod: sale.PaymentPix})
	if !errors.Is(err, ErrDeviceNotAvailable) {
		t.Errorf("SellDevice() de aparelho reservado error = %v", err)
	}
}

func TestSaleService_AddRejectsBadReferences(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")

	tests := []struct {
		name     string
		deviceID string
		customer string
	}{
		{"aparelho inexistente", identifier.Generate(identifier.Device), c.ID},
		{"cliente inexistente", d.ID, identifier.Generate(identifier.Customer)},
		{"tipo trocado", c.ID, c.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.Sales.Add(f.ctx, sale.Sale{
				DeviceID:      tt.deviceID,
				CustomerID:    tt.customer,
				SalePrice:     100,
				PaymentMethod: sale.PaymentCash,
			})
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("Add() error = %v, esperado ErrInvalidReference", err)
			}
		})
	}
	if len(f.services.Sales.List()) != 0 {
		t.Error("nenhuma venda deveria ter sido gravada")
	}
}

func TestSaleService_AddAcceptsLegacyIDs(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	legacy := "k3j9x8f2a1"
	// cliente importado de uma versão antiga, com ID sem prefixo
	f.customers.SaveAll(f.ctx, []customer.Customer{{ID: legacy, Name: "Antigo"}})
	f.services.Customers.Reload(f.ctx)

	if _, err := f.services.Sales.Add(f.ctx, sale.Sale{DeviceID: d.ID, CustomerID: legacy, SalePrice: 10, PaymentMethod: sale.PaymentDebit}); err != nil {
		t.Errorf("Add() com ID legado error = %v", err)
	}
}

func TestSaleService_AddRejectsSoldDevice(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")
	if err := f.services.Devices.MarkSold(f.ctx, d.ID); err != nil {
		t.Fatal(err)
	}
	_, err := f.services.Sales.Add(f.ctx, sale.Sale{DeviceID: d.ID, CustomerID: c.ID, SalePrice: 10, PaymentMethod: sale.PaymentCash})
	if !errors.Is(err, ErrDeviceNotAvailable) {
		t.Errorf("Add() error = %v", err)
	}
}

func TestSaleService_TodayAndMonthWindows(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")

	f.addSale(t, d, c, 100, 10, "2024-06-15", "")
	f.addSale(t, d, c, 200, 20, "2024-06-15T23:30:00-03:00", "")
	f.addSale(t, d, c, 400, 40, "2024-06-14T23:59:00-03:00", "")
	f.addSale(t, d, c, 800, 80, "2024-06-01T00:00:00-03:00", "")
	f.addSale(t, d, c, 1600, 160, "2024-05-31T23:59:59-03:00", "")
	f.addSale(t, d, c, 3200, 320, "2024-06-15", sale.StatusCancelled)

	if got := len(f.services.Sales.Today()); got != 3 {
		t.Errorf("Today() = %d, esperado 3", got)
	}
	if got := f.services.Sales.TodayRevenue(); got != 300 {
		t.Errorf("TodayRevenue() = %v, esperado 300", got)
	}
	if got := f.services.Sales.TodayProfit(); got != 30 {
		t.Errorf("TodayProfit() = %v, esperado 30", got)
	}
	if got := len(f.services.Sales.ThisMonth()); got != 5 {
		t.Errorf("ThisMonth() = %d, esperado 5", got)
	}
	if got := f.services.Sales.MonthRevenue(); got != 1500 {
		t.Errorf("MonthRevenue() = %v, esperado 1500", got)
	}
	if got := f.services.Sales.TotalRevenue(); got != 3100 {
		t.Errorf("TotalRevenue() = %v, esperado 3100", got)
	}

	st := f.services.Sales.Stats()
	if st.Total != 6 || st.TodayCount != 2 || st.MonthCount != 4 {
		t.Errorf("Stats() = %+v", st)
	}
	if st.AverageTicket != 620 {
		t.Errorf("AverageTicket = %v, esperado 620", st.AverageTicket)
	}
	if st.ByStatus[sale.StatusCancelled] != 1 || st.ByStatus[sale.StatusPending] != 0 {
		t.Errorf("ByStatus = %v", st.ByStatus)
	}
}

func TestSaleService_DailySeriesEmpty(t *testing.T) {
	f := newFixture(t)
	points := f.services.Sales.DailySeries(DailySeriesDays)
	if len(points) != 30 {
		t.Fatalf("len = %d, esperado 30", len(points))
	}
	if points[0].Period != "2024-05-17" || points[29].Period != "2024-06-15" {
		t.Errorf("períodos = %s .. %s", points[0].Period, points[29].Period)
	}
	for i, p := range points {
		if p.Sales != 0 || p.Revenue != 0 || p.Profit != 0 {
			t.Errorf("ponto %d deveria estar zerado: %+v", i, p)
		}
		if i > 0 && p.Period <= points[i-1].Period {
			t.Errorf("série fora de ordem em %d", i)
		}
	}
}

func TestSaleService_DailySeriesBuckets(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")
	f.addSale(t, d, c, 100, 10, "2024-06-15T08:00:00-03:00", "")
	f.addSale(t, d, c, 50, 5, "2024-06-15", sale.StatusPending)
	f.addSale(t, d, c, 999, 99, "2024-06-15", sale.StatusCancelled)
	f.addSale(t, d, c, 70, 7, "2024-06-14", "")
	f.addSale(t, d, c, 1, 1, "2024-05-16", "")

	points := f.services.Sales.DailySeries(30)
	last := points[29]
	if last.Sales != 2 || last.Revenue != 150 || last.Profit != 15 {
		t.Errorf("hoje = %+v", last)
	}
	if points[28].Sales != 1 || points[28].Revenue != 70 {
		t.Errorf("ontem = %+v", points[28])
	}
	if points[0].Sales != 0 {
		t.Errorf("vendas fora da janela não entram: %+v", points[0])
	}
}

func TestSaleService_MonthlySeries(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")
	f.addSale(t, d, c, 100, 10, "2024-06-02", "")
	f.addSale(t, d, c, 300, 30, "2023-07-31", "")
	f.addSale(t, d, c, 900, 90, "2023-06-30", "")

	points := f.services.Sales.MonthlySeries(MonthlySeriesMonths)
	if len(points) != 12 {
		t.Fatalf("len = %d, esperado 12", len(points))
	}
	if points[0].Period != "2023-07" || points[11].Period != "2024-06" {
		t.Errorf("períodos = %s .. %s", points[0].Period, points[11].Period)
	}
	if points[0].Revenue != 300 || points[11].Revenue != 100 {
		t.Errorf("pontas = %+v / %+v", points[0], points[11])
	}
}

func TestSaleService_MonthlySeriesAtMonthEnd(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(time.Date(2024, time.March, 31, 22, 0, 0, 0, brt))
	points := f.services.Sales.MonthlySeries(3)
	want := []string{"2024-01", "2024-02", "2024-03"}
	for i, p := range points {
		if p.Period != want[i] {
			t.Errorf("ponto %d = %s, esperado %s", i, p.Period, want[i])
		}
	}
}

func TestSaleService_PaymentBreakdown(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")
	f.addSale(t, d, c, 100, 10, "2024-06-15", "")
	f.addSale(t, d, c, 100, 10, "2024-06-15", sale.StatusCancelled)

	rows := f.services.Sales.PaymentBreakdown()
	if len(rows) != len(sale.PaymentMethods) {
		t.Fatalf("len = %d, esperado %d", len(rows), len(sale.PaymentMethods))
	}
	if rows[0].Key != string(sale.PaymentPix) || rows[0].Count != 1 || rows[0].Total != 100 {
		t.Errorf("primeira linha = %+v", rows[0])
	}
}

func TestSaleService_DeleteKeepsDeviceStatus(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	c := f.addCustomer(t, "João")
	v, err := f.services.Sales.SellDevice(f.ctx, SellInput{DeviceID: d.ID, CustomerID: c.ID, SalePrice: 1200, PaymentMethod: sale.PaymentCredit})
	if err != nil {
		t.Fatal(err)
	}
	f.services.Sales.Delete(f.ctx, v.ID)
	if _, ok := f.services.Sales.GetByID(v.ID); ok {
		t.Error("venda deveria ter sido removida")
	}
	got, _ := f.services.Devices.GetByID(d.ID)
	if got.Status != device.StatusSold {
		t.Errorf("status = %s, esperado sold", got.Status)
	}
}
