package service

import (
	"sort"

	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/pkg/money"
)

// Dashboard é o resumo da tela inicial
type Dashboard struct {
	InventoryValue   float64       `json:"inventory_value"`
	AvailableDevices int           `json:"available_devices"`
	OldStock         int           `json:"old_stock"`
	OldStockDays     int           `json:"old_stock_days"`
	TodayRevenue     float64       `json:"today_revenue"`
	TodayProfit      float64       `json:"today_profit"`
	MonthRevenue     float64       `json:"month_revenue"`
	MonthProfit      float64       `json:"month_profit"`
	MonthExpenses    float64       `json:"month_expenses"`
	MonthNetProfit   float64       `json:"month_net_profit"`
	Customers        int           `json:"customers"`
	Suppliers        int           `json:"suppliers"`
	SalesByDay       []SeriesPoint `json:"sales_by_day"`
}

// CustomerRanking é a posição de um cliente pelo valor comprado
type CustomerRanking struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Purchases  int     `json:"purchases"`
	Revenue    float64 `json:"revenue"`
}

// SupplierTotal é o total comprado de um fornecedor
type SupplierTotal struct {
	SupplierID string  `json:"supplier_id"`
	Name       string  `json:"name"`
	Devices    int     `json:"devices"`
	Purchased  float64 `json:"purchased"`
}

// DeviceProfit é o resultado de um aparelho vendido descontando as despesas dele
type DeviceProfit struct {
	DeviceID  string  `json:"device_id"`
	Model     string  `json:"model"`
	Profit    float64 `json:"profit"`
	Expenses  float64 `json:"expenses"`
	NetProfit float64 `json:"net_profit"`
}

// ReportService cruza as coleções para os relatórios
type ReportService struct {
	devices   *DeviceService
	sales     *SaleService
	customers *CustomerService
	suppliers *SupplierService
	expenses  *ExpenseService
}

// NewReportService cria uma nova instância de ReportService
func NewReportService(devices *DeviceService, sales *SaleService, customers *CustomerService, suppliers *SupplierService, expenses *ExpenseService) *ReportService {
	return &ReportService{devices: devices, sales: sales, customers: customers, suppliers: suppliers, expenses: expenses}
}

// Dashboard monta o resumo da tela inicial
func (r *ReportService) Dashboard() Dashboard {
	days := r.devices.OldStockThreshold()
	monthProfit := r.sales.MonthProfit()
	monthExpenses := r.expenses.MonthTotal()
	return Dashboard{
		InventoryValue:   r.devices.InventoryValue(),
		AvailableDevices: r.devices.AvailableCount(),
		OldStock:         len(r.devices.OldDevices(days)),
		OldStockDays:     days,
		TodayRevenue:     r.sales.TodayRevenue(),
		TodayProfit:      r.sales.TodayProfit(),
		MonthRevenue:     r.sales.MonthRevenue(),
		MonthProfit:      monthProfit,
		MonthExpenses:    monthExpenses,
		MonthNetProfit:   money.Sub(monthProfit, monthExpenses),
		Customers:        r.customers.Count(),
		Suppliers:        r.suppliers.Count(),
		SalesByDay:       r.sales.DailySeries(DailySeriesDays),
	}
}

// TopCustomers ordena os clientes pelo valor das compras não canceladas
func (r *ReportService) TopCustomers(n int) []CustomerRanking {
	index := make(map[string]int)
	rows := []CustomerRanking{}
	var totals []money.Accumulator
	for _, v := range r.sales.List() {
		if !v.CountsAsRevenue() {
			continue
		}
		i, ok := index[v.CustomerID]
		if !ok {
			i = len(rows)
			index[v.CustomerID] = i
			row := CustomerRanking{CustomerID: v.CustomerID}
			if c, found := r.customers.GetByID(v.CustomerID); found {
				row.Name = c.Name
			}
			rows = append(rows, row)
			totals = append(totals, money.Accumulator{})
		}
		rows[i].Purchases++
		totals[i].Add(v.SalePrice)
	}
	for i := range rows {
		rows[i].Revenue = totals[i].Value()
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// SupplierTotals soma o preço de compra dos aparelhos de cada fornecedor
func (r *ReportService) SupplierTotals() []SupplierTotal {
	index := make(map[string]int)
	rows := []SupplierTotal{}
	var totals []money.Accumulator
	for _, d := range r.devices.List() {
		if d.SupplierID == "" {
			continue
		}
		i, ok := index[d.SupplierID]
		if !ok {
			i = len(rows)
			index[d.SupplierID] = i
			row := SupplierTotal{SupplierID: d.SupplierID}
			if s, found := r.suppliers.GetByID(d.SupplierID); found {
				row.Name = s.Name
			}
			rows = append(rows, row)
			totals = append(totals, money.Accumulator{})
		}
		rows[i].Devices++
		totals[i].Add(d.PurchasePrice)
	}
	for i := range rows {
		rows[i].Purchased = totals[i].Value()
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Purchased > rows[j].Purchased })
	return rows
}

// DeviceProfits calcula o lucro líquido de cada aparelho vendido: lucro das
// vendas não canceladas menos as despesas do aparelho.
func (r *ReportService) DeviceProfits() []DeviceProfit {
	rows := []DeviceProfit{}
	for _, d := range r.devices.ByStatus(device.StatusSold) {
		var gross money.Accumulator
		for _, v := range r.sales.ByDevice(d.ID) {
			if v.CountsAsRevenue() {
				gross.Add(v.Profit)
			}
		}
		spentOn := r.expenses.TotalByDevice(d.ID)
		rows = append(rows, DeviceProfit{
			DeviceID:  d.ID,
			Model:     d.Model,
			Profit:    gross.Value(),
			Expenses:  spentOn,
			NetProfit: money.Sub(gross.Value(), spentOn),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].NetProfit > rows[j].NetProfit })
	return rows
}
