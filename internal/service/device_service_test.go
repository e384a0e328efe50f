package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
)

func TestDeviceService_AddFillsIDAndDefaults(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)

	id, ok := identifier.Parse(d.ID)
	if !ok {
		t.Fatalf("Parse(%q) falhou", d.ID)
	}
	if id.Type != identifier.Device {
		t.Errorf("tipo = %s, esperado %s", id.Type, identifier.Device)
	}
	if d.Status != device.StatusAvailable {
		t.Errorf("status = %s, esperado available", d.Status)
	}
	if d.CreatedDate != "2024-06-15T15:00:00.000Z" {
		t.Errorf("created_date = %s", d.CreatedDate)
	}
	if f.services.Devices.AvailableCount() != 1 {
		t.Errorf("AvailableCount() = %d, esperado 1", f.services.Devices.AvailableCount())
	}
}

func TestDeviceService_AddRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		in   device.Device
	}{
		{"sem modelo", device.Device{PurchasePrice: 10}},
		{"preço negativo", device.Device{Model: "iPhone", PurchasePrice: -1}},
		{"já vendido", device.Device{Model: "iPhone", Status: device.StatusSold}},
		{"status desconhecido", device.Device{Model: "iPhone", Status: "lost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.services.Devices.Add(f.ctx, tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Add() error = %v, esperado ErrInvalidInput", err)
			}
		})
	}
	if len(f.services.Devices.List()) != 0 {
		t.Error("nenhum aparelho deveria ter sido gravado")
	}
}

func TestDeviceService_SupplierReference(t *testing.T) {
	f := newFixture(t)
	s, err := f.services.Suppliers.Add(f.ctx, supplier.Supplier{Name: "Distribuidora"})
	if err != nil {
		t.Fatalf("Suppliers.Add() error = %v", err)
	}

	if _, err := f.services.Devices.Add(f.ctx, device.Device{Model: "iPhone", SupplierID: s.ID}); err != nil {
		t.Fatalf("Add() com fornecedor existente error = %v", err)
	}

	missing := identifier.Generate(identifier.Supplier)
	if _, err := f.services.Devices.Add(f.ctx, device.Device{Model: "iPhone", SupplierID: missing}); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Add() com fornecedor inexistente error = %v", err)
	}

	wrongType := identifier.Generate(identifier.Customer)
	if _, err := f.services.Devices.Add(f.ctx, device.Device{Model: "iPhone", SupplierID: wrongType}); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Add() com ID de cliente error = %v", err)
	}
}

func TestDeviceService_UpdateToSold(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)

	sold := device.StatusSold
	if err := f.services.Devices.Update(f.ctx, d.ID, device.Patch{Status: &sold}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := f.services.Devices.AvailableCount(); got != 0 {
		t.Errorf("AvailableCount() = %d, esperado 0", got)
	}
	got, ok := f.services.Devices.GetByID(d.ID)
	if !ok || got.Status != device.StatusSold {
		t.Errorf("GetByID() = %+v, %v", got, ok)
	}
	if got.ExpectedProfit() != 500 {
		t.Errorf("ExpectedProfit() = %v, esperado 500", got.ExpectedProfit())
	}
}

func TestDeviceService_StatusTransitions(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)

	if err := f.services.Devices.Reserve(f.ctx, d.ID); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if err := f.services.Devices.MarkSold(f.ctx, d.ID); !errors.Is(err, device.ErrInvalidStatusTransition) {
		t.Errorf("reservado -> vendido error = %v", err)
	}
	if err := f.services.Devices.Release(f.ctx, d.ID); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := f.services.Devices.MarkSold(f.ctx, d.ID); err != nil {
		t.Fatalf("MarkSold() error = %v", err)
	}
	if err := f.services.Devices.Release(f.ctx, d.ID); !errors.Is(err, device.ErrInvalidStatusTransition) {
		t.Errorf("vendido -> disponível error = %v", err)
	}
	got, _ := f.services.Devices.GetByID(d.ID)
	if got.Status != device.StatusSold {
		t.Errorf("status = %s, esperado sold", got.Status)
	}
}

func TestDeviceService_UpdateMissingIDStillWrites(t *testing.T) {
	f := newFixture(t)
	f.addDevice(t, 1000, 1500)
	before := f.devices.Saves()

	if err := f.services.Devices.Update(f.ctx, "DEV-inexistente", device.Patch{}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if f.devices.Saves() != before+1 {
		t.Errorf("saves = %d, esperado %d", f.devices.Saves(), before+1)
	}
	if len(f.services.Devices.List()) != 1 {
		t.Error("a coleção não deveria mudar")
	}
}

func TestDeviceService_OldDevicesBoundary(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)

	f.clock.Advance(29*24*time.Hour + 23*time.Hour)
	if got := f.services.Devices.OldDevices(30); len(got) != 0 {
		t.Errorf("29 dias: OldDevices(30) = %d, esperado 0", len(got))
	}

	f.clock.Advance(time.Hour)
	got := f.services.Devices.OldDevices(30)
	if len(got) != 1 || got[0].ID != d.ID {
		t.Errorf("30 dias: OldDevices(30) = %v, esperado o aparelho", got)
	}

	if err := f.services.Devices.MarkSold(f.ctx, d.ID); err != nil {
		t.Fatal(err)
	}
	if got := f.services.Devices.OldDevices(30); len(got) != 0 {
		t.Errorf("vendidos não entram no estoque parado: %d", len(got))
	}
}

func TestDeviceService_OldStockUsesSettings(t *testing.T) {
	f := newFixture(t)
	f.addDevice(t, 1000, 1500)
	f.clock.Advance(10 * 24 * time.Hour)

	if got := len(f.services.Devices.OldStock()); got != 0 {
		t.Errorf("prazo padrão de 30 dias: OldStock() = %d", got)
	}
	days := 7
	if _, err := f.services.Settings.Update(f.ctx, settingsPatchOldDevices(days)); err != nil {
		t.Fatal(err)
	}
	if got := len(f.services.Devices.OldStock()); got != 1 {
		t.Errorf("prazo de 7 dias: OldStock() = %d, esperado 1", got)
	}
	if got := f.services.Devices.Stats().OldStockDays; got != 7 {
		t.Errorf("Stats().OldStockDays = %d", got)
	}
}

func TestDeviceService_Aggregates(t *testing.T) {
	f := newFixture(t)
	f.addDevice(t, 1000, 1500)
	f.addDevice(t, 800.10, 1200.20)
	sold := f.addDevice(t, 500, 700)
	if err := f.services.Devices.MarkSold(f.ctx, sold.ID); err != nil {
		t.Fatal(err)
	}

	if got := f.services.Devices.InventoryValue(); got != 1800.10 {
		t.Errorf("InventoryValue() = %v", got)
	}
	if got := f.services.Devices.PotentialRevenue(); got != 2700.20 {
		t.Errorf("PotentialRevenue() = %v", got)
	}
	if got := f.services.Devices.PotentialProfit(); got != 900.10 {
		t.Errorf("PotentialProfit() = %v", got)
	}
	counts := f.services.Devices.CountByStatus()
	if counts[device.StatusAvailable] != 2 || counts[device.StatusSold] != 1 || counts[device.StatusReserved] != 0 {
		t.Errorf("CountByStatus() = %v", counts)
	}
	if _, ok := counts[device.StatusReserved]; !ok {
		t.Error("CountByStatus() deveria listar todos os status")
	}
	models := f.services.Devices.ByModel()
	if len(models) != 1 || models[0].Count != 2 || models[0].Total != 1800.10 {
		t.Errorf("ByModel() = %+v", models)
	}
}

func TestDeviceService_Search(t *testing.T) {
	f := newFixture(t)
	if _, err := f.services.Devices.Add(f.ctx, device.Device{Model: "Galaxy S23", Color: "Preto", IMEI1: "356789012345678"}); err != nil {
		t.Fatal(err)
	}
	f.addDevice(t, 1000, 1500)

	if got := f.services.Devices.Search("galaxy"); len(got) != 1 {
		t.Errorf("Search(galaxy) = %d", len(got))
	}
	if got := f.services.Devices.Search("3567890"); len(got) != 1 {
		t.Errorf("Search(imei) = %d", len(got))
	}
	if got := f.services.Devices.Search("  "); len(got) != 2 {
		t.Errorf("Search(vazio) = %d", len(got))
	}
}

func TestDeviceService_DeleteGuard(t *testing.T) {
	f := newFixture(t)
	d := f.addDevice(t, 1000, 1500)
	free := f.addDevice(t, 500, 700)
	c := f.addCustomer(t, "Maria")
	f.addSale(t, d, c, 1500, 500, "2024-06-15", "")

	err := f.services.Devices.DeleteMany(f.ctx, []string{free.ID, d.ID})
	if !errors.Is(err, ErrEntityReferenced) {
		t.Fatalf("DeleteMany() error = %v, esperado ErrEntityReferenced", err)
	}
	if !strings.Contains(err.Error(), "sales (1)") {
		t.Errorf("mensagem = %q", err.Error())
	}
	if !f.services.Devices.Exists(free.ID) {
		t.Error("nada deveria ser removido quando algum aparelho está referenciado")
	}

	if err := f.services.Devices.Delete(f.ctx, free.ID); err != nil {
		t.Fatalf("Delete() sem referências error = %v", err)
	}
	if f.services.Devices.Exists(free.ID) {
		t.Error("aparelho deveria ter sido removido")
	}
}
