package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hugohenrick/erp-revenda/internal/adapter/storage"
	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/domain/device"
	"github.com/hugohenrick/erp-revenda/internal/domain/expense"
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
	"github.com/hugohenrick/erp-revenda/pkg/events"
)

func setup(t *testing.T) *Database {
	t.Helper()
	return NewDatabase(storage.NewStore(storage.NewMemoryBackend()), nil)
}

func seed(ctx context.Context, db *Database) {
	warranty := true
	db.SaveDevices(ctx, []device.Device{{
		ID: "DEV-1700000000000-abcd1234", Model: "iPhone 13", Storage: "128GB", Color: "azul",
		Condition: "A", PurchasePrice: 2500, SalePrice: 3200, SupplierID: "lq2x9r0aabcdefgh",
		Status: device.StatusAvailable, SerialNumber: "F2LX", HasAppleWarranty: &warranty,
		CreatedDate: "2024-01-10T12:00:00.000Z",
	}})
	db.SaveSales(ctx, []sale.Sale{{
		ID: "SAL-1700000000001-abcd1234", DeviceID: "DEV-1700000000000-abcd1234",
		CustomerID: "CLI-1700000000002-abcd1234", SalePrice: 3200, Profit: 700,
		SaleDate: "2024-01-11", PaymentMethod: sale.PaymentPix, Status: sale.StatusCompleted,
		CreatedDate: "2024-01-11T12:00:00.000Z",
	}})
	db.SaveCustomers(ctx, []customer.Customer{{ID: "CLI-1700000000002-abcd1234", Name: "Ana"}})
	db.SaveSuppliers(ctx, []supplier.Supplier{{ID: "lq2x9r0aabcdefgh", Name: "Distribuidora"}})
	db.SaveExpenses(ctx, []expense.Expense{{
		ID: "EXP-1700000000003-abcd1234", DeviceID: "DEV-1700000000000-abcd1234",
		Amount: 150, Description: "troca de tela", Date: "2024-01-10", Category: "reparo",
	}})
	s := settings.Default()
	s.CompanyName = "Loja"
	s.OldDevicesAlert = 45
	db.SaveSettings(ctx, s)
}

func TestDatabase_DefaultsOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	if got := db.GetDevices(ctx); got == nil || len(got) != 0 {
		t.Fatalf("devices: %#v", got)
	}
	if got := db.GetSettings(ctx); got != settings.Default() {
		t.Fatalf("settings: %+v", got)
	}
}

func TestDatabase_SettingsPartialValueKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	db.Store().Save(ctx, KeySettings, map[string]interface{}{"companyName": "Loja"})

	got := db.GetSettings(ctx)
	if got.CompanyName != "Loja" || got.OldDevicesAlert != settings.DefaultOldDevicesAlert {
		t.Fatalf("settings: %+v", got)
	}
}

func TestDatabase_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setup(t)
	src.WithClock(func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) })
	seed(ctx, src)
	before := src.Export(ctx)
	if before.ExportDate != "2024-02-01T10:00:00.000Z" {
		t.Fatalf("export date: %s", before.ExportDate)
	}

	var buf bytes.Buffer
	if err := src.WriteBackup(ctx, &buf); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}

	dst := setup(t)
	if err := dst.Import(ctx, &buf); err != nil {
		t.Fatalf("Import: %v", err)
	}
	after := dst.Export(ctx)
	after.ExportDate = before.ExportDate
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip mismatch:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestDatabase_ImportMissingKeyKeepsState(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	seed(ctx, db)
	before := db.Export(ctx)

	doc := `{"devices":[],"sales":[],"customers":[],"suppliers":[]}`
	err := db.Import(ctx, strings.NewReader(doc))
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("err = %v", err)
	}

	after := db.Export(ctx)
	after.ExportDate = before.ExportDate
	if !reflect.DeepEqual(before, after) {
		t.Fatal("state changed after rejected import")
	}
}

func TestDatabase_ImportRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	seed(ctx, db)

	cases := []string{
		``,
		`{`,
		`[]`,
		`{"devices":null,"sales":[],"customers":[],"suppliers":[],"expenses":[]}`,
		`{"devices":{},"sales":[],"customers":[],"suppliers":[],"expenses":[]}`,
		`{"devices":[],"sales":[],"customers":[],"suppliers":[],"expenses":[],"settings":"x"}`,
	}
	for _, doc := range cases {
		if err := db.Import(ctx, strings.NewReader(doc)); err == nil {
			t.Fatalf("import %q should fail", doc)
		}
	}
	if got := db.GetDevices(ctx); len(got) != 1 {
		t.Fatalf("devices changed: %+v", got)
	}
}

func TestDatabase_ImportWithoutSettingsKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	seed(ctx, db)

	doc := `{"devices":[],"sales":[],"customers":[],"suppliers":[],"expenses":[]}`
	if err := db.Import(ctx, strings.NewReader(doc)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got := db.GetSettings(ctx); got.CompanyName != "Loja" {
		t.Fatalf("settings lost: %+v", got)
	}
	if got := db.GetDevices(ctx); len(got) != 0 {
		t.Fatalf("devices not replaced: %+v", got)
	}
}

func TestDatabase_EmptyExportReimport(t *testing.T) {
	ctx := context.Background()
	db := setup(t)

	var buf bytes.Buffer
	if err := db.WriteBackup(ctx, &buf); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range CollectionKeys {
		if string(raw[key]) != "[]" {
			t.Fatalf("%s exported as %s", key, raw[key])
		}
	}

	if err := db.Import(ctx, &buf); err != nil {
		t.Fatalf("Import: %v", err)
	}
	b := db.Export(ctx)
	if len(b.Devices)+len(b.Sales)+len(b.Customers)+len(b.Suppliers)+len(b.Expenses) != 0 {
		t.Fatalf("expected empty collections: %+v", b)
	}
	if b.Settings != settings.Default() {
		t.Fatalf("settings: %+v", b.Settings)
	}
}

func TestDatabase_ImportPreservesForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	db.Store().Save(ctx, "auth-token", "abc")

	doc := `{"devices":[],"sales":[],"customers":[],"suppliers":[],"expenses":[]}`
	if err := db.Import(ctx, strings.NewReader(doc)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got := storage.Get(ctx, db.Store(), "auth-token", ""); got != "abc" {
		t.Fatalf("unrelated key lost: %q", got)
	}
}

func TestDatabase_ImportDropsUnknownFields(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	doc := `{
		"devices": [{"id": "DEV-1700000000000-abcd1234", "model": "iPhone 12", "status": "available",
			"purchase_price": 1800, "sale_price": 2400, "created_date": "2024-01-10T12:00:00.000Z",
			"vitrine": "loja 2"}],
		"sales": [], "customers": [], "suppliers": [], "expenses": []
	}`
	if err := db.Import(ctx, strings.NewReader(doc)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	devices := db.GetDevices(ctx)
	if len(devices) != 1 || devices[0].Model != "iPhone 12" || devices[0].PurchasePrice != 1800 {
		t.Fatalf("devices = %#v", devices)
	}
	raw, ok := db.store.Raw(ctx, KeyDevices)
	if !ok {
		t.Fatal("devices não gravado")
	}
	if strings.Contains(raw, "vitrine") {
		t.Fatalf("campo desconhecido gravado: %s", raw)
	}
}

func TestBackupFileName(t *testing.T) {
	got := BackupFileName(time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC))
	if got != "backup-2024-03-05.json" {
		t.Fatalf("got %s", got)
	}
}

func TestDatabase_WatchIgnoresOwnOrigin(t *testing.T) {
	ctx := context.Background()
	bus := events.NewLocalBus()
	backend := storage.NewMemoryBackend()
	a := NewDatabase(storage.NewStore(backend, storage.WithBus(bus)), nil)
	b := NewDatabase(storage.NewStore(backend, storage.WithBus(bus)), nil)

	var own, other int
	stopA := a.Watch(KeyDevices, func() { own++ })
	defer stopA()
	stopB := b.Watch(KeyDevices, func() { other++ })
	defer stopB()

	a.SaveDevices(ctx, []device.Device{})
	a.SaveSales(ctx, []sale.Sale{})

	if own != 0 {
		t.Fatalf("own origin notified %d times", own)
	}
	if other != 1 {
		t.Fatalf("other origin notified %d times, want 1", other)
	}
}

func TestCollectionRepository(t *testing.T) {
	ctx := context.Background()
	db := setup(t)
	repo := NewCustomerRepository(db)

	repo.SaveAll(ctx, []customer.Customer{{ID: "a", Name: "Ana"}})
	got := repo.FindAll(ctx)
	if len(got) != 1 || got[0].Name != "Ana" {
		t.Fatalf("got %+v", got)
	}
	if got := db.GetCustomers(ctx); len(got) != 1 {
		t.Fatalf("facade: %+v", got)
	}
}
