package route

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-revenda/internal/adapter/repository"
	"github.com/hugohenrick/erp-revenda/internal/adapter/storage"
	"github.com/hugohenrick/erp-revenda/internal/config"
	"github.com/hugohenrick/erp-revenda/internal/domain/user"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/auth"
	"github.com/hugohenrick/erp-revenda/pkg/events"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	engine *gin.Engine
	token  string
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	store := storage.NewStore(storage.NewMemoryBackend(), storage.WithBus(events.NewLocalBus()), storage.WithLogger(log))
	db := repository.NewDatabase(store, log)
	services := service.New(service.Repositories{
		Devices:   repository.NewDeviceRepository(db),
		Sales:     repository.NewSaleRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Suppliers: repository.NewSupplierRepository(db),
		Expenses:  repository.NewExpenseRepository(db),
		Settings:  repository.NewSettingsRepository(db),
	}, service.WithLogger(log))
	services.Init(context.Background())
	t.Cleanup(services.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	operator, err := user.NewOperator("admin", "", string(hash))
	if err != nil {
		t.Fatal(err)
	}
	jwtService, err := auth.NewJWTService("test-key", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	engine := NewRouter(Config{BasePath: "/api/v1", Development: true}, Handlers{
		Auth:      controller.NewAuthController(operator, jwtService, log),
		Devices:   controller.NewDeviceController(services.Devices, log),
		Sales:     controller.NewSaleController(services.Sales, log),
		Customers: controller.NewCustomerController(services.Customers, services.Sales, log),
		Suppliers: controller.NewSupplierController(services.Suppliers, services.Devices, log),
		Expenses:  controller.NewExpenseController(services.Expenses, log),
		Settings:  controller.NewSettingsController(services.Settings, log),
		Backup:    controller.NewBackupController(db, services, log),
		Reports:   controller.NewReportController(services.Reports),
		Health:    controller.NewHealthController("test", config.DriverMemory),
	}, auth.JWTAuthMiddleware(jwtService), log)

	s := &testServer{engine: engine}
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "admin", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login code %v: %s", w.Code, w.Body.String())
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &login)
	s.token = login.AccessToken
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

type created struct {
	ID string `json:"id"`
}

func (s *testServer) create(t *testing.T, path string, body any) string {
	t.Helper()
	w := s.do(t, http.MethodPost, path, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST %s code %v: %s", path, w.Code, w.Body.String())
	}
	var c created
	decode(t, w, &c)
	return c.ID
}

func TestHealthIsPublic(t *testing.T) {
	s := setupServer(t)
	s.token = ""
	w := s.do(t, http.MethodGet, "/api/v1/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health code %v", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupServer(t)
	s.token = ""
	for _, path := range []string{"/api/v1/devices", "/api/v1/dashboard", "/api/v1/backup/export", "/api/v1/auth/me"} {
		if w := s.do(t, http.MethodGet, path, nil); w.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s code %v", path, w.Code)
		}
	}
	s.token = "garbage"
	if w := s.do(t, http.MethodGet, "/api/v1/devices", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token code %v", w.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := setupServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "admin", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login code %v", w.Code)
	}
}

func TestMe(t *testing.T) {
	s := setupServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me code %v", w.Code)
	}
	var me struct {
		Username string `json:"username"`
	}
	decode(t, w, &me)
	if me.Username != "admin" {
		t.Fatalf("username = %q", me.Username)
	}
}

func TestDeviceFlow(t *testing.T) {
	s := setupServer(t)
	id := s.create(t, "/api/v1/devices", map[string]any{
		"model": "iPhone 13", "purchase_price": 2000, "sale_price": 2500,
	})
	if !strings.HasPrefix(id, "DEV-") {
		t.Fatalf("id = %q", id)
	}

	if w := s.do(t, http.MethodGet, "/api/v1/devices/"+id, nil); w.Code != http.StatusOK {
		t.Fatalf("get code %v", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/devices/DEV-missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing code %v", w.Code)
	}
	if w := s.do(t, http.MethodPatch, "/api/v1/devices/DEV-missing", map[string]any{"color": "red"}); w.Code != http.StatusNotFound {
		t.Fatalf("patch missing code %v", w.Code)
	}

	w := s.do(t, http.MethodPatch, "/api/v1/devices/"+id, map[string]any{"color": "Azul"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch code %v: %s", w.Code, w.Body.String())
	}
	var d struct {
		Color  string `json:"color"`
		Status string `json:"status"`
	}
	decode(t, w, &d)
	if d.Color != "Azul" || d.Status != "available" {
		t.Fatalf("device = %+v", d)
	}

	if w := s.do(t, http.MethodPost, "/api/v1/devices", map[string]any{"model": ""}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid create code %v", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/v1/devices", map[string]any{"model": "X", "supplier_id": "FOR-1-abcdefgh"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad supplier code %v", w.Code)
	}

	if w := s.do(t, http.MethodGet, "/api/v1/devices/stats", nil); w.Code != http.StatusOK {
		t.Fatalf("stats code %v", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/devices/old?days=abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("old bad days code %v", w.Code)
	}

	if w := s.do(t, http.MethodDelete, "/api/v1/devices/"+id, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete code %v", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/devices/"+id, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete code %v", w.Code)
	}
}

func TestSellFlowAndDeleteGuards(t *testing.T) {
	s := setupServer(t)
	deviceID := s.create(t, "/api/v1/devices", map[string]any{
		"model": "iPhone 12", "purchase_price": 1500, "sale_price": 2000,
	})
	customerID := s.create(t, "/api/v1/customers", map[string]any{"name": "Ana"})

	w := s.do(t, http.MethodPost, "/api/v1/sales/sell", map[string]any{
		"device_id": deviceID, "customer_id": customerID, "sale_price": 1900, "payment_method": "pix",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("sell code %v: %s", w.Code, w.Body.String())
	}
	var v struct {
		ID     string  `json:"id"`
		Profit float64 `json:"profit"`
		Status string  `json:"status"`
	}
	decode(t, w, &v)
	if v.Profit != 400 || !strings.HasPrefix(v.ID, "SAL-") {
		t.Fatalf("sale = %+v", v)
	}

	w = s.do(t, http.MethodPost, "/api/v1/sales/sell", map[string]any{
		"device_id": deviceID, "customer_id": customerID, "sale_price": 1900, "payment_method": "pix",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("sell twice code %v", w.Code)
	}

	if w := s.do(t, http.MethodDelete, "/api/v1/devices/"+deviceID, nil); w.Code != http.StatusConflict {
		t.Fatalf("delete sold device code %v", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/v1/customers/"+customerID, nil); w.Code != http.StatusConflict {
		t.Fatalf("delete customer with sales code %v", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/v1/customers/"+customerID+"/sales", nil)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 {
		t.Fatalf("customer sales = %d", list.Total)
	}

	w = s.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard code %v", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/v1/sales/chart/daily?days=7", nil)
	var points []map[string]any
	decode(t, w, &points)
	if len(points) != 7 {
		t.Fatalf("daily points = %d", len(points))
	}

	if w := s.do(t, http.MethodDelete, "/api/v1/sales/"+v.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete sale code %v", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/v1/customers/"+customerID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete customer code %v", w.Code)
	}
}

func TestSettings(t *testing.T) {
	s := setupServer(t)
	w := s.do(t, http.MethodPut, "/api/v1/settings", map[string]any{"oldDevicesAlert": 45})
	if w.Code != http.StatusOK {
		t.Fatalf("put code %v", w.Code)
	}
	var got struct {
		OldDevicesAlert int    `json:"oldDevicesAlert"`
		Currency        string `json:"currency"`
	}
	decode(t, w, &got)
	if got.OldDevicesAlert != 45 || got.Currency != "BRL" {
		t.Fatalf("settings = %+v", got)
	}

	if w := s.do(t, http.MethodPut, "/api/v1/settings", map[string]any{"oldDevicesAlert": -1}); w.Code != http.StatusBadRequest {
		t.Fatalf("negative code %v", w.Code)
	}

	w = s.do(t, http.MethodDelete, "/api/v1/settings", nil)
	decode(t, w, &got)
	if got.OldDevicesAlert != 30 {
		t.Fatalf("reset = %+v", got)
	}
}

func TestBackupExportImport(t *testing.T) {
	s := setupServer(t)
	s.create(t, "/api/v1/devices", map[string]any{"model": "Galaxy S21", "purchase_price": 900})

	w := s.do(t, http.MethodGet, "/api/v1/backup/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export code %v", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "backup-") {
		t.Fatalf("disposition = %q", w.Header().Get("Content-Disposition"))
	}
	var exported map[string]json.RawMessage
	decode(t, w, &exported)
	for _, key := range []string{"devices", "sales", "customers", "suppliers", "expenses", "settings", "exportDate"} {
		if _, ok := exported[key]; !ok {
			t.Fatalf("export missing %q", key)
		}
	}

	// backup sem a coleção de vendas não altera nada
	w = s.do(t, http.MethodPost, "/api/v1/backup/import", map[string]any{
		"devices": []any{}, "customers": []any{}, "suppliers": []any{}, "expenses": []any{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid import code %v", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/v1/devices", nil)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 {
		t.Fatalf("devices after invalid import = %d", list.Total)
	}

	doc := map[string]any{
		"devices":   []any{},
		"sales":     []any{},
		"customers": []any{map[string]any{"id": "c1", "name": "Legado", "created_date": "2023-01-01T00:00:00.000Z"}},
		"suppliers": []any{},
		"expenses":  []any{},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "backup.json")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import code %v: %s", w.Code, w.Body.String())
	}
	var counts struct {
		Devices   int `json:"devices"`
		Customers int `json:"customers"`
	}
	decode(t, w, &counts)
	if counts.Devices != 0 || counts.Customers != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/customers/c1", nil); w.Code != http.StatusOK {
		t.Fatalf("legacy customer code %v", w.Code)
	}
}
