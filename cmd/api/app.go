package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/route"
	"github.com/hugohenrick/erp-revenda/internal/adapter/repository"
	"github.com/hugohenrick/erp-revenda/internal/adapter/storage"
	"github.com/hugohenrick/erp-revenda/internal/config"
	"github.com/hugohenrick/erp-revenda/internal/domain/user"
	"github.com/hugohenrick/erp-revenda/internal/infrastructure/cache"
	"github.com/hugohenrick/erp-revenda/internal/infrastructure/database"
	"github.com/hugohenrick/erp-revenda/internal/service"
	"github.com/hugohenrick/erp-revenda/pkg/auth"
	"github.com/hugohenrick/erp-revenda/pkg/events"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

const (
	version         = "1.0.0"
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App representa a aplicação e suas dependências
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	router   *gin.Engine
	services *service.Services
	closers  []func()
}

// NewApp cria uma nova instância do aplicativo
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: log}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Configurar armazenamento
	backend, bus, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	store := storage.NewStore(backend,
		storage.WithBus(bus),
		storage.WithLogger(log),
		storage.WithMaxValueBytes(cfg.Storage.MaxValueBytes),
	)
	db := repository.NewDatabase(store, log)

	// Criar serviços
	a.services = service.New(service.Repositories{
		Devices:   repository.NewDeviceRepository(db),
		Sales:     repository.NewSaleRepository(db),
		Customers: repository.NewCustomerRepository(db),
		Suppliers: repository.NewSupplierRepository(db),
		Expenses:  repository.NewExpenseRepository(db),
		Settings:  repository.NewSettingsRepository(db),
	}, service.WithLocation(cfg.Locale.Location()), service.WithLogger(log))
	a.services.Init(ctx)
	a.closers = append(a.closers, a.services.Close)

	// Autenticação
	operator, err := user.NewOperator(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.PasswordHash)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("erro ao configurar credencial: %w", err)
	}
	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Criar controllers e router
	s := a.services
	a.router = route.NewRouter(route.Config{
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Development:    cfg.IsDevelopment(),
	}, route.Handlers{
		Auth:      controller.NewAuthController(operator, jwtService, log),
		Devices:   controller.NewDeviceController(s.Devices, log),
		Sales:     controller.NewSaleController(s.Sales, log),
		Customers: controller.NewCustomerController(s.Customers, s.Sales, log),
		Suppliers: controller.NewSupplierController(s.Suppliers, s.Devices, log),
		Expenses:  controller.NewExpenseController(s.Expenses, log),
		Settings:  controller.NewSettingsController(s.Settings, log),
		Backup:    controller.NewBackupController(db, s, log),
		Reports:   controller.NewReportController(s.Reports),
		Health:    controller.NewHealthController(version, cfg.Storage.Driver),
	}, auth.JWTAuthMiddleware(jwtService), log)

	return a, nil
}

// openStorage abre o backend chave/valor e o barramento de alterações do driver configurado
func (a *App) openStorage(ctx context.Context) (storage.Backend, events.Bus, error) {
	cfg := a.cfg
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return storage.NewMemoryBackend(), events.NewLocalBus(), nil

	case config.DriverFile:
		backend, err := storage.OpenFileBackend(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func() { backend.Close() })
		return backend, events.NewLocalBus(), nil

	case config.DriverPostgres:
		if err := database.RunMigrations(cfg.Postgres, a.logger); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, pool.Close)
		return storage.NewPostgresBackend(pool), events.NewLocalBus(), nil

	case config.DriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis, a.logger)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func() { client.Close() })
		bus := events.NewRedisBus(client, cfg.Storage.Channel, a.logger)
		if err := bus.Start(context.Background()); err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func() { bus.Close() })
		return storage.NewRedisBackend(client, cfg.Redis.Prefix), bus, nil
	}
	return nil, nil, fmt.Errorf("driver de armazenamento desconhecido: %q", cfg.Storage.Driver)
}

// Start sobe o servidor HTTP e espera por SIGINT ou SIGTERM para encerrar
func (a *App) Start() error {
	server := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Servidor HTTP iniciado", "addr", server.Addr, "storage", a.cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info("Encerrando servidor", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação, na ordem inversa da abertura
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
