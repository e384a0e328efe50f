package route

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-revenda/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
	"github.com/hugohenrick/erp-revenda/pkg/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config define o comportamento do router
type Config struct {
	BasePath       string
	AllowedOrigins []string
	Development    bool
}

// Handlers reúne os controllers expostos pela API
type Handlers struct {
	Auth      *controller.AuthController
	Devices   *controller.DeviceController
	Sales     *controller.SaleController
	Customers *controller.CustomerController
	Suppliers *controller.SupplierController
	Expenses  *controller.ExpenseController
	Settings  *controller.SettingsController
	Backup    *controller.BackupController
	Reports   *controller.ReportController
	Health    *controller.HealthController
}

// NewRouter monta o engine com os middlewares globais e todas as rotas.
// Apenas login e health check dispensam o token.
func NewRouter(cfg Config, h Handlers, authMiddleware gin.HandlerFunc, log logger.Logger) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api/v1"
	}
	api := router.Group(basePath)
	api.GET("/health", h.Health.Check)

	SetupAuthRoutes(api, h.Auth, authMiddleware)

	protected := api.Group("")
	protected.Use(authMiddleware)
	SetupDeviceRoutes(protected, h.Devices)
	SetupSaleRoutes(protected, h.Sales)
	SetupCustomerRoutes(protected, h.Customers)
	SetupSupplierRoutes(protected, h.Suppliers)
	SetupExpenseRoutes(protected, h.Expenses)
	SetupSettingsRoutes(protected, h.Settings)
	SetupBackupRoutes(protected, h.Backup)
	SetupReportRoutes(protected, h.Reports)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	return cfg
}
