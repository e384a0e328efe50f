package main

import (
	"log"

	"github.com/hugohenrick/erp-revenda/internal/config"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg := config.LoadEnv()
	appLogger := logger.NewLogger(logger.Config{
		Development: cfg.Logger.Development,
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
	})
	defer appLogger.Sync()

	// Criar aplicação
	app, err := NewApp(cfg, appLogger)
	if err != nil {
		appLogger.Error("Erro ao iniciar aplicação", "error", err)
		log.Fatal(err)
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Start(); err != nil {
		appLogger.Error("Erro no servidor HTTP", "error", err)
	}
}
