package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/erp-revenda/internal/config"
	"github.com/hugohenrick/erp-revenda/internal/infrastructure/database"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	down := flag.Bool("down", false, "desfaz a última migração em vez de aplicar as pendentes")
	flag.Parse()

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

	if *down {
		if err := database.RollbackMigrations(cfg.Postgres, appLogger); err != nil {
			log.Fatalf("Erro ao desfazer migração: %v", err)
		}
		return
	}

	if err := database.RunMigrations(cfg.Postgres, appLogger); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}
	log.Println("Migrações executadas com sucesso!")
}
