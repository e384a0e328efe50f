package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hugohenrick/erp-revenda/internal/config"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// NewRedisClient conecta ao Redis e verifica a conexão com um ping
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}
	log.Info("Conectado ao Redis", "addr", cfg.Addr, "ping", pong)

	return client, nil
}
