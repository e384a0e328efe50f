package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisBackend guarda as chaves em um hash do Redis
type RedisBackend struct {
	client *redis.Client
	hash   string
}

// NewRedisBackend cria um backend sobre o hash "<prefix>:kv"
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, hash: prefix + ":kv"}
}

var _ Backend = (*RedisBackend)(nil)

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.hash, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("erro ao buscar chave %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("erro ao remover chave %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("erro ao limpar armazenamento: %w", err)
	}
	return nil
}

func (r *RedisBackend) Entries(ctx context.Context) (map[string]string, error) {
	out, err := r.client.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar chaves: %w", err)
	}
	return out, nil
}

// ReplaceAll regrava o hash inteiro dentro de MULTI/EXEC
func (r *RedisBackend) ReplaceAll(ctx context.Context, entries map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.hash)
		if len(entries) == 0 {
			return nil
		}
		values := make(map[string]interface{}, len(entries))
		for k, v := range entries {
			values[k] = v
		}
		pipe.HSet(ctx, r.hash, values)
		return nil
	})
	if err != nil {
		return fmt.Errorf("erro ao substituir armazenamento: %w", err)
	}
	return nil
}
