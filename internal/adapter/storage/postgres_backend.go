package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend guarda as chaves na tabela kv_store (ver migrations/)
type PostgresBackend struct {
	db *pgxpool.Pool
}

// NewPostgresBackend cria uma nova instância de PostgresBackend
func NewPostgresBackend(db *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{db: db}
}

var _ Backend = (*PostgresBackend)(nil)

func (r *PostgresBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("erro ao buscar chave %s: %w", key, err)
	}
	return value, true, nil
}

func (r *PostgresBackend) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}
	return nil
}

func (r *PostgresBackend) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("erro ao remover chave %s: %w", key, err)
	}
	return nil
}

func (r *PostgresBackend) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM kv_store`); err != nil {
		return fmt.Errorf("erro ao limpar armazenamento: %w", err)
	}
	return nil
}

func (r *PostgresBackend) Entries(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM kv_store`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar chaves: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("erro ao ler chave: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar chaves: %w", err)
	}
	return out, nil
}

// ReplaceAll apaga e regrava todas as chaves em uma única transação
func (r *PostgresBackend) ReplaceAll(ctx context.Context, entries map[string]string) error {
	return r.transaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM kv_store`); err != nil {
			return fmt.Errorf("erro ao limpar armazenamento: %w", err)
		}

		batch := &pgx.Batch{}
		for k, v := range entries {
			batch.Queue(`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())`, k, v)
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// transaction executa uma função dentro de uma transação
func (r *PostgresBackend) transaction(ctx context.Context, txFunc func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := txFunc(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Printf("erro ao fazer rollback: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}
	return nil
}
