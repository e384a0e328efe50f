package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend mantém todas as chaves em um único documento JSON no disco.
// Cada escrita regrava o documento inteiro.
type FileBackend struct {
	mu      sync.RWMutex
	file    *os.File
	entries map[string]string
}

// OpenFileBackend abre (ou cria) o arquivo de dados
func OpenFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de dados: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo de dados: %w", err)
	}
	b := &FileBackend{file: f}
	if err := b.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return b, nil
}

var _ Backend = (*FileBackend)(nil)

// Close fecha o arquivo de dados
func (b *FileBackend) Close() error { return b.file.Close() }

func (b *FileBackend) load() error {
	info, err := b.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		b.entries = make(map[string]string)
		return b.flushLocked()
	}
	var entries map[string]string
	if err := json.NewDecoder(b.file).Decode(&entries); err != nil {
		return fmt.Errorf("erro ao ler arquivo de dados: %w", err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	b.entries = entries
	return nil
}

func (b *FileBackend) flushLocked() error {
	if _, err := b.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(b.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.entries); err != nil {
		return err
	}
	// trunca caso o conteúdo novo seja menor
	pos, err := b.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := b.file.Truncate(pos); err != nil {
		return err
	}
	return b.file.Sync()
}

func (b *FileBackend) withWrite(ctx context.Context, fn func(map[string]string) map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	prev := b.entries
	b.entries = fn(b.entries)
	if err := b.flushLocked(); err != nil {
		b.entries = prev
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.entries[key]
	return v, ok, nil
}

func (b *FileBackend) Set(ctx context.Context, key, value string) error {
	return b.withWrite(ctx, func(m map[string]string) map[string]string {
		next := clone(m)
		next[key] = value
		return next
	})
}

func (b *FileBackend) Delete(ctx context.Context, key string) error {
	return b.withWrite(ctx, func(m map[string]string) map[string]string {
		next := clone(m)
		delete(next, key)
		return next
	})
}

func (b *FileBackend) Clear(ctx context.Context) error {
	return b.withWrite(ctx, func(map[string]string) map[string]string {
		return make(map[string]string)
	})
}

func (b *FileBackend) Entries(_ context.Context) (map[string]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clone(b.entries), nil
}

func (b *FileBackend) ReplaceAll(ctx context.Context, entries map[string]string) error {
	return b.withWrite(ctx, func(map[string]string) map[string]string {
		return clone(entries)
	})
}
