package service

import (
	"context"
	"sync"

	"github.com/hugohenrick/erp-revenda/internal/domain/settings"
)

// SettingsService mantém as preferências da loja em memória
type SettingsService struct {
	mu      sync.RWMutex
	repo    settings.Repository
	current settings.Settings
	stop    func()
	opts    options
}

// NewSettingsService cria uma nova instância de SettingsService
func NewSettingsService(repo settings.Repository, opts ...Option) *SettingsService {
	return &SettingsService{repo: repo, current: settings.Default(), opts: newOptions(opts)}
}

// Init carrega as preferências e passa a acompanhar alterações externas
func (s *SettingsService) Init(ctx context.Context) {
	s.Reload(ctx)
	if w, ok := s.repo.(watcher); ok && s.stop == nil {
		s.stop = w.Watch(func() { s.Reload(context.Background()) })
	}
}

// Reload recarrega as preferências do armazenamento
func (s *SettingsService) Reload(ctx context.Context) {
	loaded := s.repo.Find(ctx)
	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
}

// Close para de acompanhar alterações externas
func (s *SettingsService) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// Get retorna as preferências atuais
func (s *SettingsService) Get() settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update aplica a atualização parcial e grava
func (s *SettingsService) Update(ctx context.Context, patch settings.Patch) (settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := patch.Apply(s.current)
	if err := next.Validate(); err != nil {
		return s.current, invalid(err)
	}
	s.current = next
	s.repo.Save(ctx, next)
	return next, nil
}

// Reset volta para as preferências de fábrica
func (s *SettingsService) Reset(ctx context.Context) settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings.Default()
	s.repo.Save(ctx, s.current)
	return s.current
}
