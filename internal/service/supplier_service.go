package service

import (
	"context"

	"github.com/hugohenrick/erp-revenda/internal/domain/supplier"
	"github.com/hugohenrick/erp-revenda/internal/integrity"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
)

// SupplierService é o módulo de agregação dos fornecedores
type SupplierService struct {
	items *mirror[supplier.Supplier]
	opts  options

	references func() map[string]integrity.Source
}

// NewSupplierService cria uma nova instância de SupplierService
func NewSupplierService(repo supplier.Repository, opts ...Option) *SupplierService {
	o := newOptions(opts)
	return &SupplierService{
		items: newMirror[supplier.Supplier]("suppliers", repo, func(v supplier.Supplier) string { return v.ID }, o.logger),
		opts:  o,
	}
}

// Init carrega a coleção do armazenamento
func (s *SupplierService) Init(ctx context.Context) { s.items.init(ctx) }

// Reload recarrega a coleção do armazenamento
func (s *SupplierService) Reload(ctx context.Context) { s.items.load(ctx) }

// Close para de acompanhar alterações externas
func (s *SupplierService) Close() { s.items.close() }

// List retorna todos os fornecedores, os mais recentes primeiro
func (s *SupplierService) List() []supplier.Supplier {
	items := s.items.all()
	sortNewestFirst(items, func(v supplier.Supplier) string { return v.CreatedDate }, s.opts.location)
	return items
}

// GetByID busca um fornecedor pelo ID
func (s *SupplierService) GetByID(id string) (supplier.Supplier, bool) {
	return s.items.get(id)
}

// Exists indica se o fornecedor existe
func (s *SupplierService) Exists(id string) bool {
	return s.items.has(id)
}

// Count é a quantidade de fornecedores
func (s *SupplierService) Count() int {
	return s.items.count()
}

// Add cadastra um fornecedor com ID e data de criação novos
func (s *SupplierService) Add(ctx context.Context, v supplier.Supplier) (supplier.Supplier, error) {
	if err := v.Validate(); err != nil {
		return supplier.Supplier{}, invalid(err)
	}
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	now := s.opts.now()
	v.ID = identifier.GenerateAt(identifier.Supplier, now)
	v.CreatedDate = datetime.FormatISO(now)

	s.items.add(ctx, v)
	s.opts.logger.Info("Fornecedor cadastrado", "id", v.ID)
	return v, nil
}

// Update aplica a atualização parcial. ID inexistente não muda nada, mas a
// coleção é gravada do mesmo jeito.
func (s *SupplierService) Update(ctx context.Context, id string, patch supplier.Patch) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	return s.items.patch(ctx, id, func(current supplier.Supplier) (supplier.Supplier, error) {
		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return current, invalid(err)
		}
		return next, nil
	})
}

// Delete remove o fornecedor. Falha com ErrEntityReferenced se algum aparelho vier dele.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

// DeleteMany remove vários fornecedores. Se algum estiver referenciado nenhum é removido.
func (s *SupplierService) DeleteMany(ctx context.Context, ids []string) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if s.references != nil {
		sources := s.references()
		for _, id := range ids {
			if err := integrity.Guard(id, identifier.Supplier, sources); err != nil {
				return err
			}
		}
	}
	s.items.removeIDs(ctx, ids)
	return nil
}

// Search busca o termo no nome, email ou telefone
func (s *SupplierService) Search(term string) []supplier.Supplier {
	return filter(s.List(), func(v supplier.Supplier) bool { return v.Matches(term) })
}

// NewThisMonth retorna os fornecedores cadastrados no mês calendário atual
func (s *SupplierService) NewThisMonth() []supplier.Supplier {
	now := s.opts.now()
	return filter(s.List(), func(v supplier.Supplier) bool {
		return datetime.IsSameMonth(v.CreatedDate, now, s.opts.location)
	})
}
