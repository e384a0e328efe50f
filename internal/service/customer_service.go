package service

import (
	"context"

	"github.com/hugohenrick/erp-revenda/internal/domain/customer"
	"github.com/hugohenrick/erp-revenda/internal/integrity"
	"github.com/hugohenrick/erp-revenda/pkg/datetime"
	"github.com/hugohenrick/erp-revenda/pkg/identifier"
)

// CustomerService é o módulo de agregação dos clientes
type CustomerService struct {
	items *mirror[customer.Customer]
	opts  options

	references func() map[string]integrity.Source
}

// NewCustomerService cria uma nova instância de CustomerService
func NewCustomerService(repo customer.Repository, opts ...Option) *CustomerService {
	o := newOptions(opts)
	return &CustomerService{
		items: newMirror[customer.Customer]("customers", repo, func(c customer.Customer) string { return c.ID }, o.logger),
		opts:  o,
	}
}

// Init carrega a coleção do armazenamento
func (s *CustomerService) Init(ctx context.Context) { s.items.init(ctx) }

// Reload recarrega a coleção do armazenamento
func (s *CustomerService) Reload(ctx context.Context) { s.items.load(ctx) }

// Close para de acompanhar alterações externas
func (s *CustomerService) Close() { s.items.close() }

// List retorna todos os clientes, os mais recentes primeiro
func (s *CustomerService) List() []customer.Customer {
	items := s.items.all()
	sortNewestFirst(items, func(c customer.Customer) string { return c.CreatedDate }, s.opts.location)
	return items
}

// GetByID busca um cliente pelo ID
func (s *CustomerService) GetByID(id string) (customer.Customer, bool) {
	return s.items.get(id)
}

// Exists indica se o cliente existe
func (s *CustomerService) Exists(id string) bool {
	return s.items.has(id)
}

// Count é a quantidade de clientes
func (s *CustomerService) Count() int {
	return s.items.count()
}

// Add cadastra um cliente com ID e data de criação novos
func (s *CustomerService) Add(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	if err := c.Validate(); err != nil {
		return customer.Customer{}, invalid(err)
	}
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	now := s.opts.now()
	c.ID = identifier.GenerateAt(identifier.Customer, now)
	c.CreatedDate = datetime.FormatISO(now)

	s.items.add(ctx, c)
	s.opts.logger.Info("Cliente cadastrado", "id", c.ID)
	return c, nil
}

// Update aplica a atualização parcial. ID inexistente não muda nada, mas a
// coleção é gravada do mesmo jeito.
func (s *CustomerService) Update(ctx context.Context, id string, patch customer.Patch) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	return s.items.patch(ctx, id, func(current customer.Customer) (customer.Customer, error) {
		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return current, invalid(err)
		}
		return next, nil
	})
}

// Delete remove o cliente. Falha com ErrEntityReferenced se houver vendas dele.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

// DeleteMany remove vários clientes. Se algum estiver referenciado nenhum é removido.
func (s *CustomerService) DeleteMany(ctx context.Context, ids []string) error {
	s.opts.writes.Lock()
	defer s.opts.writes.Unlock()
	if s.references != nil {
		sources := s.references()
		for _, id := range ids {
			if err := integrity.Guard(id, identifier.Customer, sources); err != nil {
				return err
			}
		}
	}
	s.items.removeIDs(ctx, ids)
	return nil
}

// Search busca o termo no nome, email ou telefone
func (s *CustomerService) Search(term string) []customer.Customer {
	return filter(s.List(), func(c customer.Customer) bool { return c.Matches(term) })
}

// NewThisMonth retorna os clientes cadastrados no mês calendário atual
func (s *CustomerService) NewThisMonth() []customer.Customer {
	now := s.opts.now()
	return filter(s.List(), func(c customer.Customer) bool {
		return datetime.IsSameMonth(c.CreatedDate, now, s.opts.location)
	})
}
