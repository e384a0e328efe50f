package supplier

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmptyName    = errors.New("nome do fornecedor não pode ser vazio")
	ErrInvalidEmail = errors.New("email inválido")
)

// Supplier representa um fornecedor de aparelhos
type Supplier struct {
	ID          string `json:"id"`           // ID do Fornecedor
	Name        string `json:"name"`         // Nome/Razão Social
	Email       string `json:"email"`        // Email
	Phone       string `json:"phone"`        // Telefone
	Address     string `json:"address"`      // Endereço
	Notes       string `json:"notes"`        // Observações
	CreatedDate string `json:"created_date"` // Data de Criação
}

// Validate verifica os campos obrigatórios do fornecedor
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	return nil
}

// Matches indica se o termo aparece no nome, email ou telefone
func (s *Supplier) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Email), term) ||
		strings.Contains(s.Phone, term)
}

// Patch é uma atualização parcial: campos nil ficam como estão
type Patch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// Apply devolve uma cópia do fornecedor com os campos do patch sobrescritos
func (p Patch) Apply(s Supplier) Supplier {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}
