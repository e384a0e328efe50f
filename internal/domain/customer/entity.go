package customer

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrInvalidEmail = errors.New("email inválido")
)

// Customer representa um cliente da loja
type Customer struct {
	ID          string `json:"id"`           // ID do Cliente
	Name        string `json:"name"`         // Nome
	Email       string `json:"email"`        // Email
	Phone       string `json:"phone"`        // Telefone
	Address     string `json:"address"`      // Endereço
	Notes       string `json:"notes"`        // Observações
	CreatedDate string `json:"created_date"` // Data de Criação
}

// Validate verifica os campos obrigatórios do cliente
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	return nil
}

// Matches indica se o termo aparece no nome, email ou telefone
func (c *Customer) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(c.Phone, term)
}

// Patch é uma atualização parcial: campos nil ficam como estão
type Patch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// Apply devolve uma cópia do cliente com os campos do patch sobrescritos
func (p Patch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	return c
}
