package expense

import (
	"errors"
	"strings"
)

var (
	ErrInvalidAmount    = errors.New("valor da despesa deve ser positivo")
	ErrEmptyDescription = errors.New("descrição da despesa não pode ser vazia")
	ErrEmptyDate        = errors.New("data da despesa não informada")
)

// Expense representa um gasto, normalmente ligado a um aparelho (peças, reparo, frete)
type Expense struct {
	ID          string  `json:"id"`           // ID da Despesa
	DeviceID    string  `json:"device_id"`    // ID do Aparelho
	Amount      float64 `json:"amount"`       // Valor
	Description string  `json:"description"`  // Descrição
	Date        string  `json:"date"`         // Data da Despesa
	Category    string  `json:"category"`     // Categoria (texto livre)
	CreatedDate string  `json:"created_date"` // Data de Criação
}

// Validate verifica os campos obrigatórios da despesa
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	return nil
}

// Patch é uma atualização parcial: campos nil ficam como estão
type Patch struct {
	DeviceID    *string  `json:"device_id,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// Apply devolve uma cópia da despesa com os campos do patch sobrescritos
func (p Patch) Apply(e Expense) Expense {
	if p.DeviceID != nil {
		e.DeviceID = *p.DeviceID
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	return e
}
