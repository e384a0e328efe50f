package sale

import (
	"errors"
	"strings"
)

var (
	ErrEmptyDevice          = errors.New("aparelho da venda não informado")
	ErrEmptyCustomer        = errors.New("cliente da venda não informado")
	ErrInvalidPrice         = errors.New("preço de venda não pode ser negativo")
	ErrInvalidPaymentMethod = errors.New("forma de pagamento inválida")
	ErrInvalidStatus        = errors.New("status de venda inválido")
)

// PaymentMethod representa a forma de pagamento
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"     // Dinheiro
	PaymentCredit   PaymentMethod = "credit"   // Cartão de crédito
	PaymentDebit    PaymentMethod = "debit"    // Cartão de débito
	PaymentPix      PaymentMethod = "pix"      // Pix
	PaymentTransfer PaymentMethod = "transfer" // Transferência
)

// PaymentMethods lista as formas de pagamento na ordem de exibição
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCredit, PaymentDebit, PaymentPix, PaymentTransfer}

// Valid indica se a forma de pagamento é conhecida
func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// Status representa a situação da venda
type Status string

const (
	StatusCompleted Status = "completed" // Concluída
	StatusPending   Status = "pending"   // Pendente
	StatusCancelled Status = "cancelled" // Cancelada
)

// Statuses lista os status de venda
var Statuses = []Status{StatusCompleted, StatusPending, StatusCancelled}

// Valid indica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Sale representa a venda de um aparelho
type Sale struct {
	ID            string        `json:"id"`             // ID da Venda
	DeviceID      string        `json:"device_id"`      // ID do Aparelho
	CustomerID    string        `json:"customer_id"`    // ID do Cliente
	SalePrice     float64       `json:"sale_price"`     // Valor da Venda
	Profit        float64       `json:"profit"`         // Lucro no momento da venda
	SaleDate      string        `json:"sale_date"`      // Data da Venda
	PaymentMethod PaymentMethod `json:"payment_method"` // Forma de Pagamento
	Status        Status        `json:"status"`         // Situação
	CreatedDate   string        `json:"created_date"`   // Data de Criação
}

// Validate verifica os campos obrigatórios da venda
func (s *Sale) Validate() error {
	if strings.TrimSpace(s.DeviceID) == "" {
		return ErrEmptyDevice
	}
	if strings.TrimSpace(s.CustomerID) == "" {
		return ErrEmptyCustomer
	}
	if s.SalePrice < 0 {
		return ErrInvalidPrice
	}
	if !s.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if !s.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// CountsAsRevenue indica se a venda entra nos totais de faturamento
func (s *Sale) CountsAsRevenue() bool {
	return s.Status != StatusCancelled
}

// Patch é uma atualização parcial: campos nil ficam como estão
type Patch struct {
	DeviceID      *string        `json:"device_id,omitempty"`
	CustomerID    *string        `json:"customer_id,omitempty"`
	SalePrice     *float64       `json:"sale_price,omitempty"`
	Profit        *float64       `json:"profit,omitempty"`
	SaleDate      *string        `json:"sale_date,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	Status        *Status        `json:"status,omitempty"`
}

// Apply devolve uma cópia da venda com os campos do patch sobrescritos
func (p Patch) Apply(s Sale) Sale {
	if p.DeviceID != nil {
		s.DeviceID = *p.DeviceID
	}
	if p.CustomerID != nil {
		s.CustomerID = *p.CustomerID
	}
	if p.SalePrice != nil {
		s.SalePrice = *p.SalePrice
	}
	if p.Profit != nil {
		s.Profit = *p.Profit
	}
	if p.SaleDate != nil {
		s.SaleDate = *p.SaleDate
	}
	if p.PaymentMethod != nil {
		s.PaymentMethod = *p.PaymentMethod
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	return s
}
