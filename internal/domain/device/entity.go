package device

import (
	"errors"
	"strings"
)

var (
	ErrEmptyModel              = errors.New("modelo não pode ser vazio")
	ErrInvalidPrice            = errors.New("preço não pode ser negativo")
	ErrInvalidStatus           = errors.New("status de aparelho inválido")
	ErrInvalidStatusTransition = errors.New("transição de status não permitida")
)

// Status representa a situação do aparelho no estoque
type Status string

const (
	StatusAvailable Status = "available" // Disponível para venda
	StatusSold      Status = "sold"      // Vendido
	StatusReserved  Status = "reserved"  // Reservado para um cliente
)

// Valid indica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved:
		return true
	}
	return false
}

// CanTransitionTo indica se o aparelho pode passar de s para next.
// Vendido é terminal; disponível e reservado alternam entre si.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusAvailable:
		return next == StatusSold || next == StatusReserved
	case StatusReserved:
		return next == StatusAvailable
	}
	return false
}

// Device representa um aparelho do estoque
type Device struct {
	ID               string  `json:"id"`                           // ID do Aparelho
	Model            string  `json:"model"`                        // Modelo
	Storage          string  `json:"storage"`                      // Armazenamento (ex.: 128GB)
	Color            string  `json:"color"`                        // Cor
	Condition        string  `json:"condition"`                    // Estado de conservação
	PurchasePrice    float64 `json:"purchase_price"`               // Preço de Compra
	SalePrice        float64 `json:"sale_price"`                   // Preço de Venda
	SupplierID       string  `json:"supplier_id"`                  // ID do Fornecedor
	Status           Status  `json:"status"`                       // Situação
	SerialNumber     string  `json:"serial_number"`                // Número de Série
	Notes            string  `json:"notes"`                        // Observações
	IMEI1            string  `json:"imei1,omitempty"`              // IMEI principal
	IMEI2            string  `json:"imei2,omitempty"`              // IMEI secundário
	BatteryHealth    string  `json:"battery_health,omitempty"`     // Saúde da bateria (%)
	HasAppleWarranty *bool   `json:"has_apple_warranty,omitempty"` // Garantia Apple ativa
	WarrantyDate     string  `json:"warranty_date,omitempty"`      // Fim da garantia
	PurchaseDate     string  `json:"purchase_date,omitempty"`      // Data de compra
	OriginalDate     string  `json:"original_date,omitempty"`      // Data de ativação original
	CreatedDate      string  `json:"created_date"`                 // Data de Criação
}

// Validate verifica os campos obrigatórios do aparelho
func (d *Device) Validate() error {
	if strings.TrimSpace(d.Model) == "" {
		return ErrEmptyModel
	}
	if d.PurchasePrice < 0 || d.SalePrice < 0 {
		return ErrInvalidPrice
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// IsAvailable verifica se o aparelho está disponível para venda
func (d *Device) IsAvailable() bool {
	return d.Status == StatusAvailable
}

// ExpectedProfit é o lucro previsto se o aparelho for vendido pelo preço de venda
func (d *Device) ExpectedProfit() float64 {
	return d.SalePrice - d.PurchasePrice
}

// Patch é uma atualização parcial: campos nil ficam como estão
type Patch struct {
	Model            *string  `json:"model,omitempty"`
	Storage          *string  `json:"storage,omitempty"`
	Color            *string  `json:"color,omitempty"`
	Condition        *string  `json:"condition,omitempty"`
	PurchasePrice    *float64 `json:"purchase_price,omitempty"`
	SalePrice        *float64 `json:"sale_price,omitempty"`
	SupplierID       *string  `json:"supplier_id,omitempty"`
	Status           *Status  `json:"status,omitempty"`
	SerialNumber     *string  `json:"serial_number,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	IMEI1            *string  `json:"imei1,omitempty"`
	IMEI2            *string  `json:"imei2,omitempty"`
	BatteryHealth    *string  `json:"battery_health,omitempty"`
	HasAppleWarranty *bool    `json:"has_apple_warranty,omitempty"`
	WarrantyDate     *string  `json:"warranty_date,omitempty"`
	PurchaseDate     *string  `json:"purchase_date,omitempty"`
	OriginalDate     *string  `json:"original_date,omitempty"`
}

// Apply devolve uma cópia do aparelho com os campos do patch sobrescritos
func (p Patch) Apply(d Device) Device {
	setString(&d.Model, p.Model)
	setString(&d.Storage, p.Storage)
	setString(&d.Color, p.Color)
	setString(&d.Condition, p.Condition)
	if p.PurchasePrice != nil {
		d.PurchasePrice = *p.PurchasePrice
	}
	if p.SalePrice != nil {
		d.SalePrice = *p.SalePrice
	}
	setString(&d.SupplierID, p.SupplierID)
	if p.Status != nil {
		d.Status = *p.Status
	}
	setString(&d.SerialNumber, p.SerialNumber)
	setString(&d.Notes, p.Notes)
	setString(&d.IMEI1, p.IMEI1)
	setString(&d.IMEI2, p.IMEI2)
	setString(&d.BatteryHealth, p.BatteryHealth)
	if p.HasAppleWarranty != nil {
		v := *p.HasAppleWarranty
		d.HasAppleWarranty = &v
	}
	setString(&d.WarrantyDate, p.WarrantyDate)
	setString(&d.PurchaseDate, p.PurchaseDate)
	setString(&d.OriginalDate, p.OriginalDate)
	return d
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
