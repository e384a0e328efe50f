package dto

import (
	"github.com/hugohenrick/erp-revenda/internal/domain/sale"
	"github.com/hugohenrick/erp-revenda/internal/service"
)

// SellDeviceRequest representa a venda de um aparelho do estoque, com lucro calculado
type SellDeviceRequest struct {
	DeviceID      string             `json:"device_id" binding:"required"`
	CustomerID    string             `json:"customer_id" binding:"required"`
	SalePrice     float64            `json:"sale_price" binding:"gte=0"`
	SaleDate      string             `json:"sale_date"`
	PaymentMethod sale.PaymentMethod `json:"payment_method" binding:"required"`
	Status        sale.Status        `json:"status"`
}

// ToSellInput converte a requisição para o serviço
func (r SellDeviceRequest) ToSellInput() service.SellInput {
	return service.SellInput{
		DeviceID:      r.DeviceID,
		CustomerID:    r.CustomerID,
		SalePrice:     r.SalePrice,
		SaleDate:      r.SaleDate,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
	}
}

// ImportResponse resume o backup importado
type ImportResponse struct {
	Devices   int `json:"devices"`
	Sales     int `json:"sales"`
	Customers int `json:"customers"`
	Suppliers int `json:"suppliers"`
	Expenses  int `json:"expenses"`
}
