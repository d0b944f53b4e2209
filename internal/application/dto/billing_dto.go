package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest entrada para agregar una línea al carrito.
// Quantity y Unit son lo digitado por el cajero (no unidades base).
type AddItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit" validate:"required"`
}

// AdjustItemRequest entrada para ajustar una línea en delta de unidades base.
type AdjustItemRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// SettleRequest entrada para liquidar un carrito en PendingPayment.
type SettleRequest struct {
	Discount      decimal.Decimal `json:"discount"`
	DiscountType  string          `json:"discount_type"` // percentage | fixed; vacío = percentage 0
	PaymentMode   string          `json:"payment_mode" validate:"required"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Notes         string          `json:"notes"`
}

// CartItemResponse línea del carrito en respuestas.
type CartItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	BaseUnit        string          `json:"base_unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"` // unidades base
	DisplayUnit     string          `json:"display_unit"`
	DisplayQuantity decimal.Decimal `json:"display_quantity"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// CartResponse estado del carrito.
type CartResponse struct {
	ID       string             `json:"id"`
	Status   string             `json:"status"`
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	BaseUnit        string          `json:"base_unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	DisplayUnit     string          `json:"display_unit"`
	DisplayQuantity decimal.Decimal `json:"display_quantity"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura liquidada.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Discount      decimal.Decimal       `json:"discount"`
	DiscountType  string                `json:"discount_type"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMode   string                `json:"payment_mode"`
	CashierID     string                `json:"cashier_id"`
	CashierName   string                `json:"cashier_name"`
	CustomerName  string                `json:"customer_name,omitempty"`
	CustomerPhone string                `json:"customer_phone,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
