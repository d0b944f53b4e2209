package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/domain/unit"
)

// Modos de pago aceptados en caja.
const (
	PaymentCash  = "Cash"
	PaymentUPI   = "UPI"
	PaymentCard  = "Card"
	PaymentOther = "Other"
)

// Tipos de descuento sobre el subtotal de la venta.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Invoice es la cabecera de una venta liquidada. Inmutable una vez creada:
// es el asiento durable del libro de ventas, nunca se edita ni se borra.
type Invoice struct {
	ID            string
	InvoiceNumber string // prefijo + consecutivo con padding (ej. INV0042)
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal // valor ingresado (porcentaje o monto fijo)
	DiscountType  string          // percentage | fixed
	Total         decimal.Decimal // subtotal - descuento efectivo, nunca negativo
	PaymentMode   string
	CashierID     string
	CashierName   string
	CustomerName  string
	CustomerPhone string
	Notes         string
	Items         []InvoiceItem
	CreatedAt     time.Time
}

// InvoiceItem es una línea de la factura con los datos del producto copiados
// al momento de liquidar. Ediciones posteriores del catálogo no la alteran.
type InvoiceItem struct {
	ID              string
	InvoiceID       string
	ProductID       string
	ProductName     string
	BaseUnit        unit.Unit
	UnitPrice       decimal.Decimal // precio por unidad base al momento de la venta
	Quantity        decimal.Decimal // cantidad en unidades base (canónica)
	DisplayUnit     unit.Unit       // unidad tal como la digitó el cajero
	DisplayQuantity decimal.Decimal // cantidad en la unidad digitada (fidelidad del recibo)
	Subtotal        decimal.Decimal
}

// ValidPaymentMode valida el modo de pago contra el conjunto cerrado.
func ValidPaymentMode(mode string) bool {
	switch mode {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentOther:
		return true
	}
	return false
}

// ValidDiscountType valida el tipo de descuento.
func ValidDiscountType(t string) bool {
	return t == DiscountPercentage || t == DiscountFixed
}
