// Package pricing aplica el descuento de la venta sobre el subtotal del carrito.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ApplyDiscount calcula el descuento efectivo y el total final.
//   - percentage: efectivo = subtotal * valor / 100; valor fuera de [0,100] → ErrInvalidDiscount.
//   - fixed: efectivo = valor; valor < 0 o valor > subtotal → ErrInvalidDiscount
//     (el descuento no puede volver negativo el total).
//
// El total devuelto nunca es negativo.
func ApplyDiscount(subtotal, value decimal.Decimal, discountType string) (effective, total decimal.Decimal, err error) {
	switch discountType {
	case entity.DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidDiscount
		}
		effective = subtotal.Mul(value).Div(hundred)
	case entity.DiscountFixed:
		if value.IsNegative() || value.GreaterThan(subtotal) {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidDiscount
		}
		effective = value
	default:
		return decimal.Zero, decimal.Zero, domain.ErrInvalidDiscount
	}
	total = subtotal.Sub(effective)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return effective, total, nil
}
