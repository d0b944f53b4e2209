package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/domain/unit"
)

// Product representa un producto del catálogo de la tienda.
// Price y Stock están denominados en BaseUnit; el catálogo no conoce
// unidades de presentación (eso es asunto del carrito).
type Product struct {
	ID        string
	Name      string
	BaseUnit  unit.Unit       // unidad en la que se guardan precio y stock
	Price     decimal.Decimal // precio por 1 unidad base, > 0
	Stock     decimal.Decimal // cantidad en unidades base, >= 0 (invariante)
	MinStock  decimal.Decimal // umbral de alerta de stock bajo (0 = sin umbral)
	Category  string
	Barcode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot devuelve una copia por valor del producto, desacoplada del
// registro vivo del catálogo. Las facturas guardan snapshots, nunca alias.
func (p Product) Snapshot() Product {
	return p
}

// IsLowStock indica si el stock está en o por debajo del umbral.
func (p Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}
