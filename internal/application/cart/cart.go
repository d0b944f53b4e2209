// Package cart implementa el carrito de una venta en curso: acumulador en
// memoria de un solo escritor, con estados Open → PendingPayment →
// Committed | Aborted. El carrito guarda snapshots de producto y nunca
// escribe stock: toda mutación de inventario pasa por la liquidación.
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

// Status es el estado del carrito dentro del protocolo de liquidación.
type Status string

const (
	StatusOpen           Status = "Open"           // editable
	StatusPendingPayment Status = "PendingPayment" // congelado, capturando pago
	StatusCommitted      Status = "Committed"      // factura persistida
	StatusAborted        Status = "Aborted"        // descartado
)

// Item es una línea del carrito. Quantity es canónica (unidades base del
// producto); DisplayUnit/DisplayQuantity conservan lo digitado por el cajero
// para fidelidad del recibo. Invariante:
// Quantity == Convert(DisplayQuantity, DisplayUnit, Product.BaseUnit).
type Item struct {
	Product         entity.Product // snapshot, no alias al catálogo vivo
	Quantity        decimal.Decimal
	DisplayUnit     unit.Unit
	DisplayQuantity decimal.Decimal
}

// Subtotal se recalcula en cada llamada: cantidad base × precio por unidad base.
func (it Item) Subtotal() decimal.Decimal {
	return it.Quantity.Mul(it.Product.Price)
}

// Cart es el acumulador de la venta en curso. Un solo escritor por carrito;
// no es seguro para uso concurrente (modelo cooperativo de una terminal).
type Cart struct {
	ID        string
	Status    Status
	Items     []Item
	CreatedAt time.Time
}

// New abre un carrito vacío en estado Open.
func New() *Cart {
	return &Cart{
		ID:        uuid.New().String(),
		Status:    StatusOpen,
		CreatedAt: time.Now(),
	}
}

// AddItem valida la cantidad digitada, la convierte a unidades base del
// producto y la acumula. Si el producto ya está en el carrito la cantidad se
// SUMA a la línea existente (no se reemplaza) y la unidad/cantidad de
// presentación se sobreescriben con lo último digitado. La cantidad acumulada
// del carrito para ese producto no puede exceder el stock actual.
func (c *Cart) AddItem(product entity.Product, enteredQty decimal.Decimal, enteredUnit unit.Unit) error {
	if c.Status != StatusOpen {
		return domain.ErrConflict
	}
	if !enteredQty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	baseQty, err := unit.Convert(enteredQty, enteredUnit, product.BaseUnit)
	if err != nil {
		return err
	}

	idx := c.indexOf(product.ID)
	accumulated := baseQty
	if idx >= 0 {
		accumulated = c.Items[idx].Quantity.Add(baseQty)
	}
	if accumulated.GreaterThan(product.Stock) {
		return domain.ErrInsufficientStock
	}

	if idx >= 0 {
		c.Items[idx].Quantity = accumulated
		c.Items[idx].Product = product
		c.Items[idx].DisplayUnit = enteredUnit
		c.Items[idx].DisplayQuantity = enteredQty
		return nil
	}
	c.Items = append(c.Items, Item{
		Product:         product,
		Quantity:        baseQty,
		DisplayUnit:     enteredUnit,
		DisplayQuantity: enteredQty,
	})
	return nil
}

// RemoveItem elimina la línea sin condiciones.
func (c *Cart) RemoveItem(index int) error {
	if c.Status != StatusOpen {
		return domain.ErrConflict
	}
	if index < 0 || index >= len(c.Items) {
		return domain.ErrInvalidInput
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// AdjustQuantity suma deltaBase (unidades base) a la línea. Si el resultado
// queda en cero o negativo la línea se elimina (remoción intencional, no
// error); si excede el stock falla con ErrInsufficientStock y el carrito
// queda intacto. El ajuste mantiene el invariante recalculando la cantidad
// de presentación en la unidad vigente de la línea.
func (c *Cart) AdjustQuantity(index int, deltaBase decimal.Decimal) error {
	if c.Status != StatusOpen {
		return domain.ErrConflict
	}
	if index < 0 || index >= len(c.Items) {
		return domain.ErrInvalidInput
	}
	item := &c.Items[index]
	newQty := item.Quantity.Add(deltaBase)
	if !newQty.GreaterThan(decimal.Zero) {
		return c.RemoveItem(index)
	}
	if newQty.GreaterThan(item.Product.Stock) {
		return domain.ErrInsufficientStock
	}
	display, err := unit.FromBase(newQty, item.Product.BaseUnit, item.DisplayUnit)
	if err != nil {
		return err
	}
	item.Quantity = newQty
	item.DisplayQuantity = display
	return nil
}

// Subtotal suma los subtotales de línea; se recalcula en cada llamada para
// mantenerse consistente con las ediciones.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Checkout congela el carrito para capturar el pago (Open → PendingPayment).
func (c *Cart) Checkout() error {
	if c.Status != StatusOpen {
		return domain.ErrConflict
	}
	if len(c.Items) == 0 {
		return domain.ErrEmptyCart
	}
	c.Status = StatusPendingPayment
	return nil
}

// Reopen devuelve el carrito a Open tras un pago cancelado o una
// liquidación fallida (PendingPayment → Open).
func (c *Cart) Reopen() error {
	if c.Status != StatusPendingPayment {
		return domain.ErrConflict
	}
	c.Status = StatusOpen
	return nil
}

// MarkCommitted sella el carrito tras persistir la factura. Lo invoca el
// protocolo de liquidación, nunca la capa HTTP.
func (c *Cart) MarkCommitted() {
	c.Status = StatusCommitted
}

// Abort descarta la venta.
func (c *Cart) Abort() {
	c.Status = StatusAborted
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
