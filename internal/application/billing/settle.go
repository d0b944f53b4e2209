// Package billing implementa la numeración de facturas y el protocolo de
// liquidación: convertir un carrito en una factura inmutable, descontar el
// inventario y avanzar el consecutivo, todo o nada.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/application/cart"
	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/application/pricing"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

// SettleUseCase ejecuta la transición PendingPayment → Committed.
type SettleUseCase struct {
	txRunner TxRunner
}

// NewSettleUseCase construye el caso de uso.
func NewSettleUseCase(txRunner TxRunner) *SettleUseCase {
	return &SettleUseCase{txRunner: txRunner}
}

// SettleInput datos de pago y cliente para liquidar un carrito congelado.
type SettleInput struct {
	Discount      decimal.Decimal
	DiscountType  string
	PaymentMode   string
	CashierID     string
	CashierName   string
	CustomerName  string
	CustomerPhone string
	Notes         string
}

// Settle liquida el carrito:
//
//  1. precondición: carrito en PendingPayment y con líneas (ErrEmptyCart);
//  2. subtotal del carrito + descuento → total;
//  3. dentro de una sola transacción: bloquea la fila de configuración,
//     asigna el número de factura, verifica todo el stock antes de mutar
//     nada (pase de pre-chequeo), descuenta línea por línea, persiste la
//     factura con snapshots y avanza el contador en exactamente 1.
//
// Cualquier fallo posterior a la precondición de estado (pago o descuento
// inválidos, stock insuficiente, error de la transacción) deja el carrito de
// nuevo en Open para corregir y reintentar; en stock insuficiente el error es
// ErrInsufficientStock identificando el producto, y ningún stock ni contador
// cambia.
func (uc *SettleUseCase) Settle(ctx context.Context, c *cart.Cart, in SettleInput) (*dto.InvoiceResponse, error) {
	if c == nil || len(c.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if c.Status != cart.StatusPendingPayment {
		return nil, domain.ErrConflict
	}
	if !entity.ValidPaymentMode(in.PaymentMode) {
		return nil, uc.fail(c, domain.ErrInvalidInput)
	}
	discountType := in.DiscountType
	if discountType == "" {
		discountType = entity.DiscountPercentage
	}
	if !entity.ValidDiscountType(discountType) {
		return nil, uc.fail(c, domain.ErrInvalidDiscount)
	}

	subtotal := c.Subtotal()
	_, total, err := pricing.ApplyDiscount(subtotal, in.Discount, discountType)
	if err != nil {
		return nil, uc.fail(c, err)
	}

	now := time.Now()
	var invoice *entity.Invoice

	err = uc.txRunner.RunSettlement(ctx, func(
		products repository.ProductRepository,
		invoices repository.InvoiceRepository,
		settings repository.SettingsRepository,
	) error {
		// Bloquea la fila de configuración: la asignación del consecutivo
		// queda serializada con cualquier otra liquidación.
		shop, err := settings.GetForUpdate()
		if err != nil {
			return err
		}

		// Pase de pre-chequeo: valida todas las líneas contra el stock
		// actual (filas bloqueadas) ANTES de mutar nada. Bajo el supuesto de
		// un solo escritor no hay intercalado dentro de la llamada, así que
		// el pase garantiza el todo-o-nada sin commit de dos fases.
		type deduction struct {
			productID string
			newStock  decimal.Decimal
		}
		deductions := make([]deduction, 0, len(c.Items))
		for _, item := range c.Items {
			p, err := products.GetForUpdate(item.Product.ID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %q: %w", item.Product.Name, domain.ErrNotFound)
			}
			remaining := p.Stock.Sub(item.Quantity)
			if remaining.IsNegative() {
				return fmt.Errorf("producto %q: %w", p.Name, domain.ErrInsufficientStock)
			}
			deductions = append(deductions, deduction{productID: p.ID, newStock: remaining})
		}
		for _, ded := range deductions {
			if err := products.UpdateStock(ded.productID, ded.newStock); err != nil {
				return err
			}
		}

		// Número de factura y entidad inmutable con snapshots de línea.
		invoice = &entity.Invoice{
			ID:            uuid.New().String(),
			InvoiceNumber: FormatNumber(shop.InvoicePrefix, shop.InvoiceCounter),
			Subtotal:      subtotal,
			Discount:      in.Discount,
			DiscountType:  discountType,
			Total:         total,
			PaymentMode:   in.PaymentMode,
			CashierID:     in.CashierID,
			CashierName:   in.CashierName,
			CustomerName:  in.CustomerName,
			CustomerPhone: in.CustomerPhone,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		for _, item := range c.Items {
			snapshot := item.Product.Snapshot()
			invoice.Items = append(invoice.Items, entity.InvoiceItem{
				ID:              uuid.New().String(),
				InvoiceID:       invoice.ID,
				ProductID:       snapshot.ID,
				ProductName:     snapshot.Name,
				BaseUnit:        snapshot.BaseUnit,
				UnitPrice:       snapshot.Price,
				Quantity:        item.Quantity,
				DisplayUnit:     item.DisplayUnit,
				DisplayQuantity: item.DisplayQuantity,
				Subtotal:        item.Subtotal(),
			})
		}
		if err := invoices.Create(invoice); err != nil {
			return err
		}

		// Avanza el consecutivo en exactamente 1, solo en liquidación exitosa.
		shop.InvoiceCounter++
		shop.UpdatedAt = now
		return settings.Save(shop)
	})
	if err != nil {
		return nil, uc.fail(c, err)
	}

	c.MarkCommitted()
	return ToInvoiceResponse(invoice), nil
}

// fail devuelve el carrito a Open tras una liquidación fallida, sea por
// validación de entrada o por la transacción.
func (uc *SettleUseCase) fail(c *cart.Cart, err error) error {
	_ = c.Reopen()
	return err
}
