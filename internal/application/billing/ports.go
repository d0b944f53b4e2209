package billing

import (
	"context"

	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

// TxRunner ejecuta la liquidación dentro de una frontera transaccional: el
// callback recibe repositorios atados a la misma transacción y todo se
// confirma o se revierte como unidad.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		products repository.ProductRepository,
		invoices repository.InvoiceRepository,
		settings repository.SettingsRepository,
	) error) error
}

// ReceiptPDFGenerator renderiza el recibo de una factura liquidada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, invoice *entity.Invoice, settings *entity.ShopSettings) ([]byte, error)
}
