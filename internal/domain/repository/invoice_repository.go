package repository

import (
	"time"

	"github.com/puntoventa/pos-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas.
// Las facturas son inmutables: solo Create y lecturas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas. Debe invocarse dentro de la
	// transacción de liquidación (vía TxRunner).
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Invoice, error)
	ListRecent(limit int) ([]*entity.Invoice, error)
}
