package memory

import (
	"time"

	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

type invoiceRepo struct {
	s *Store
}

func (r *invoiceRepo) Create(invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.invoices[invoice.ID]; exists {
		return domain.ErrDuplicate
	}
	cp := *invoice
	cp.Items = append([]entity.InvoiceItem(nil), invoice.Items...)
	r.s.invoices[invoice.ID] = cp
	r.s.invoiceOrder = append(r.s.invoiceOrder, invoice.ID)
	return nil
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (r *invoiceRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	skipped := 0
	// recorrido del más reciente al más antiguo
	for i := len(r.s.invoiceOrder) - 1; i >= 0; i-- {
		inv := r.s.invoices[r.s.invoiceOrder[i]]
		if inv.CreatedAt.Before(from) || !inv.CreatedAt.Before(to) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, copyInvoice(inv))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *invoiceRepo) ListRecent(limit int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for i := len(r.s.invoiceOrder) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, copyInvoice(r.s.invoices[r.s.invoiceOrder[i]]))
	}
	return out, nil
}

func copyInvoice(inv entity.Invoice) *entity.Invoice {
	cp := inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &cp
}
