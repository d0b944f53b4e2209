package billing

import (
	"context"
	"time"

	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

// HistoryUseCase lecturas sobre el libro de facturas (inmutable).
type HistoryUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
	pdfGenerator ReceiptPDFGenerator
}

// NewHistoryUseCase construye el caso de uso. pdfGenerator puede ser nil si
// el despliegue no genera recibos.
func NewHistoryUseCase(invoiceRepo repository.InvoiceRepository, settingsRepo repository.SettingsRepository, pdfGenerator ReceiptPDFGenerator) *HistoryUseCase {
	return &HistoryUseCase{invoiceRepo: invoiceRepo, settingsRepo: settingsRepo, pdfGenerator: pdfGenerator}
}

// GetByID obtiene una factura con sus líneas.
func (uc *HistoryUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return ToInvoiceResponse(inv), nil
}

// ListByDateRange lista facturas del rango [from, to) con paginación.
func (uc *HistoryUseCase) ListByDateRange(from, to time.Time, limit, offset int) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, inv := range list {
		out.Items = append(out.Items, *ToInvoiceResponse(inv))
	}
	return out, nil
}

// ReceiptPDF genera el recibo en PDF de una factura liquidada.
func (uc *HistoryUseCase) ReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	if uc.pdfGenerator == nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	shop, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateReceiptPDF(ctx, inv, shop)
}

// ToInvoiceResponse mapea la entidad al DTO de salida.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		DiscountType:  inv.DiscountType,
		Total:         inv.Total,
		PaymentMode:   inv.PaymentMode,
		CashierID:     inv.CashierID,
		CashierName:   inv.CashierName,
		CustomerName:  inv.CustomerName,
		CustomerPhone: inv.CustomerPhone,
		Notes:         inv.Notes,
		Items:         make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			BaseUnit:        it.BaseUnit.String(),
			UnitPrice:       it.UnitPrice,
			Quantity:        it.Quantity,
			DisplayUnit:     it.DisplayUnit.String(),
			DisplayQuantity: it.DisplayQuantity,
			Subtotal:        it.Subtotal,
		})
	}
	return resp
}
