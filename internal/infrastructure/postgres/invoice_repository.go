package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, subtotal, discount, discount_type, total, payment_mode, cashier_id, cashier_name, customer_name, customer_phone, notes, created_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL
// (usable con pool o tx). Las facturas son inmutables: no hay UPDATE.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas. El llamador debe pasar un Querier
// transaccional para que cabecera y líneas entren juntas.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	query := `
		INSERT INTO invoices (id, invoice_number, subtotal, discount, discount_type, total, payment_mode, cashier_id, cashier_name, customer_name, customer_phone, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.InvoiceNumber, invoice.Subtotal, invoice.Discount, invoice.DiscountType,
		invoice.Total, invoice.PaymentMode, invoice.CashierID, invoice.CashierName,
		invoice.CustomerName, invoice.CustomerPhone, invoice.Notes, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range invoice.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, product_id, product_name, base_unit, unit_price, quantity, display_unit, display_quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, invoice.ID, it.ProductID, it.ProductName, it.BaseUnit.String(),
			it.UnitPrice, it.Quantity, it.DisplayUnit.String(), it.DisplayQuantity, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura con sus líneas. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	ctx := context.Background()
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil || inv == nil {
		return inv, err
	}
	if err := r.loadItems(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListByDateRange lista facturas del rango [from, to) con paginación, de la
// más reciente a la más antigua.
func (r *InvoiceRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Invoice, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return r.scanAndLoad(ctx, rows)
}

// ListRecent devuelve las últimas facturas liquidadas.
func (r *InvoiceRepo) ListRecent(limit int) ([]*entity.Invoice, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent invoices: %w", err)
	}
	return r.scanAndLoad(ctx, rows)
}

// scanAndLoad agota rows antes de cargar líneas: un mismo Querier no puede
// tener dos cursores abiertos si es una tx.
func (r *InvoiceRepo) scanAndLoad(ctx context.Context, rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		if err := r.loadItems(ctx, inv); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, inv *entity.Invoice) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, product_name, base_unit, unit_price, quantity, display_unit, display_quantity, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, inv.ID)
	if err != nil {
		return fmt.Errorf("load invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InvoiceItem
		var baseUnit, displayUnit string
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &baseUnit,
			&it.UnitPrice, &it.Quantity, &displayUnit, &it.DisplayQuantity, &it.Subtotal); err != nil {
			return fmt.Errorf("scan invoice item: %w", err)
		}
		it.BaseUnit = unit.Unit(baseUnit)
		it.DisplayUnit = unit.Unit(displayUnit)
		inv.Items = append(inv.Items, it)
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.Subtotal, &inv.Discount, &inv.DiscountType,
		&inv.Total, &inv.PaymentMode, &inv.CashierID, &inv.CashierName,
		&inv.CustomerName, &inv.CustomerPhone, &inv.Notes, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}
