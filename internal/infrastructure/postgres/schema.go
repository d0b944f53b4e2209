package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente de la base. Una tienda es una instalación, así que
// no hay tenancy: settings es una fila única (id=1) que guarda el prefijo y
// el contador de facturación.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	base_unit   TEXT NOT NULL,
	price       NUMERIC(14,4) NOT NULL,
	stock       NUMERIC(14,4) NOT NULL DEFAULT 0,
	min_stock   NUMERIC(14,4) NOT NULL DEFAULT 0,
	category    TEXT NOT NULL DEFAULT '',
	barcode     TEXT NOT NULL DEFAULT '',
	search_text TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_search ON products (search_text);

CREATE TABLE IF NOT EXISTS invoices (
	id             UUID PRIMARY KEY,
	invoice_number TEXT NOT NULL UNIQUE,
	subtotal       NUMERIC(14,4) NOT NULL,
	discount       NUMERIC(14,4) NOT NULL,
	discount_type  TEXT NOT NULL,
	total          NUMERIC(14,4) NOT NULL,
	payment_mode   TEXT NOT NULL,
	cashier_id     TEXT NOT NULL DEFAULT '',
	cashier_name   TEXT NOT NULL DEFAULT '',
	customer_name  TEXT NOT NULL DEFAULT '',
	customer_phone TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices (created_at DESC);

CREATE TABLE IF NOT EXISTS invoice_items (
	id               UUID PRIMARY KEY,
	invoice_id       UUID NOT NULL REFERENCES invoices(id),
	product_id       TEXT NOT NULL,
	product_name     TEXT NOT NULL,
	base_unit        TEXT NOT NULL,
	unit_price       NUMERIC(14,4) NOT NULL,
	quantity         NUMERIC(14,4) NOT NULL,
	display_unit     TEXT NOT NULL,
	display_quantity NUMERIC(14,4) NOT NULL,
	subtotal         NUMERIC(14,4) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id);

CREATE TABLE IF NOT EXISTS settings (
	id              INT PRIMARY KEY,
	shop_name       TEXT NOT NULL,
	address         TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	gst_number      TEXT NOT NULL DEFAULT '',
	upi_id          TEXT NOT NULL DEFAULT '',
	invoice_prefix  TEXT NOT NULL,
	invoice_counter BIGINT NOT NULL,
	paper_size      TEXT NOT NULL,
	currency        TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	role       TEXT NOT NULL,
	pin_hash   TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// ensureSchema aplica el DDL al arrancar.
func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}
