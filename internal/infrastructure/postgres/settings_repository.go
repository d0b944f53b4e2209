package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

const settingsColumns = `shop_name, address, phone, email, gst_number, upi_id, invoice_prefix, invoice_counter, paper_size, currency, updated_at`

// SettingsRepo implementación del puerto SettingsRepository: una sola fila
// con id=1 que guarda la configuración de la tienda y el contador de
// facturación.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de configuración.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración; si la fila no existe aún, los valores por
// defecto (sin persistirlos).
func (r *SettingsRepo) Get() (*entity.ShopSettings, error) {
	s, found, err := r.get(`SELECT ` + settingsColumns + ` FROM settings WHERE id = 1`)
	if err != nil {
		return nil, err
	}
	if !found {
		def := entity.DefaultSettings()
		return &def, nil
	}
	return s, nil
}

// GetForUpdate bloquea la fila de configuración para serializar la asignación
// del consecutivo. Si la fila no existe la crea con los valores por defecto,
// para que el FOR UPDATE tenga algo que bloquear.
func (r *SettingsRepo) GetForUpdate() (*entity.ShopSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE id = 1 FOR UPDATE`
	s, found, err := r.get(query)
	if err != nil {
		return nil, err
	}
	if !found {
		def := entity.DefaultSettings()
		if err := r.Save(&def); err != nil {
			return nil, err
		}
		s, _, err = r.get(query)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *SettingsRepo) get(query string) (*entity.ShopSettings, bool, error) {
	var s entity.ShopSettings
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.ShopName, &s.Address, &s.Phone, &s.Email, &s.GSTNumber, &s.UPIID,
		&s.InvoicePrefix, &s.InvoiceCounter, &s.PaperSize, &s.Currency, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get settings: %w", err)
	}
	return &s, true, nil
}

// Save hace upsert de la fila completa.
func (r *SettingsRepo) Save(settings *entity.ShopSettings) error {
	query := `
		INSERT INTO settings (id, shop_name, address, phone, email, gst_number, upi_id, invoice_prefix, invoice_counter, paper_size, currency, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name, address = EXCLUDED.address,
			phone = EXCLUDED.phone, email = EXCLUDED.email,
			gst_number = EXCLUDED.gst_number, upi_id = EXCLUDED.upi_id,
			invoice_prefix = EXCLUDED.invoice_prefix, invoice_counter = EXCLUDED.invoice_counter,
			paper_size = EXCLUDED.paper_size, currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		settings.ShopName, settings.Address, settings.Phone, settings.Email,
		settings.GSTNumber, settings.UPIID, settings.InvoicePrefix, settings.InvoiceCounter,
		settings.PaperSize, settings.Currency, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
