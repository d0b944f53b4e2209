package repository

import "github.com/puntoventa/pos-api/internal/domain/entity"

// SettingsRepository define el puerto para la configuración de la tienda,
// incluido el contador de facturación (fila única).
type SettingsRepository interface {
	// Get devuelve la configuración actual; si no hay fila, los valores por defecto.
	Get() (*entity.ShopSettings, error)
	// GetForUpdate bloquea la fila de configuración (SELECT FOR UPDATE) para
	// que la asignación del consecutivo sea serial. Usar solo desde el TxRunner.
	GetForUpdate() (*entity.ShopSettings, error)
	// Save hace upsert de la fila completa.
	Save(settings *entity.ShopSettings) error
}
