package repository

import (
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search hace match por subcadena sobre nombre, categoría y código de
	// barras; la consulta llega ya normalizada (minúsculas, sin acentos).
	Search(normalizedQuery string, limit int) ([]*entity.Product, error)
	// ListLowStock devuelve productos con stock <= min_stock.
	ListLowStock() ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto dentro de una transacción
	// (SELECT FOR UPDATE). Usar solo desde el TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el nuevo stock ya validado (>= 0). La validación de
	// no-negatividad es del caso de uso; el repositorio no ajusta ni recorta.
	UpdateStock(id string, stock decimal.Decimal) error
}
