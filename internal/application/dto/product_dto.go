package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Price y Stock van en BaseUnit.
type CreateProductRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	BaseUnit string           `json:"base_unit" validate:"required"`
	Price    decimal.Decimal  `json:"price"`
	Stock    decimal.Decimal  `json:"stock"`
	MinStock *decimal.Decimal `json:"min_stock"`
	Category string           `json:"category"`
	Barcode  string           `json:"barcode"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial).
// BaseUnit no es editable: precio y stock históricos están denominados en ella.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *decimal.Decimal `json:"stock"`
	MinStock *decimal.Decimal `json:"min_stock"`
	Category *string          `json:"category"`
	Barcode  *string          `json:"barcode"`
}

// AdjustStockRequest entrada para ajustar stock en delta (unidades base).
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BaseUnit  string          `json:"base_unit"`
	Price     decimal.Decimal `json:"price"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Category  string          `json:"category,omitempty"`
	Barcode   string          `json:"barcode,omitempty"`
	Units     []string        `json:"units"` // unidades de presentación disponibles
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
