// Package catalog implementa los casos de uso del catálogo de productos:
// CRUD, búsqueda, stock bajo y ajuste de stock. Precio y stock se validan y
// guardan en la unidad base del producto; el catálogo no conoce unidades de
// presentación.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	repo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create valida y crea un producto. Falla con ErrInvalidProduct si el precio
// no es positivo, el stock o minStock son negativos, o la unidad base no existe.
func (uc *UseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidProduct
	}
	baseUnit, err := unit.Parse(in.BaseUnit)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidProduct
	}
	if in.Stock.IsNegative() {
		return nil, domain.ErrInvalidProduct
	}
	minStock := decimal.Zero
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidProduct
		}
		minStock = *in.MinStock
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		BaseUnit:  baseUnit,
		Price:     in.Price,
		Stock:     in.Stock,
		MinStock:  minStock,
		Category:  in.Category,
		Barcode:   in.Barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update actualiza campos de forma parcial. BaseUnit no es editable.
func (uc *UseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidProduct
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidProduct
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if in.Stock.IsNegative() {
			return nil, domain.ErrInvalidProduct
		}
		product.Stock = *in.Stock
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidProduct
		}
		product.MinStock = *in.MinStock
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto del catálogo. Las facturas históricas conservan
// sus snapshots, así que el borrado no las afecta.
func (uc *UseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// GetProduct devuelve la entidad (para el carrito, que necesita el snapshot).
func (uc *UseCase) GetProduct(id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos con paginación.
func (uc *UseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, *ToProductResponse(p))
	}
	return out, nil
}

// Search busca por subcadena sobre nombre, categoría y código de barras,
// sin distinguir mayúsculas ni acentos.
func (uc *UseCase) Search(query string, limit int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.Search(Normalize(query), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// LowStock devuelve productos con stock <= (minStock ?? 0).
func (uc *UseCase) LowStock() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// AdjustStock suma delta (unidades base) al stock del producto. Falla con
// ErrInsufficientStock si el resultado sería negativo; nunca recorta en
// silencio ni muta antes de validar.
func (uc *UseCase) AdjustStock(id string, delta decimal.Decimal) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	newStock := product.Stock.Add(delta)
	if newStock.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	if err := uc.repo.UpdateStock(id, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return ToProductResponse(product), nil
}

func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	available := unit.Available(p.BaseUnit)
	units := make([]string, 0, len(available))
	for _, u := range available {
		units = append(units, u.String())
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		BaseUnit:  p.BaseUnit.String(),
		Price:     p.Price,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Category:  p.Category,
		Barcode:   p.Barcode,
		Units:     units,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
