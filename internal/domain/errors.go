package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidProduct    = errors.New("producto inválido")
	ErrInvalidDiscount   = errors.New("descuento inválido")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrIncompatibleUnits = errors.New("unidades incompatibles")
	ErrUnknownUnit       = errors.New("unidad desconocida")
)
