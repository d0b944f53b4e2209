package entity

import "time"

// Tamaños de papel soportados para recibos.
const (
	PaperThermal = "Thermal"
	PaperA4      = "A4"
)

// ShopSettings agrupa la configuración persistida de la tienda, incluido el
// contador de facturación. Solo el protocolo de liquidación avanza
// InvoiceCounter, y exactamente en 1 por venta exitosa.
type ShopSettings struct {
	ShopName       string
	Address        string
	Phone          string
	Email          string
	GSTNumber      string
	UPIID          string
	InvoicePrefix  string
	InvoiceCounter int64 // próximo consecutivo a asignar
	PaperSize      string
	Currency       string
	UpdatedAt      time.Time
}

// DefaultSettings valores iniciales cuando la tienda aún no se ha configurado.
func DefaultSettings() ShopSettings {
	return ShopSettings{
		ShopName:       "Mi Tienda",
		InvoicePrefix:  "INV",
		InvoiceCounter: 1,
		PaperSize:      PaperThermal,
		Currency:       "₹",
	}
}
