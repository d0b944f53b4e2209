// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en desarrollo (DB_DRIVER=memory) y en los tests de casos
// de uso; el modelo de un solo escritor hace suficiente un mutex global.
package memory

import (
	"context"
	"sync"

	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

// Store contiene todo el estado persistido. Los repositorios son vistas
// sobre el mismo Store y devuelven copias, nunca referencias internas.
type Store struct {
	mu           sync.Mutex
	products     map[string]entity.Product
	invoices     map[string]entity.Invoice
	invoiceOrder []string // IDs en orden de creación
	settings     entity.ShopSettings
	hasSettings  bool
	users        map[string]entity.User
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		invoices: make(map[string]entity.Invoice),
		users:    make(map[string]entity.User),
	}
}

// Products devuelve el adaptador del puerto ProductRepository.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Invoices devuelve el adaptador del puerto InvoiceRepository.
func (s *Store) Invoices() repository.InvoiceRepository { return &invoiceRepo{s: s} }

// Settings devuelve el adaptador del puerto SettingsRepository.
func (s *Store) Settings() repository.SettingsRepository { return &settingsRepo{s: s} }

// Users devuelve el adaptador del puerto UserRepository.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

var _ billing.TxRunner = (*Store)(nil)

// RunSettlement implementa billing.TxRunner con rollback por snapshot: se
// copia el estado completo antes de ejecutar fn y se restaura si fn falla.
// Con un solo escritor esto da la misma semántica todo-o-nada que una
// transacción SQL.
func (s *Store) RunSettlement(_ context.Context, fn func(
	products repository.ProductRepository,
	invoices repository.InvoiceRepository,
	settings repository.SettingsRepository,
) error) error {
	s.mu.Lock()
	snapProducts := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		snapProducts[k] = v
	}
	snapInvoices := make(map[string]entity.Invoice, len(s.invoices))
	for k, v := range s.invoices {
		snapInvoices[k] = v
	}
	snapOrder := append([]string(nil), s.invoiceOrder...)
	snapSettings := s.settings
	snapHas := s.hasSettings
	s.mu.Unlock()

	if err := fn(s.Products(), s.Invoices(), s.Settings()); err != nil {
		s.mu.Lock()
		s.products = snapProducts
		s.invoices = snapInvoices
		s.invoiceOrder = snapOrder
		s.settings = snapSettings
		s.hasSettings = snapHas
		s.mu.Unlock()
		return err
	}
	return nil
}
