package cart

import (
	"sync"

	"github.com/puntoventa/pos-api/internal/domain"
)

// Sessions administra los carritos en curso por ID. El mutex protege solo el
// mapa de sesiones; cada carrito sigue siendo de un solo escritor (una
// terminal, una venta a la vez).
type Sessions struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewSessions construye el administrador de carritos.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Open crea y registra un carrito nuevo.
func (s *Sessions) Open() *Cart {
	c := New()
	s.mu.Lock()
	s.carts[c.ID] = c
	s.mu.Unlock()
	return c
}

// Get devuelve el carrito por ID o ErrNotFound.
func (s *Sessions) Get(id string) (*Cart, error) {
	s.mu.RLock()
	c, ok := s.carts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Close retira el carrito del registro (tras Committed o Aborted).
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
