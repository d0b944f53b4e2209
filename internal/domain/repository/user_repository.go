package repository

import "github.com/puntoventa/pos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para operadores de caja.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// ListActive devuelve los usuarios con status=active (el login por PIN
	// compara el hash contra cada uno; una tienda tiene pocos operadores).
	ListActive() ([]*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
}
