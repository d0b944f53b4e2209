package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
	"github.com/puntoventa/pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// DefaultAdminPIN es el PIN del administrador sembrado en una instalación
// vacía. Debe cambiarse en el primer uso.
const DefaultAdminPIN = "1234"

// UseCase casos de uso de autenticación y gestión de operadores.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// EnsureDefaultAdmin siembra un administrador con PIN por defecto cuando la
// instalación no tiene ningún usuario. Devuelve el usuario creado, o nil si
// ya había usuarios.
func (uc *UseCase) EnsureDefaultAdmin() (*dto.UserResponse, error) {
	existing, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}
	return uc.CreateUser(dto.CreateUserRequest{
		Name: "Administrador",
		Role: entity.RoleAdmin,
		PIN:  DefaultAdminPIN,
	})
}

// Login verifica el PIN contra los operadores activos, genera JWT y retorna
// token + usuario. El PIN no lleva identificador de usuario: se compara el
// hash contra cada operador activo, lo cual es aceptable para el puñado de
// cajeros de una tienda.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.PIN == "" {
		return nil, domain.ErrInvalidInput
	}
	users, err := uc.userRepo.ListActive()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(in.PIN)) == nil {
			token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
			if err != nil {
				return nil, err
			}
			return &dto.LoginResponse{Token: token, User: *toUserResponse(u)}, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

// CreateUser crea un operador: hashea el PIN con bcrypt y persiste.
func (uc *UseCase) CreateUser(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || len(in.PIN) < 4 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Role:      in.Role,
		PINHash:   string(hash),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers lista todos los operadores, activos o no.
func (uc *UseCase) ListUsers() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// DeactivateUser marca un operador como inactivo; su historial de ventas se
// conserva porque las facturas guardan el nombre del cajero.
func (uc *UseCase) DeactivateUser(id string) error {
	u, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	u.Status = "inactive"
	u.UpdatedAt = time.Now()
	return uc.userRepo.Update(u)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
