package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/pos-api/internal/application/auth"
	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/infrastructure/memory"
	"github.com/puntoventa/pos-api/pkg/jwt"
)

func newUC() *auth.UseCase {
	cfg := auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "pos-api-test"}
	return auth.NewUseCase(memory.NewStore().Users(), cfg)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	uc := newUC()

	created, err := uc.EnsureDefaultAdmin()
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.RoleAdmin, created.Role)

	// idempotente: con usuarios presentes no siembra otro
	again, err := uc.EnsureDefaultAdmin()
	require.NoError(t, err)
	assert.Nil(t, again)

	// el admin sembrado puede entrar con el PIN por defecto
	out, err := uc.Login(dto.LoginRequest{PIN: auth.DefaultAdminPIN})
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.User.ID)
}

func TestLogin(t *testing.T) {
	uc := newUC()
	created, err := uc.CreateUser(dto.CreateUserRequest{Name: "Laura", Role: entity.RoleCashier, PIN: "4321"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{PIN: "4321"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)

	// el token lleva el rol correcto
	userID, role, err := jwt.Parse("secreto-de-prueba", out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleCashier, role)

	_, err = uc.Login(dto.LoginRequest{PIN: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_InactivoNoEntra(t *testing.T) {
	uc := newUC()
	created, err := uc.CreateUser(dto.CreateUserRequest{Name: "Laura", Role: entity.RoleCashier, PIN: "4321"})
	require.NoError(t, err)
	require.NoError(t, uc.DeactivateUser(created.ID))

	_, err = uc.Login(dto.LoginRequest{PIN: "4321"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := newUC()

	_, err := uc.CreateUser(dto.CreateUserRequest{Name: "", Role: entity.RoleCashier, PIN: "4321"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(dto.CreateUserRequest{Name: "Laura", Role: entity.RoleCashier, PIN: "12"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "PIN demasiado corto")

	_, err = uc.CreateUser(dto.CreateUserRequest{Name: "Laura", Role: "gerente", PIN: "4321"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")
}

func TestUserResponse_NoExponeElHash(t *testing.T) {
	uc := newUC()
	_, err := uc.CreateUser(dto.CreateUserRequest{Name: "Laura", Role: entity.RoleCashier, PIN: "4321"})
	require.NoError(t, err)

	users, err := uc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	// dto.UserResponse no tiene campo de PIN; verificamos los visibles
	assert.Equal(t, "Laura", users[0].Name)
	assert.Equal(t, "active", users[0].Status)
}
