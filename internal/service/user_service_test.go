package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aportes-api/internal/repository/sqlite"
)

func newUserService(t *testing.T, ttl time.Duration) UserService {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))

	return NewUserService(users, "test-secret", ttl)
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana", "pw1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash, "register must not expose the digest")

	result, err := svc.Login(ctx, "ana", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", result.Nombre)
	assert.Equal(t, "ana", result.Usuario)

	// The token decodes to the registered user's id.
	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["id"])
}

func TestLoginTrimsCredentials(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana", " pw1 ")
	require.NoError(t, err)

	// Register and Login trim the same way, so padded input round-trips.
	result, err := svc.Login(ctx, " ana ", " pw1 ")
	require.NoError(t, err)
	assert.Equal(t, "ana", result.Usuario)

	_, err = svc.Login(ctx, "ana", "pw1")
	require.NoError(t, err)
}

func TestRegisterDuplicateUsuario(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Otra Ana", "ana", "pw2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginFailures(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana", "pw1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nadie", "pw1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "ana", "pw1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "Ana", "", "pw1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "Ana", "ana", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
