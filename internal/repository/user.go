package repository

import (
	"context"
	"errors"

	"aportes-api/internal/domain"
)

// ErrNotFound is returned when a row does not exist or is not owned by the
// requesting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsuario is returned when a login handle is already taken.
var ErrDuplicateUsuario = errors.New("usuario already exists")

// UserRepository defines persistence operations for Usuario entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.Usuario) (int64, error)
	GetByUsuario(ctx context.Context, usuario string) (*domain.Usuario, error)
	GetByID(ctx context.Context, id int64) (*domain.Usuario, error)
}
