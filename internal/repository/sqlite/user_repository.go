package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"aportes-api/internal/domain"
	"aportes-api/internal/repository"
)

const createUsuariosTable = `
CREATE TABLE IF NOT EXISTS usuarios (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL,
	usuario TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsuariosTable); err != nil {
		return fmt.Errorf("create usuarios table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.Usuario) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO usuarios (nombre, usuario, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		user.Nombre,
		user.Usuario,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, repository.ErrDuplicateUsuario
		}
		return 0, fmt.Errorf("insert usuario: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("usuario last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByUsuario(ctx context.Context, usuario string) (*domain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, nombre, usuario, password_hash, created_at, updated_at
FROM usuarios
WHERE usuario = ?`,
		usuario,
	)
	return scanUsuario(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, nombre, usuario, password_hash, created_at, updated_at
FROM usuarios
WHERE id = ?`,
		id,
	)
	return scanUsuario(row)
}

func scanUsuario(row interface {
	Scan(dest ...any) error
}) (*domain.Usuario, error) {
	var user domain.Usuario
	if err := row.Scan(
		&user.ID,
		&user.Nombre,
		&user.Usuario,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return &user, nil
}
