package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aportes-api/internal/domain"
	"aportes-api/internal/repository"
)

const createGastosTable = `
CREATE TABLE IF NOT EXISTS gastos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
	monto INTEGER NOT NULL,
	descripcion TEXT NOT NULL DEFAULT '',
	fecha TEXT NOT NULL,
	imagen_url TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type GastoRepository struct {
	db *sql.DB
}

func NewGastoRepository(db *sql.DB) repository.GastoRepository {
	return &GastoRepository{db: db}
}

func (r *GastoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createGastosTable); err != nil {
		return fmt.Errorf("create gastos table: %w", err)
	}
	return nil
}

func (r *GastoRepository) Create(ctx context.Context, gasto *domain.Gasto) (int64, error) {
	now := time.Now().UTC()
	gasto.CreatedAt = now
	gasto.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO gastos (usuario_id, monto, descripcion, fecha, imagen_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gasto.UsuarioID,
		int64(gasto.Monto),
		gasto.Descripcion,
		gasto.Fecha,
		gasto.ImagenURL,
		gasto.CreatedAt,
		gasto.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert gasto: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("gasto last insert id: %w", err)
	}
	gasto.ID = id
	return id, nil
}

func (r *GastoRepository) ListByUsuario(ctx context.Context, usuarioID int64) ([]domain.Gasto, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, usuario_id, monto, descripcion, fecha, imagen_url, created_at, updated_at
FROM gastos
WHERE usuario_id = ?
ORDER BY fecha DESC, id DESC`,
		usuarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()

	var gastos []domain.Gasto
	for rows.Next() {
		gasto, err := scanGasto(rows)
		if err != nil {
			return nil, err
		}
		gastos = append(gastos, *gasto)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gastos: %w", err)
	}
	return gastos, nil
}

func (r *GastoRepository) Update(ctx context.Context, gasto *domain.Gasto, imagenURL *string) (*domain.Gasto, error) {
	gasto.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE gastos
SET monto=?, descripcion=?, fecha=?, imagen_url=COALESCE(?, imagen_url), updated_at=?
WHERE id=? AND usuario_id=?`,
		int64(gasto.Monto),
		gasto.Descripcion,
		gasto.Fecha,
		imagenURL,
		gasto.UpdatedAt,
		gasto.ID,
		gasto.UsuarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("update gasto: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update gasto rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.getOwned(ctx, gasto.ID, gasto.UsuarioID)
}

// Delete removes the row in one statement so concurrent deletes of the same
// id cannot both see it; the losing call gets ErrNotFound.
func (r *GastoRepository) Delete(ctx context.Context, id, usuarioID int64) (*domain.Gasto, error) {
	row := r.db.QueryRowContext(ctx, `
DELETE FROM gastos WHERE id=? AND usuario_id=?
RETURNING id, usuario_id, monto, descripcion, fecha, imagen_url, created_at, updated_at`,
		id, usuarioID,
	)
	return scanGasto(row)
}

func (r *GastoRepository) TotalByUsuario(ctx context.Context, usuarioID int64) (domain.Centavos, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(monto), 0) FROM gastos WHERE usuario_id = ?`, usuarioID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total gastos by usuario: %w", err)
	}
	return domain.Centavos(total), nil
}

func (r *GastoRepository) TotalGeneral(ctx context.Context) (domain.Centavos, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(monto), 0) FROM gastos`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total gastos: %w", err)
	}
	return domain.Centavos(total), nil
}

// SaldoTotal computes sum(aportes) - sum(gastos) in one statement so the
// balance reflects a single point in time.
func (r *GastoRepository) SaldoTotal(ctx context.Context) (domain.Centavos, error) {
	var saldo int64
	err := r.db.QueryRowContext(ctx, `
SELECT (SELECT COALESCE(SUM(monto), 0) FROM aportes) -
       (SELECT COALESCE(SUM(monto), 0) FROM gastos)`).Scan(&saldo)
	if err != nil {
		return 0, fmt.Errorf("saldo total: %w", err)
	}
	return domain.Centavos(saldo), nil
}

func (r *GastoRepository) ListAllWithUsuario(ctx context.Context) ([]domain.GastoConUsuario, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT g.id, g.usuario_id, g.monto, g.descripcion, g.fecha, g.imagen_url, g.created_at, g.updated_at, u.nombre
FROM gastos g
JOIN usuarios u ON g.usuario_id = u.id
ORDER BY g.fecha DESC, g.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gastos with usuario: %w", err)
	}
	defer rows.Close()

	var gastos []domain.GastoConUsuario
	for rows.Next() {
		var (
			row   domain.GastoConUsuario
			monto int64
		)
		if err := rows.Scan(
			&row.ID,
			&row.UsuarioID,
			&monto,
			&row.Descripcion,
			&row.Fecha,
			&row.ImagenURL,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.UsuarioNombre,
		); err != nil {
			return nil, fmt.Errorf("scan gasto with usuario: %w", err)
		}
		row.Monto = domain.Centavos(monto)
		gastos = append(gastos, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gastos with usuario: %w", err)
	}
	return gastos, nil
}

func (r *GastoRepository) getOwned(ctx context.Context, id, usuarioID int64) (*domain.Gasto, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, usuario_id, monto, descripcion, fecha, imagen_url, created_at, updated_at
FROM gastos
WHERE id = ? AND usuario_id = ?`,
		id, usuarioID,
	)
	return scanGasto(row)
}

func scanGasto(row interface {
	Scan(dest ...any) error
}) (*domain.Gasto, error) {
	var (
		gasto domain.Gasto
		monto int64
	)
	if err := row.Scan(
		&gasto.ID,
		&gasto.UsuarioID,
		&monto,
		&gasto.Descripcion,
		&gasto.Fecha,
		&gasto.ImagenURL,
		&gasto.CreatedAt,
		&gasto.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan gasto: %w", err)
	}
	gasto.Monto = domain.Centavos(monto)
	return &gasto, nil
}
