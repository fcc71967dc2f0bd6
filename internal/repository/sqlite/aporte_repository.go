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

const createAportesTable = `
CREATE TABLE IF NOT EXISTS aportes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
	monto INTEGER NOT NULL,
	numero_aporte INTEGER NOT NULL,
	fecha TEXT NOT NULL,
	banco TEXT NOT NULL DEFAULT '',
	imagen_url TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type AporteRepository struct {
	db *sql.DB
}

func NewAporteRepository(db *sql.DB) repository.AporteRepository {
	return &AporteRepository{db: db}
}

func (r *AporteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAportesTable); err != nil {
		return fmt.Errorf("create aportes table: %w", err)
	}
	return nil
}

func (r *AporteRepository) Create(ctx context.Context, aporte *domain.Aporte) (int64, error) {
	now := time.Now().UTC()
	aporte.CreatedAt = now
	aporte.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO aportes (usuario_id, monto, numero_aporte, fecha, banco, imagen_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		aporte.UsuarioID,
		int64(aporte.Monto),
		aporte.NumeroAporte,
		aporte.Fecha,
		aporte.Banco,
		aporte.ImagenURL,
		aporte.CreatedAt,
		aporte.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert aporte: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("aporte last insert id: %w", err)
	}
	aporte.ID = id
	return id, nil
}

func (r *AporteRepository) ListByUsuario(ctx context.Context, usuarioID int64) ([]domain.Aporte, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, usuario_id, monto, numero_aporte, fecha, banco, imagen_url, created_at, updated_at
FROM aportes
WHERE usuario_id = ?
ORDER BY fecha DESC, id DESC`,
		usuarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("list aportes: %w", err)
	}
	defer rows.Close()

	var aportes []domain.Aporte
	for rows.Next() {
		aporte, err := scanAporte(rows)
		if err != nil {
			return nil, err
		}
		aportes = append(aportes, *aporte)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aportes: %w", err)
	}
	return aportes, nil
}

// Update rewrites the row identified by (id, usuario_id). COALESCE keeps the
// stored imagen_url when imagenURL is nil.
func (r *AporteRepository) Update(ctx context.Context, aporte *domain.Aporte, imagenURL *string) (*domain.Aporte, error) {
	aporte.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE aportes
SET monto=?, numero_aporte=?, fecha=?, banco=?, imagen_url=COALESCE(?, imagen_url), updated_at=?
WHERE id=? AND usuario_id=?`,
		int64(aporte.Monto),
		aporte.NumeroAporte,
		aporte.Fecha,
		aporte.Banco,
		imagenURL,
		aporte.UpdatedAt,
		aporte.ID,
		aporte.UsuarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("update aporte: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update aporte rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.getOwned(ctx, aporte.ID, aporte.UsuarioID)
}

// Delete removes the row in one statement so concurrent deletes of the same
// id cannot both see it; the losing call gets ErrNotFound.
func (r *AporteRepository) Delete(ctx context.Context, id, usuarioID int64) (*domain.Aporte, error) {
	row := r.db.QueryRowContext(ctx, `
DELETE FROM aportes WHERE id=? AND usuario_id=?
RETURNING id, usuario_id, monto, numero_aporte, fecha, banco, imagen_url, created_at, updated_at`,
		id, usuarioID,
	)
	return scanAporte(row)
}

func (r *AporteRepository) TotalByUsuario(ctx context.Context, usuarioID int64) (domain.Centavos, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(monto), 0) FROM aportes WHERE usuario_id = ?`, usuarioID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total aportes by usuario: %w", err)
	}
	return domain.Centavos(total), nil
}

func (r *AporteRepository) TotalGeneral(ctx context.Context) (domain.Centavos, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(monto), 0) FROM aportes`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total aportes: %w", err)
	}
	return domain.Centavos(total), nil
}

func (r *AporteRepository) getOwned(ctx context.Context, id, usuarioID int64) (*domain.Aporte, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, usuario_id, monto, numero_aporte, fecha, banco, imagen_url, created_at, updated_at
FROM aportes
WHERE id = ? AND usuario_id = ?`,
		id, usuarioID,
	)
	return scanAporte(row)
}

func scanAporte(row interface {
	Scan(dest ...any) error
}) (*domain.Aporte, error) {
	var (
		aporte domain.Aporte
		monto  int64
	)
	if err := row.Scan(
		&aporte.ID,
		&aporte.UsuarioID,
		&monto,
		&aporte.NumeroAporte,
		&aporte.Fecha,
		&aporte.Banco,
		&aporte.ImagenURL,
		&aporte.CreatedAt,
		&aporte.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan aporte: %w", err)
	}
	aporte.Monto = domain.Centavos(monto)
	return &aporte, nil
}
