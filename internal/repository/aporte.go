package repository

import (
	"context"

	"aportes-api/internal/domain"
)

// AporteRepository defines persistence operations for contribution entries.
// Every read or mutation that names a usuarioID is scoped to rows owned by
// that user; a miss yields ErrNotFound whether the row is absent or foreign.
type AporteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, aporte *domain.Aporte) (int64, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]domain.Aporte, error)
	// Update rewrites the entry's fields. A nil imagenURL keeps the stored
	// attachment URL unchanged; omission is not deletion.
	Update(ctx context.Context, aporte *domain.Aporte, imagenURL *string) (*domain.Aporte, error)
	Delete(ctx context.Context, id, usuarioID int64) (*domain.Aporte, error)

	TotalByUsuario(ctx context.Context, usuarioID int64) (domain.Centavos, error)
	TotalGeneral(ctx context.Context) (domain.Centavos, error)
}
