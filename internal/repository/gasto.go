package repository

import (
	"context"

	"aportes-api/internal/domain"
)

// GastoRepository defines persistence operations for expense entries,
// with the same ownership scoping rules as AporteRepository.
type GastoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, gasto *domain.Gasto) (int64, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]domain.Gasto, error)
	Update(ctx context.Context, gasto *domain.Gasto, imagenURL *string) (*domain.Gasto, error)
	Delete(ctx context.Context, id, usuarioID int64) (*domain.Gasto, error)

	TotalByUsuario(ctx context.Context, usuarioID int64) (domain.Centavos, error)
	TotalGeneral(ctx context.Context) (domain.Centavos, error)
	// SaldoTotal is the global balance: all contributions minus all expenses.
	// It may be negative.
	SaldoTotal(ctx context.Context) (domain.Centavos, error)
	// ListAllWithUsuario returns every expense joined with its owner's
	// display name, newest fecha first.
	ListAllWithUsuario(ctx context.Context) ([]domain.GastoConUsuario, error)
}
