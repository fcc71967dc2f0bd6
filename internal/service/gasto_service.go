package service

import (
	"context"
	"fmt"

	"aportes-api/internal/domain"
	"aportes-api/internal/repository"
	"aportes-api/internal/storage"
)

// GastoInput carries the caller-editable fields of an expense.
type GastoInput struct {
	Monto       domain.Centavos
	Descripcion string
	Fecha       string
}

// GastoService manages expense entries plus the public aggregate views.
type GastoService interface {
	Create(ctx context.Context, usuarioID int64, in GastoInput, imagen *ImagenUpload) (*domain.Gasto, error)
	List(ctx context.Context, usuarioID int64) ([]domain.Gasto, error)
	Update(ctx context.Context, usuarioID, id int64, in GastoInput, imagen *ImagenUpload) (*domain.Gasto, error)
	Delete(ctx context.Context, usuarioID, id int64) (*domain.Gasto, error)
	Total(ctx context.Context, usuarioID int64) (domain.Centavos, error)
	TotalGlobal(ctx context.Context) (domain.Centavos, error)
	SaldoTotal(ctx context.Context) (domain.Centavos, error)
	ListTodos(ctx context.Context) ([]domain.GastoConUsuario, error)
}

type gastoService struct {
	gastos  repository.GastoRepository
	imagens storage.Service
}

func NewGastoService(gastos repository.GastoRepository, imagens storage.Service) GastoService {
	return &gastoService{gastos: gastos, imagens: imagens}
}

func (s *gastoService) Create(ctx context.Context, usuarioID int64, in GastoInput, imagen *ImagenUpload) (*domain.Gasto, error) {
	if err := validateGastoInput(in); err != nil {
		return nil, err
	}

	imagenURL, err := s.storeImagen(ctx, imagen)
	if err != nil {
		return nil, err
	}

	gasto := &domain.Gasto{
		UsuarioID:   usuarioID,
		Monto:       in.Monto,
		Descripcion: in.Descripcion,
		Fecha:       in.Fecha,
	}
	if imagenURL != nil {
		gasto.ImagenURL = *imagenURL
	}

	if _, err := s.gastos.Create(ctx, gasto); err != nil {
		return nil, err
	}
	return gasto, nil
}

func (s *gastoService) List(ctx context.Context, usuarioID int64) ([]domain.Gasto, error) {
	return s.gastos.ListByUsuario(ctx, usuarioID)
}

func (s *gastoService) Update(ctx context.Context, usuarioID, id int64, in GastoInput, imagen *ImagenUpload) (*domain.Gasto, error) {
	if err := validateGastoInput(in); err != nil {
		return nil, err
	}

	imagenURL, err := s.storeImagen(ctx, imagen)
	if err != nil {
		return nil, err
	}

	gasto := &domain.Gasto{
		ID:          id,
		UsuarioID:   usuarioID,
		Monto:       in.Monto,
		Descripcion: in.Descripcion,
		Fecha:       in.Fecha,
	}
	return s.gastos.Update(ctx, gasto, imagenURL)
}

func (s *gastoService) Delete(ctx context.Context, usuarioID, id int64) (*domain.Gasto, error) {
	return s.gastos.Delete(ctx, id, usuarioID)
}

func (s *gastoService) Total(ctx context.Context, usuarioID int64) (domain.Centavos, error) {
	return s.gastos.TotalByUsuario(ctx, usuarioID)
}

func (s *gastoService) TotalGlobal(ctx context.Context) (domain.Centavos, error) {
	return s.gastos.TotalGeneral(ctx)
}

func (s *gastoService) SaldoTotal(ctx context.Context) (domain.Centavos, error) {
	return s.gastos.SaldoTotal(ctx)
}

func (s *gastoService) ListTodos(ctx context.Context) ([]domain.GastoConUsuario, error) {
	return s.gastos.ListAllWithUsuario(ctx)
}

func (s *gastoService) storeImagen(ctx context.Context, imagen *ImagenUpload) (*string, error) {
	if imagen == nil {
		return nil, nil
	}
	if err := validateImagenType(imagen.ContentType); err != nil {
		return nil, err
	}
	url, err := s.imagens.Store(ctx, imagen.Reader, imagen.Size, imagen.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store imagen: %w", err)
	}
	return &url, nil
}

func validateGastoInput(in GastoInput) error {
	if in.Monto < 0 {
		return fmt.Errorf("%w: monto must be non-negative", ErrInvalidInput)
	}
	return validateFecha(in.Fecha)
}
