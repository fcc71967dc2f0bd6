package service

import (
	"context"
	"fmt"
	"io"

	"aportes-api/internal/domain"
	"aportes-api/internal/repository"
	"aportes-api/internal/storage"
)

// ImagenUpload is a receipt image attached to an entry.
type ImagenUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// AporteInput carries the caller-editable fields of a contribution.
// The owner always comes from the authenticated identity, never from here.
type AporteInput struct {
	Monto        domain.Centavos
	NumeroAporte int
	Fecha        string
	Banco        string
}

// AporteService manages contribution entries on behalf of one authenticated user.
type AporteService interface {
	Create(ctx context.Context, usuarioID int64, in AporteInput, imagen *ImagenUpload) (*domain.Aporte, error)
	List(ctx context.Context, usuarioID int64) ([]domain.Aporte, error)
	Update(ctx context.Context, usuarioID, id int64, in AporteInput, imagen *ImagenUpload) (*domain.Aporte, error)
	Delete(ctx context.Context, usuarioID, id int64) (*domain.Aporte, error)
	Total(ctx context.Context, usuarioID int64) (domain.Centavos, error)
	TotalGeneral(ctx context.Context) (domain.Centavos, error)
}

type aporteService struct {
	aportes repository.AporteRepository
	imagens storage.Service
}

func NewAporteService(aportes repository.AporteRepository, imagens storage.Service) AporteService {
	return &aporteService{aportes: aportes, imagens: imagens}
}

func (s *aporteService) Create(ctx context.Context, usuarioID int64, in AporteInput, imagen *ImagenUpload) (*domain.Aporte, error) {
	if err := validateAporteInput(in); err != nil {
		return nil, err
	}

	imagenURL, err := s.storeImagen(ctx, imagen)
	if err != nil {
		return nil, err
	}

	aporte := &domain.Aporte{
		UsuarioID:    usuarioID,
		Monto:        in.Monto,
		NumeroAporte: in.NumeroAporte,
		Fecha:        in.Fecha,
		Banco:        in.Banco,
	}
	if imagenURL != nil {
		aporte.ImagenURL = *imagenURL
	}

	if _, err := s.aportes.Create(ctx, aporte); err != nil {
		return nil, err
	}
	return aporte, nil
}

func (s *aporteService) List(ctx context.Context, usuarioID int64) ([]domain.Aporte, error) {
	return s.aportes.ListByUsuario(ctx, usuarioID)
}

func (s *aporteService) Update(ctx context.Context, usuarioID, id int64, in AporteInput, imagen *ImagenUpload) (*domain.Aporte, error) {
	if err := validateAporteInput(in); err != nil {
		return nil, err
	}

	// nil URL means "keep whatever was stored before".
	imagenURL, err := s.storeImagen(ctx, imagen)
	if err != nil {
		return nil, err
	}

	aporte := &domain.Aporte{
		ID:           id,
		UsuarioID:    usuarioID,
		Monto:        in.Monto,
		NumeroAporte: in.NumeroAporte,
		Fecha:        in.Fecha,
		Banco:        in.Banco,
	}
	return s.aportes.Update(ctx, aporte, imagenURL)
}

func (s *aporteService) Delete(ctx context.Context, usuarioID, id int64) (*domain.Aporte, error) {
	return s.aportes.Delete(ctx, id, usuarioID)
}

func (s *aporteService) Total(ctx context.Context, usuarioID int64) (domain.Centavos, error) {
	return s.aportes.TotalByUsuario(ctx, usuarioID)
}

func (s *aporteService) TotalGeneral(ctx context.Context) (domain.Centavos, error) {
	return s.aportes.TotalGeneral(ctx)
}

func (s *aporteService) storeImagen(ctx context.Context, imagen *ImagenUpload) (*string, error) {
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

func validateAporteInput(in AporteInput) error {
	if in.Monto < 0 {
		return fmt.Errorf("%w: monto must be non-negative", ErrInvalidInput)
	}
	if in.NumeroAporte < 0 {
		return fmt.Errorf("%w: numero_aporte must be non-negative", ErrInvalidInput)
	}
	return validateFecha(in.Fecha)
}
