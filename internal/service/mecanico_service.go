package service

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
)

type MecanicoService interface {
	Crear(ctx context.Context, req dto.CrearMecanicoRequest) (*model.Mecanico, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMecanicoRequest) (*model.Mecanico, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Mecanico, error)
	Listar(ctx context.Context, soloActivos bool) ([]model.Mecanico, error)
}

type mecanicoService struct {
	repo repository.MecanicoRepository
}

func NewMecanicoService(repo repository.MecanicoRepository) MecanicoService {
	return &mecanicoService{repo: repo}
}

func (s *mecanicoService) Crear(ctx context.Context, req dto.CrearMecanicoRequest) (*model.Mecanico, error) {
	m := &model.Mecanico{
		Nombres:      req.Nombres,
		Apellidos:    req.Apellidos,
		Documento:    req.Documento,
		Telefono:     req.Telefono,
		Email:        req.Email,
		Especialidad: req.Especialidad,
		Activo:       true,
	}
	if req.PorcentajeBase != nil {
		if req.PorcentajeBase.IsNegative() || req.PorcentajeBase.GreaterThan(cien) {
			return nil, apierror.Validation("el porcentaje base debe estar entre 0 y 100")
		}
		m.PorcentajeBase = *req.PorcentajeBase
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *mecanicoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMecanicoRequest) (*model.Mecanico, error) {
	m, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombres != nil {
		m.Nombres = *req.Nombres
	}
	if req.Apellidos != nil {
		m.Apellidos = *req.Apellidos
	}
	if req.Telefono != nil {
		m.Telefono = req.Telefono
	}
	if req.Email != nil {
		m.Email = req.Email
	}
	if req.Especialidad != nil {
		m.Especialidad = req.Especialidad
	}
	if req.PorcentajeBase != nil {
		if req.PorcentajeBase.IsNegative() || req.PorcentajeBase.GreaterThan(cien) {
			return nil, apierror.Validation("el porcentaje base debe estar entre 0 y 100")
		}
		m.PorcentajeBase = *req.PorcentajeBase
	}
	if req.Activo != nil {
		m.Activo = *req.Activo
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *mecanicoService) Obtener(ctx context.Context, id uuid.UUID) (*model.Mecanico, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("mecánico %s no encontrado", id)
	}
	return m, nil
}

func (s *mecanicoService) Listar(ctx context.Context, soloActivos bool) ([]model.Mecanico, error) {
	return s.repo.List(ctx, soloActivos)
}
