package service

import (
	"context"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
)

type HerramientaService interface {
	Crear(ctx context.Context, req dto.CrearHerramientaRequest) (*model.Herramienta, error)
	Listar(ctx context.Context) ([]model.Herramienta, error)
	// Prestar lends a tool to a mechanic; a tool can only be lent once at a
	// time.
	Prestar(ctx context.Context, herramientaID uuid.UUID, req dto.PrestarHerramientaRequest) (*model.PrestamoHerramienta, error)
	Devolver(ctx context.Context, herramientaID uuid.UUID) (*model.PrestamoHerramienta, error)
	Prestamos(ctx context.Context, herramientaID *uuid.UUID) ([]model.PrestamoHerramienta, error)
}

type herramientaService struct {
	repo      repository.HerramientaRepository
	mecanicos repository.MecanicoRepository
}

func NewHerramientaService(repo repository.HerramientaRepository, mecanicos repository.MecanicoRepository) HerramientaService {
	return &herramientaService{repo: repo, mecanicos: mecanicos}
}

func (s *herramientaService) Crear(ctx context.Context, req dto.CrearHerramientaRequest) (*model.Herramienta, error) {
	h := &model.Herramienta{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Estado:      "disponible",
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *herramientaService) Listar(ctx context.Context) ([]model.Herramienta, error) {
	return s.repo.List(ctx)
}

func (s *herramientaService) Prestar(ctx context.Context, herramientaID uuid.UUID, req dto.PrestarHerramientaRequest) (*model.PrestamoHerramienta, error) {
	h, err := s.repo.FindByID(ctx, herramientaID)
	if err != nil {
		return nil, apierror.NotFound("herramienta %s no encontrada", herramientaID)
	}
	if h.Estado != "disponible" {
		return nil, apierror.Precondition("la herramienta %s no está disponible", h.Nombre)
	}
	mecanicoID, err := uuid.Parse(req.MecanicoID)
	if err != nil {
		return nil, apierror.Validation("mecanico_id inválido")
	}
	if _, err := s.mecanicos.FindByID(ctx, mecanicoID); err != nil {
		return nil, apierror.NotFound("mecánico %s no encontrado", mecanicoID)
	}

	prestamo := &model.PrestamoHerramienta{
		HerramientaID: herramientaID,
		MecanicoID:    mecanicoID,
		Estado:        "prestada",
		FechaPrestamo: time.Now(),
		Observaciones: req.Observaciones,
	}
	if err := s.repo.CreatePrestamo(ctx, prestamo); err != nil {
		return nil, err
	}
	h.Estado = "prestada"
	if err := s.repo.Save(ctx, h); err != nil {
		return nil, err
	}
	return prestamo, nil
}

func (s *herramientaService) Devolver(ctx context.Context, herramientaID uuid.UUID) (*model.PrestamoHerramienta, error) {
	h, err := s.repo.FindByID(ctx, herramientaID)
	if err != nil {
		return nil, apierror.NotFound("herramienta %s no encontrada", herramientaID)
	}
	prestamo, err := s.repo.FindPrestamoAbierto(ctx, herramientaID)
	if err != nil {
		return nil, err
	}
	if prestamo == nil {
		return nil, apierror.Precondition("la herramienta %s no está prestada", h.Nombre)
	}
	now := time.Now()
	prestamo.Estado = "devuelta"
	prestamo.FechaDevolucion = &now
	if err := s.repo.SavePrestamo(ctx, prestamo); err != nil {
		return nil, err
	}
	h.Estado = "disponible"
	if err := s.repo.Save(ctx, h); err != nil {
		return nil, err
	}
	return prestamo, nil
}

func (s *herramientaService) Prestamos(ctx context.Context, herramientaID *uuid.UUID) ([]model.PrestamoHerramienta, error) {
	return s.repo.ListPrestamos(ctx, herramientaID)
}
