package service

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*model.Proveedor, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*model.Proveedor, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	Listar(ctx context.Context, soloActivos bool) ([]model.Proveedor, error)
	// Saldo is the outstanding debt with the supplier:
	// (cargos + notas débito) - (pagos + notas crédito).
	Saldo(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	Movimientos(ctx context.Context, id uuid.UUID) ([]model.MovimientoProveedor, error)
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*model.Proveedor, error) {
	p := &model.Proveedor{
		Nombre:    req.Nombre,
		NIT:       req.NIT,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*model.Proveedor, error) {
	p, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.NIT != nil {
		p.NIT = req.NIT
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("proveedor %s no encontrado", id)
	}
	return p, nil
}

func (s *proveedorService) Listar(ctx context.Context, soloActivos bool) ([]model.Proveedor, error) {
	return s.repo.List(ctx, soloActivos)
}

func (s *proveedorService) Saldo(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	if _, err := s.Obtener(ctx, id); err != nil {
		return decimal.Zero, err
	}
	cargos, err := s.repo.SumMovimientos(ctx, id, []string{model.MovProveedorCargo, model.MovProveedorNotaDebito})
	if err != nil {
		return decimal.Zero, err
	}
	abonos, err := s.repo.SumMovimientos(ctx, id, []string{model.MovProveedorPago, model.MovProveedorNotaCredito})
	if err != nil {
		return decimal.Zero, err
	}
	return cargos.Sub(abonos), nil
}

func (s *proveedorService) Movimientos(ctx context.Context, id uuid.UUID) ([]model.MovimientoProveedor, error) {
	if _, err := s.Obtener(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListMovimientos(ctx, id)
}
