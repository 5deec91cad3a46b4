package service

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	Listar(ctx context.Context, buscar string) ([]model.Cliente, error)
	Vehiculos(ctx context.Context, id uuid.UUID) ([]model.Vehiculo, error)
}

type clienteService struct {
	repo      repository.ClienteRepository
	vehiculos repository.VehiculoRepository
}

func NewClienteService(repo repository.ClienteRepository, vehiculos repository.VehiculoRepository) ClienteService {
	return &clienteService{repo: repo, vehiculos: vehiculos}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	c := &model.Cliente{
		Nombre:    req.Nombre,
		Documento: req.Documento,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error) {
	c, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cliente %s no encontrado", id)
	}
	return c, nil
}

func (s *clienteService) Listar(ctx context.Context, buscar string) ([]model.Cliente, error) {
	return s.repo.List(ctx, buscar)
}

func (s *clienteService) Vehiculos(ctx context.Context, id uuid.UUID) ([]model.Vehiculo, error) {
	if _, err := s.Obtener(ctx, id); err != nil {
		return nil, err
	}
	return s.vehiculos.List(ctx, &id)
}
