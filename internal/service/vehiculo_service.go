package service

import (
	"context"
	"strings"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type VehiculoService interface {
	Crear(ctx context.Context, req dto.CrearVehiculoRequest) (*model.Vehiculo, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVehiculoRequest) (*model.Vehiculo, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error)
	Listar(ctx context.Context, clienteID *uuid.UUID) ([]model.Vehiculo, error)
	// ActualizarKm moves the odometer forward. Readings lower than the
	// current one are rejected.
	ActualizarKm(ctx context.Context, id uuid.UUID, req dto.ActualizarKmRequest) (*model.Vehiculo, error)
}

type vehiculoService struct {
	repo     repository.VehiculoRepository
	clientes repository.ClienteRepository
}

func NewVehiculoService(repo repository.VehiculoRepository, clientes repository.ClienteRepository) VehiculoService {
	return &vehiculoService{repo: repo, clientes: clientes}
}

func (s *vehiculoService) Crear(ctx context.Context, req dto.CrearVehiculoRequest) (*model.Vehiculo, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("cliente %s no encontrado", clienteID)
	}

	placa := strings.ToUpper(strings.TrimSpace(req.Placa))
	if existente, err := s.repo.FindByPlaca(ctx, placa); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, apierror.Conflict("ya existe un vehículo con placa %s", placa)
	}

	v := &model.Vehiculo{
		Placa:      placa,
		Marca:      req.Marca,
		Modelo:     req.Modelo,
		Color:      req.Color,
		Anio:       req.Anio,
		Cilindraje: req.Cilindraje,
		Clase:      req.Clase,
		KmActual:   req.KmActual,
		ClienteID:  clienteID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vehiculoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVehiculoRequest) (*model.Vehiculo, error) {
	v, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Marca != nil {
		v.Marca = *req.Marca
	}
	if req.Modelo != nil {
		v.Modelo = *req.Modelo
	}
	if req.Color != nil {
		v.Color = req.Color
	}
	if req.Anio != nil {
		v.Anio = req.Anio
	}
	if req.Cilindraje != nil {
		v.Cilindraje = req.Cilindraje
	}
	if req.Clase != nil {
		v.Clase = req.Clase
	}
	if req.ClienteID != nil {
		clienteID, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validation("cliente_id inválido")
		}
		if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
			return nil, apierror.NotFound("cliente %s no encontrado", clienteID)
		}
		v.ClienteID = clienteID
	}
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vehiculoService) Obtener(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("vehículo %s no encontrado", id)
	}
	return v, nil
}

func (s *vehiculoService) Listar(ctx context.Context, clienteID *uuid.UUID) ([]model.Vehiculo, error) {
	return s.repo.List(ctx, clienteID)
}

func (s *vehiculoService) ActualizarKm(ctx context.Context, id uuid.UUID, req dto.ActualizarKmRequest) (*model.Vehiculo, error) {
	v, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.KmActual != nil && req.KmActual < *v.KmActual {
		return nil, apierror.Validation("el kilometraje no puede retroceder: actual %d, recibido %d", *v.KmActual, req.KmActual)
	}
	v.KmActual = &req.KmActual
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	log.Debug().Str("placa", v.Placa).Int("km", req.KmActual).Msg("odómetro actualizado")
	return v, nil
}
