package service

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
)

type ServicioService interface {
	Crear(ctx context.Context, req dto.CrearServicioRequest) (*model.Servicio, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (*model.Servicio, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Servicio, error)
	Listar(ctx context.Context, categoriaID *uuid.UUID, soloActivos bool) ([]model.Servicio, error)

	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*model.CategoriaServicio, error)
	ListarCategorias(ctx context.Context) ([]model.CategoriaServicio, error)
}

type servicioService struct {
	repo repository.ServicioRepository
}

func NewServicioService(repo repository.ServicioRepository) ServicioService {
	return &servicioService{repo: repo}
}

func (s *servicioService) Crear(ctx context.Context, req dto.CrearServicioRequest) (*model.Servicio, error) {
	if req.Precio.IsNegative() {
		return nil, apierror.Validation("el precio no puede ser negativo")
	}
	servicio := &model.Servicio{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Activo:      true,
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.Validation("categoria_id inválido")
		}
		if _, err := s.repo.FindCategoria(ctx, cid); err != nil {
			return nil, apierror.NotFound("categoría %s no encontrada", cid)
		}
		servicio.CategoriaID = &cid
	}
	if err := s.repo.Create(ctx, servicio); err != nil {
		return nil, err
	}
	return servicio, nil
}

func (s *servicioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioRequest) (*model.Servicio, error) {
	servicio, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		servicio.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		servicio.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Validation("el precio no puede ser negativo")
		}
		servicio.Precio = *req.Precio
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.Validation("categoria_id inválido")
		}
		if _, err := s.repo.FindCategoria(ctx, cid); err != nil {
			return nil, apierror.NotFound("categoría %s no encontrada", cid)
		}
		servicio.CategoriaID = &cid
	}
	if req.Activo != nil {
		servicio.Activo = *req.Activo
	}
	if err := s.repo.Save(ctx, servicio); err != nil {
		return nil, err
	}
	return servicio, nil
}

func (s *servicioService) Obtener(ctx context.Context, id uuid.UUID) (*model.Servicio, error) {
	servicio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("servicio %s no encontrado", id)
	}
	return servicio, nil
}

func (s *servicioService) Listar(ctx context.Context, categoriaID *uuid.UUID, soloActivos bool) ([]model.Servicio, error) {
	return s.repo.List(ctx, categoriaID, soloActivos)
}

func (s *servicioService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*model.CategoriaServicio, error) {
	categoria := &model.CategoriaServicio{Nombre: req.Nombre, Activo: true}
	if err := s.repo.CreateCategoria(ctx, categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

func (s *servicioService) ListarCategorias(ctx context.Context) ([]model.CategoriaServicio, error) {
	return s.repo.ListCategorias(ctx)
}
