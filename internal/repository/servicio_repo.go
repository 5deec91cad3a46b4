package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServicioRepository interface {
	Create(ctx context.Context, s *model.Servicio) error
	Save(ctx context.Context, s *model.Servicio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Servicio, error)
	List(ctx context.Context, categoriaID *uuid.UUID, soloActivos bool) ([]model.Servicio, error)

	CreateCategoria(ctx context.Context, c *model.CategoriaServicio) error
	SaveCategoria(ctx context.Context, c *model.CategoriaServicio) error
	FindCategoria(ctx context.Context, id uuid.UUID) (*model.CategoriaServicio, error)
	ListCategorias(ctx context.Context) ([]model.CategoriaServicio, error)
}

type servicioRepo struct{ db *gorm.DB }

func NewServicioRepository(db *gorm.DB) ServicioRepository { return &servicioRepo{db: db} }

func (r *servicioRepo) Create(ctx context.Context, s *model.Servicio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *servicioRepo) Save(ctx context.Context, s *model.Servicio) error {
	return r.db.WithContext(ctx).Omit("Categoria").Save(s).Error
}

func (r *servicioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Servicio, error) {
	var s model.Servicio
	err := r.db.WithContext(ctx).Preload("Categoria").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *servicioRepo) List(ctx context.Context, categoriaID *uuid.UUID, soloActivos bool) ([]model.Servicio, error) {
	q := r.db.WithContext(ctx).Preload("Categoria").Order("nombre ASC")
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var servicios []model.Servicio
	err := q.Find(&servicios).Error
	return servicios, err
}

func (r *servicioRepo) CreateCategoria(ctx context.Context, c *model.CategoriaServicio) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *servicioRepo) SaveCategoria(ctx context.Context, c *model.CategoriaServicio) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *servicioRepo) FindCategoria(ctx context.Context, id uuid.UUID) (*model.CategoriaServicio, error) {
	var c model.CategoriaServicio
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *servicioRepo) ListCategorias(ctx context.Context) ([]model.CategoriaServicio, error) {
	var cats []model.CategoriaServicio
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&cats).Error
	return cats, err
}
