package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HerramientaRepository interface {
	Create(ctx context.Context, h *model.Herramienta) error
	Save(ctx context.Context, h *model.Herramienta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Herramienta, error)
	List(ctx context.Context) ([]model.Herramienta, error)

	CreatePrestamo(ctx context.Context, p *model.PrestamoHerramienta) error
	SavePrestamo(ctx context.Context, p *model.PrestamoHerramienta) error
	FindPrestamo(ctx context.Context, id uuid.UUID) (*model.PrestamoHerramienta, error)
	// FindPrestamoAbierto returns nil when the tool is not currently lent out.
	FindPrestamoAbierto(ctx context.Context, herramientaID uuid.UUID) (*model.PrestamoHerramienta, error)
	ListPrestamos(ctx context.Context, herramientaID *uuid.UUID) ([]model.PrestamoHerramienta, error)
}

type herramientaRepo struct{ db *gorm.DB }

func NewHerramientaRepository(db *gorm.DB) HerramientaRepository { return &herramientaRepo{db: db} }

func (r *herramientaRepo) Create(ctx context.Context, h *model.Herramienta) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *herramientaRepo) Save(ctx context.Context, h *model.Herramienta) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *herramientaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Herramienta, error) {
	var h model.Herramienta
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *herramientaRepo) List(ctx context.Context) ([]model.Herramienta, error) {
	var herramientas []model.Herramienta
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&herramientas).Error
	return herramientas, err
}

func (r *herramientaRepo) CreatePrestamo(ctx context.Context, p *model.PrestamoHerramienta) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *herramientaRepo) SavePrestamo(ctx context.Context, p *model.PrestamoHerramienta) error {
	return r.db.WithContext(ctx).Omit("Herramienta", "Mecanico").Save(p).Error
}

func (r *herramientaRepo) FindPrestamo(ctx context.Context, id uuid.UUID) (*model.PrestamoHerramienta, error) {
	var p model.PrestamoHerramienta
	err := r.db.WithContext(ctx).Preload("Herramienta").Preload("Mecanico").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *herramientaRepo) FindPrestamoAbierto(ctx context.Context, herramientaID uuid.UUID) (*model.PrestamoHerramienta, error) {
	var p model.PrestamoHerramienta
	err := r.db.WithContext(ctx).
		Where("herramienta_id = ? AND fecha_devolucion IS NULL", herramientaID).
		First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *herramientaRepo) ListPrestamos(ctx context.Context, herramientaID *uuid.UUID) ([]model.PrestamoHerramienta, error) {
	q := r.db.WithContext(ctx).Preload("Herramienta").Preload("Mecanico").Order("fecha_prestamo DESC")
	if herramientaID != nil {
		q = q.Where("herramienta_id = ?", *herramientaID)
	}
	var prestamos []model.PrestamoHerramienta
	err := q.Find(&prestamos).Error
	return prestamos, err
}
