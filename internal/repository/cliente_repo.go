package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	Save(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, buscar string) ([]model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) Save(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, buscar string) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if buscar != "" {
		like := "%" + buscar + "%"
		q = q.Where("nombre ILIKE ? OR telefono ILIKE ? OR documento ILIKE ?", like, like, like)
	}
	var clientes []model.Cliente
	err := q.Find(&clientes).Error
	return clientes, err
}
