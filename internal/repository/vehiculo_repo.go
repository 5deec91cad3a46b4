package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehiculoRepository interface {
	Create(ctx context.Context, v *model.Vehiculo) error
	Save(ctx context.Context, v *model.Vehiculo) error
	SaveTx(tx *gorm.DB, v *model.Vehiculo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error)
	FindByPlaca(ctx context.Context, placa string) (*model.Vehiculo, error)
	List(ctx context.Context, clienteID *uuid.UUID) ([]model.Vehiculo, error)
}

type vehiculoRepo struct{ db *gorm.DB }

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository { return &vehiculoRepo{db: db} }

func (r *vehiculoRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *vehiculoRepo) Create(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vehiculoRepo) Save(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Omit("Cliente").Save(v).Error
}

func (r *vehiculoRepo) SaveTx(tx *gorm.DB, v *model.Vehiculo) error {
	return r.or(tx).Omit("Cliente").Save(v).Error
}

func (r *vehiculoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Preload("Cliente").First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehiculoRepo) FindByPlaca(ctx context.Context, placa string) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Preload("Cliente").First(&v, "placa = ?", placa).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehiculoRepo) List(ctx context.Context, clienteID *uuid.UUID) ([]model.Vehiculo, error) {
	q := r.db.WithContext(ctx).Preload("Cliente").Order("placa ASC")
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	var vehiculos []model.Vehiculo
	err := q.Find(&vehiculos).Error
	return vehiculos, err
}
