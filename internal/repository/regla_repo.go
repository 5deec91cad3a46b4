package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReglaRepository interface {
	Create(ctx context.Context, regla *model.ReglaMantenimiento) error
	Save(ctx context.Context, regla *model.ReglaMantenimiento) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReglaMantenimiento, error)
	List(ctx context.Context, soloActivas bool) ([]model.ReglaMantenimiento, error)

	// FindBase returns nil when the vehicle has no baseline for the rule yet.
	FindBase(ctx context.Context, vehiculoID, reglaID uuid.UUID) (*model.VehiculoReglaBase, error)
	CreateBase(ctx context.Context, base *model.VehiculoReglaBase) error
	SaveBase(ctx context.Context, base *model.VehiculoReglaBase) error
	ListBases(ctx context.Context, vehiculoID uuid.UUID) ([]model.VehiculoReglaBase, error)
	DeleteBasesPorRegla(ctx context.Context, reglaID uuid.UUID) error
}

type reglaRepo struct{ db *gorm.DB }

func NewReglaRepository(db *gorm.DB) ReglaRepository { return &reglaRepo{db: db} }

func (r *reglaRepo) Create(ctx context.Context, regla *model.ReglaMantenimiento) error {
	return r.db.WithContext(ctx).Create(regla).Error
}

func (r *reglaRepo) Save(ctx context.Context, regla *model.ReglaMantenimiento) error {
	return r.db.WithContext(ctx).Save(regla).Error
}

func (r *reglaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("regla_id = ?", id).Delete(&model.VehiculoReglaBase{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ReglaMantenimiento{}, "id = ?", id).Error
	})
}

func (r *reglaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ReglaMantenimiento, error) {
	var regla model.ReglaMantenimiento
	err := r.db.WithContext(ctx).First(&regla, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &regla, nil
}

func (r *reglaRepo) List(ctx context.Context, soloActivas bool) ([]model.ReglaMantenimiento, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if soloActivas {
		q = q.Where("activo = ?", true)
	}
	var reglas []model.ReglaMantenimiento
	err := q.Find(&reglas).Error
	return reglas, err
}

func (r *reglaRepo) FindBase(ctx context.Context, vehiculoID, reglaID uuid.UUID) (*model.VehiculoReglaBase, error) {
	var base model.VehiculoReglaBase
	err := r.db.WithContext(ctx).
		Where("vehiculo_id = ? AND regla_id = ?", vehiculoID, reglaID).
		First(&base).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &base, nil
}

func (r *reglaRepo) CreateBase(ctx context.Context, base *model.VehiculoReglaBase) error {
	return r.db.WithContext(ctx).Create(base).Error
}

func (r *reglaRepo) SaveBase(ctx context.Context, base *model.VehiculoReglaBase) error {
	return r.db.WithContext(ctx).Save(base).Error
}

func (r *reglaRepo) ListBases(ctx context.Context, vehiculoID uuid.UUID) ([]model.VehiculoReglaBase, error) {
	var bases []model.VehiculoReglaBase
	err := r.db.WithContext(ctx).Where("vehiculo_id = ?", vehiculoID).Find(&bases).Error
	return bases, err
}

func (r *reglaRepo) DeleteBasesPorRegla(ctx context.Context, reglaID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("regla_id = ?", reglaID).Delete(&model.VehiculoReglaBase{}).Error
}
