package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MecanicoRepository interface {
	Create(ctx context.Context, m *model.Mecanico) error
	Save(ctx context.Context, m *model.Mecanico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mecanico, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Mecanico, error)
	List(ctx context.Context, soloActivos bool) ([]model.Mecanico, error)
}

type mecanicoRepo struct{ db *gorm.DB }

func NewMecanicoRepository(db *gorm.DB) MecanicoRepository { return &mecanicoRepo{db: db} }

func (r *mecanicoRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *mecanicoRepo) Create(ctx context.Context, m *model.Mecanico) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mecanicoRepo) Save(ctx context.Context, m *model.Mecanico) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mecanicoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mecanico, error) {
	var m model.Mecanico
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mecanicoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Mecanico, error) {
	var m model.Mecanico
	err := r.or(tx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mecanicoRepo) List(ctx context.Context, soloActivos bool) ([]model.Mecanico, error) {
	q := r.db.WithContext(ctx).Order("nombres ASC")
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var mecs []model.Mecanico
	err := q.Find(&mecs).Error
	return mecs, err
}
