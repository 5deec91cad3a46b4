package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	Save(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context, soloActivos bool) ([]model.Proveedor, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoProveedor) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoProveedor) error
	ListMovimientos(ctx context.Context, proveedorID uuid.UUID) ([]model.MovimientoProveedor, error)
	// SumMovimientos totals subtotal over the given movement types.
	SumMovimientos(ctx context.Context, proveedorID uuid.UUID, tipos []string) (decimal.Decimal, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) Save(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) List(ctx context.Context, soloActivos bool) ([]model.Proveedor, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var provs []model.Proveedor
	err := q.Find(&provs).Error
	return provs, err
}

func (r *proveedorRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoProveedor) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *proveedorRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoProveedor) error {
	return r.or(tx).Create(m).Error
}

func (r *proveedorRepo) ListMovimientos(ctx context.Context, proveedorID uuid.UUID) ([]model.MovimientoProveedor, error) {
	var movs []model.MovimientoProveedor
	err := r.db.WithContext(ctx).
		Where("proveedor_id = ?", proveedorID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func (r *proveedorRepo) SumMovimientos(ctx context.Context, proveedorID uuid.UUID, tipos []string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.MovimientoProveedor{}).
		Select("COALESCE(SUM(subtotal),0)").
		Where("proveedor_id = ? AND tipo IN ?", proveedorID, tipos).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
