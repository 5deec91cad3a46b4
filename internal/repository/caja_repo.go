package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	Save(ctx context.Context, c *model.Caja) error
	SaveTx(tx *gorm.DB, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// FindAbierta returns the single open register, or nil when none exists.
	FindAbierta(ctx context.Context) (*model.Caja, error)
	FindAbiertaTx(tx *gorm.DB) (*model.Caja, error)
	List(ctx context.Context) ([]model.Caja, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, cajaID *uuid.UUID) ([]model.MovimientoCaja, error)
	// MovimientosPorOrdenTx returns every posting tagged to the given order.
	MovimientosPorOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.MovimientoCaja, error)
	// ExisteReversaTx reports whether a posting already reverses movimientoID.
	ExisteReversaTx(tx *gorm.DB, movimientoID uuid.UUID) (bool, error)
	// SumMovimientosTx totals postings of one type for a register.
	SumMovimientosTx(tx *gorm.DB, cajaID uuid.UUID, tipo string) (decimal.Decimal, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

// or returns tx when inside a transaction, the base handle otherwise.
func (r *cajaRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) Save(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) SaveTx(tx *gorm.DB, c *model.Caja) error {
	return r.or(tx).Save(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	return r.findAbierta(r.db.WithContext(ctx))
}

func (r *cajaRepo) FindAbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	return r.findAbierta(r.or(tx))
}

func (r *cajaRepo) findAbierta(db *gorm.DB) (*model.Caja, error) {
	var c model.Caja
	err := db.Where("estado = ?", "abierta").First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) List(ctx context.Context) ([]model.Caja, error) {
	var cajas []model.Caja
	err := r.db.WithContext(ctx).Order("fecha_apertura DESC").Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return r.or(tx).Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, cajaID *uuid.UUID) ([]model.MovimientoCaja, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if cajaID != nil {
		q = q.Where("caja_id = ?", *cajaID)
	}
	var movs []model.MovimientoCaja
	err := q.Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) MovimientosPorOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.or(tx).Where("orden_id = ?", ordenID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) ExisteReversaTx(tx *gorm.DB, movimientoID uuid.UUID) (bool, error) {
	var count int64
	err := r.or(tx).Model(&model.MovimientoCaja{}).
		Where("reversa_de_id = ?", movimientoID).Count(&count).Error
	return count > 0, err
}

func (r *cajaRepo) SumMovimientosTx(tx *gorm.DB, cajaID uuid.UUID, tipo string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.or(tx).Model(&model.MovimientoCaja{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("caja_id = ? AND tipo = ?", cajaID, tipo).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
