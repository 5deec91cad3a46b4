package repository

import (
	"context"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LiquidacionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Liquidacion, error)
	List(ctx context.Context, mecanicoID *uuid.UUID) ([]model.Liquidacion, error)
	Save(ctx context.Context, l *model.Liquidacion) error
	SaveTx(tx *gorm.DB, l *model.Liquidacion) error
	CreateTx(tx *gorm.DB, l *model.Liquidacion) error
	// FindPendienteTx looks up the pending settlement for an exact
	// (mecanico, period) pair; nil when none exists.
	FindPendienteTx(tx *gorm.DB, mecanicoID uuid.UUID, inicio, fin time.Time) (*model.Liquidacion, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Liquidacion, error)

	ListDetalles(ctx context.Context, liquidacionID uuid.UUID) ([]model.LiquidacionDetalle, error)
	FindDetalleTx(tx *gorm.DB, liquidacionID, ordenID uuid.UUID) (*model.LiquidacionDetalle, error)
	CreateDetalleTx(tx *gorm.DB, d *model.LiquidacionDetalle) error
	SaveDetalleTx(tx *gorm.DB, d *model.LiquidacionDetalle) error
	// DetallesPorOrdenTx returns every detail row referencing the order,
	// regardless of settlement state.
	DetallesPorOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.LiquidacionDetalle, error)
	DeleteDetallesTx(tx *gorm.DB, ordenID uuid.UUID, liquidacionIDs []uuid.UUID) error
	// SumDetallesTx totals base_calculo and monto over one settlement's rows.
	SumDetallesTx(tx *gorm.DB, liquidacionID uuid.UUID) (base, monto decimal.Decimal, err error)

	DB() *gorm.DB
}

type liquidacionRepo struct{ db *gorm.DB }

func NewLiquidacionRepository(db *gorm.DB) LiquidacionRepository { return &liquidacionRepo{db: db} }

func (r *liquidacionRepo) DB() *gorm.DB { return r.db }

func (r *liquidacionRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *liquidacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Liquidacion, error) {
	var l model.Liquidacion
	err := r.db.WithContext(ctx).Preload("Mecanico").Preload("Detalles").First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *liquidacionRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Liquidacion, error) {
	var l model.Liquidacion
	err := r.or(tx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *liquidacionRepo) List(ctx context.Context, mecanicoID *uuid.UUID) ([]model.Liquidacion, error) {
	q := r.db.WithContext(ctx).Preload("Mecanico").Order("created_at DESC")
	if mecanicoID != nil {
		q = q.Where("mecanico_id = ?", *mecanicoID)
	}
	var liqs []model.Liquidacion
	err := q.Find(&liqs).Error
	return liqs, err
}

func (r *liquidacionRepo) Save(ctx context.Context, l *model.Liquidacion) error {
	return r.db.WithContext(ctx).Omit("Mecanico", "Detalles").Save(l).Error
}

func (r *liquidacionRepo) SaveTx(tx *gorm.DB, l *model.Liquidacion) error {
	return r.or(tx).Omit("Mecanico", "Detalles").Save(l).Error
}

func (r *liquidacionRepo) CreateTx(tx *gorm.DB, l *model.Liquidacion) error {
	return r.or(tx).Create(l).Error
}

func (r *liquidacionRepo) FindPendienteTx(tx *gorm.DB, mecanicoID uuid.UUID, inicio, fin time.Time) (*model.Liquidacion, error) {
	var l model.Liquidacion
	err := r.or(tx).
		Where("mecanico_id = ? AND fecha_inicio = ? AND fecha_fin = ? AND estado = ?",
			mecanicoID, inicio, fin, model.LiquidacionPendiente).
		First(&l).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *liquidacionRepo) ListDetalles(ctx context.Context, liquidacionID uuid.UUID) ([]model.LiquidacionDetalle, error) {
	var detalles []model.LiquidacionDetalle
	err := r.db.WithContext(ctx).
		Where("liquidacion_id = ?", liquidacionID).
		Order("created_at ASC").Find(&detalles).Error
	return detalles, err
}

func (r *liquidacionRepo) FindDetalleTx(tx *gorm.DB, liquidacionID, ordenID uuid.UUID) (*model.LiquidacionDetalle, error) {
	var d model.LiquidacionDetalle
	err := r.or(tx).
		Where("liquidacion_id = ? AND orden_id = ?", liquidacionID, ordenID).
		First(&d).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *liquidacionRepo) CreateDetalleTx(tx *gorm.DB, d *model.LiquidacionDetalle) error {
	return r.or(tx).Create(d).Error
}

func (r *liquidacionRepo) SaveDetalleTx(tx *gorm.DB, d *model.LiquidacionDetalle) error {
	return r.or(tx).Save(d).Error
}

func (r *liquidacionRepo) DetallesPorOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.LiquidacionDetalle, error) {
	var detalles []model.LiquidacionDetalle
	err := r.or(tx).Where("orden_id = ?", ordenID).Find(&detalles).Error
	return detalles, err
}

func (r *liquidacionRepo) DeleteDetallesTx(tx *gorm.DB, ordenID uuid.UUID, liquidacionIDs []uuid.UUID) error {
	if len(liquidacionIDs) == 0 {
		return nil
	}
	return r.or(tx).
		Where("orden_id = ? AND liquidacion_id IN ?", ordenID, liquidacionIDs).
		Delete(&model.LiquidacionDetalle{}).Error
}

func (r *liquidacionRepo) SumDetallesTx(tx *gorm.DB, liquidacionID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Base  decimal.NullDecimal
		Monto decimal.NullDecimal
	}
	err := r.or(tx).Model(&model.LiquidacionDetalle{}).
		Select("COALESCE(SUM(base_calculo),0) AS base, COALESCE(SUM(monto),0) AS monto").
		Where("liquidacion_id = ?", liquidacionID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	base, monto := decimal.Zero, decimal.Zero
	if row.Base.Valid {
		base = row.Base.Decimal
	}
	if row.Monto.Valid {
		monto = row.Monto.Decimal
	}
	return base, monto, nil
}
