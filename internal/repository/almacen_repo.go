package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlmacenRepository interface {
	Create(ctx context.Context, item *model.AlmacenItem) error
	Save(ctx context.Context, item *model.AlmacenItem) error
	SaveTx(tx *gorm.DB, item *model.AlmacenItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AlmacenItem, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.AlmacenItem, error)
	List(ctx context.Context, soloActivos bool) ([]model.AlmacenItem, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoAlmacen) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoAlmacen) error
	ListMovimientos(ctx context.Context, itemID uuid.UUID) ([]model.MovimientoAlmacen, error)

	DB() *gorm.DB
}

type almacenRepo struct{ db *gorm.DB }

func NewAlmacenRepository(db *gorm.DB) AlmacenRepository { return &almacenRepo{db: db} }

func (r *almacenRepo) DB() *gorm.DB { return r.db }

func (r *almacenRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *almacenRepo) Create(ctx context.Context, item *model.AlmacenItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *almacenRepo) Save(ctx context.Context, item *model.AlmacenItem) error {
	return r.db.WithContext(ctx).Omit("Proveedor").Save(item).Error
}

func (r *almacenRepo) SaveTx(tx *gorm.DB, item *model.AlmacenItem) error {
	return r.or(tx).Omit("Proveedor").Save(item).Error
}

func (r *almacenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AlmacenItem, error) {
	var item model.AlmacenItem
	err := r.db.WithContext(ctx).Preload("Proveedor").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *almacenRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.AlmacenItem, error) {
	var item model.AlmacenItem
	err := r.or(tx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *almacenRepo) List(ctx context.Context, soloActivos bool) ([]model.AlmacenItem, error) {
	q := r.db.WithContext(ctx).Preload("Proveedor").Order("nombre ASC")
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var items []model.AlmacenItem
	err := q.Find(&items).Error
	return items, err
}

func (r *almacenRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoAlmacen) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *almacenRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoAlmacen) error {
	return r.or(tx).Create(m).Error
}

func (r *almacenRepo) ListMovimientos(ctx context.Context, itemID uuid.UUID) ([]model.MovimientoAlmacen, error) {
	var movs []model.MovimientoAlmacen
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}
