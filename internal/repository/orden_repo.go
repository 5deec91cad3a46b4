package repository

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrdenFilter narrows order listings.
type OrdenFilter struct {
	Estado     string
	ClienteID  *uuid.UUID
	VehiculoID *uuid.UUID
}

type OrdenRepository interface {
	Create(ctx context.Context, o *model.OrdenTrabajo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenTrabajo, error)
	Save(ctx context.Context, o *model.OrdenTrabajo) error
	SaveTx(tx *gorm.DB, o *model.OrdenTrabajo) error
	Delete(ctx context.Context, o *model.OrdenTrabajo) error
	List(ctx context.Context, filter OrdenFilter) ([]model.OrdenTrabajo, error)
	NextNumero(ctx context.Context) (int, error)

	// Service lines
	CreateDetalleServicio(ctx context.Context, d *model.DetalleOrden) error
	FindDetalleServicio(ctx context.Context, id uuid.UUID) (*model.DetalleOrden, error)
	SaveDetalleServicio(ctx context.Context, d *model.DetalleOrden) error
	DeleteDetalleServicio(ctx context.Context, d *model.DetalleOrden) error
	ListDetalleServicios(ctx context.Context, ordenID uuid.UUID) ([]model.DetalleOrden, error)
	SumSubtotalServiciosTx(tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error)

	// Consumption lines
	CreateDetalleInsumo(ctx context.Context, d *model.DetalleAlmacen) error
	CreateDetalleInsumoTx(tx *gorm.DB, d *model.DetalleAlmacen) error
	DeleteDetalleInsumoTx(tx *gorm.DB, d *model.DetalleAlmacen) error
	FindDetalleInsumo(ctx context.Context, id uuid.UUID) (*model.DetalleAlmacen, error)
	SaveDetalleInsumo(ctx context.Context, d *model.DetalleAlmacen) error
	DeleteDetalleInsumo(ctx context.Context, d *model.DetalleAlmacen) error
	ListDetalleInsumos(ctx context.Context, ordenID uuid.UUID) ([]model.DetalleAlmacen, error)
	SumSubtotalInsumosTx(tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error)
	SumSubtotalProveedorTx(tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error)
	// ProveedoresDeOrdenTx returns the distinct supplier names involved in the
	// order's consumption lines.
	ProveedoresDeOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]string, error)

	// Mechanic assignments
	CreateAsignacion(ctx context.Context, a *model.OrdenMecanico) error
	FindAsignacion(ctx context.Context, ordenID, mecanicoID uuid.UUID) (*model.OrdenMecanico, error)
	DeleteAsignacion(ctx context.Context, a *model.OrdenMecanico) error
	ListAsignacionesTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.OrdenMecanico, error)
	SaveAsignacionTx(tx *gorm.DB, a *model.OrdenMecanico) error
	ZeroMontosAsignacionesTx(tx *gorm.DB, ordenID uuid.UUID) error

	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func (r *ordenRepo) or(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ordenRepo) Create(ctx context.Context, o *model.OrdenTrabajo) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *ordenRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenTrabajo, error) {
	return r.findByID(r.or(tx), id)
}

func (r *ordenRepo) findByID(db *gorm.DB, id uuid.UUID) (*model.OrdenTrabajo, error) {
	var o model.OrdenTrabajo
	err := db.
		Preload("Cliente").
		Preload("Vehiculo").
		Preload("Servicios.Servicio").
		Preload("Insumos.Item").
		Preload("Asignaciones.Mecanico").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) Save(ctx context.Context, o *model.OrdenTrabajo) error {
	return r.db.WithContext(ctx).Omit("Servicios", "Insumos", "Asignaciones").Save(o).Error
}

func (r *ordenRepo) SaveTx(tx *gorm.DB, o *model.OrdenTrabajo) error {
	return r.or(tx).Omit("Servicios", "Insumos", "Asignaciones").Save(o).Error
}

func (r *ordenRepo) Delete(ctx context.Context, o *model.OrdenTrabajo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("orden_id = ?", o.ID).Delete(&model.DetalleOrden{}).Error; err != nil {
			return err
		}
		if err := tx.Where("orden_id = ?", o.ID).Delete(&model.DetalleAlmacen{}).Error; err != nil {
			return err
		}
		if err := tx.Where("orden_id = ?", o.ID).Delete(&model.OrdenMecanico{}).Error; err != nil {
			return err
		}
		return tx.Delete(o).Error
	})
}

func (r *ordenRepo) List(ctx context.Context, filter OrdenFilter) ([]model.OrdenTrabajo, error) {
	q := r.db.WithContext(ctx).Preload("Cliente").Preload("Vehiculo").Order("numero DESC")
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != nil {
		q = q.Where("cliente_id = ?", *filter.ClienteID)
	}
	if filter.VehiculoID != nil {
		q = q.Where("vehiculo_id = ?", *filter.VehiculoID)
	}
	var ordenes []model.OrdenTrabajo
	err := q.Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) NextNumero(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.OrdenTrabajo{}).
		Select("MAX(numero)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// ── Service lines ────────────────────────────────────────────────────────────

func (r *ordenRepo) CreateDetalleServicio(ctx context.Context, d *model.DetalleOrden) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ordenRepo) FindDetalleServicio(ctx context.Context, id uuid.UUID) (*model.DetalleOrden, error) {
	var d model.DetalleOrden
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ordenRepo) SaveDetalleServicio(ctx context.Context, d *model.DetalleOrden) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *ordenRepo) DeleteDetalleServicio(ctx context.Context, d *model.DetalleOrden) error {
	return r.db.WithContext(ctx).Delete(d).Error
}

func (r *ordenRepo) ListDetalleServicios(ctx context.Context, ordenID uuid.UUID) ([]model.DetalleOrden, error) {
	var detalles []model.DetalleOrden
	err := r.db.WithContext(ctx).Preload("Servicio").
		Where("orden_id = ?", ordenID).Find(&detalles).Error
	return detalles, err
}

func (r *ordenRepo) SumSubtotalServiciosTx(tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(r.or(tx), &model.DetalleOrden{}, "subtotal", ordenID)
}

// ── Consumption lines ────────────────────────────────────────────────────────

func (r *ordenRepo) CreateDetalleInsumo(ctx context.Context, d *model.DetalleAlmacen) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ordenRepo) CreateDetalleInsumoTx(tx *gorm.DB, d *model.DetalleAlmacen) error {
	return r.or(tx).Create(d).Error
}

func (r *ordenRepo) DeleteDetalleInsumoTx(tx *gorm.DB, d *model.DetalleAlmacen) error {
	return r.or(tx).Delete(d).Error
}

func (r *ordenRepo) FindDetalleInsumo(ctx context.Context, id uuid.UUID) (*model.DetalleAlmacen, error) {
	var d model.DetalleAlmacen
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ordenRepo) SaveDetalleInsumo(ctx context.Context, d *model.DetalleAlmacen) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *ordenRepo) DeleteDetalleInsumo(ctx context.Context, d *model.DetalleAlmacen) error {
	return r.db.WithContext(ctx).Delete(d).Error
}

func (r *ordenRepo) ListDetalleInsumos(ctx context.Context, ordenID uuid.UUID) ([]model.DetalleAlmacen, error) {
	var detalles []model.DetalleAlmacen
	err := r.db.WithContext(ctx).Preload("Item").
		Where("orden_id = ?", ordenID).Find(&detalles).Error
	return detalles, err
}

func (r *ordenRepo) SumSubtotalInsumosTx(tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(r.or(tx), &model.DetalleAlmacen{}, "subtotal", ordenID)
}

func (r *ordenRepo) SumSubtotalProveedorTx(tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(r.or(tx), &model.DetalleAlmacen{}, "subtotal_proveedor", ordenID)
}

func (r *ordenRepo) ProveedoresDeOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]string, error) {
	var nombres []string
	err := r.or(tx).Model(&model.DetalleAlmacen{}).
		Joins("JOIN proveedores ON proveedores.id = detalle_almacen.proveedor_id").
		Where("detalle_almacen.orden_id = ?", ordenID).
		Distinct().Pluck("proveedores.nombre", &nombres).Error
	return nombres, err
}

// ── Mechanic assignments ─────────────────────────────────────────────────────

func (r *ordenRepo) CreateAsignacion(ctx context.Context, a *model.OrdenMecanico) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ordenRepo) FindAsignacion(ctx context.Context, ordenID, mecanicoID uuid.UUID) (*model.OrdenMecanico, error) {
	var a model.OrdenMecanico
	err := r.db.WithContext(ctx).
		Where("orden_id = ? AND mecanico_id = ?", ordenID, mecanicoID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ordenRepo) DeleteAsignacion(ctx context.Context, a *model.OrdenMecanico) error {
	return r.db.WithContext(ctx).Delete(a).Error
}

func (r *ordenRepo) ListAsignacionesTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.OrdenMecanico, error) {
	var asignaciones []model.OrdenMecanico
	err := r.or(tx).Preload("Mecanico").
		Where("orden_id = ?", ordenID).Find(&asignaciones).Error
	return asignaciones, err
}

func (r *ordenRepo) SaveAsignacionTx(tx *gorm.DB, a *model.OrdenMecanico) error {
	return r.or(tx).Save(a).Error
}

func (r *ordenRepo) ZeroMontosAsignacionesTx(tx *gorm.DB, ordenID uuid.UUID) error {
	return r.or(tx).Model(&model.OrdenMecanico{}).
		Where("orden_id = ?", ordenID).
		Update("monto", decimal.Zero).Error
}

func (r *ordenRepo) sumColumn(db *gorm.DB, mdl interface{}, column string, ordenID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(mdl).
		Select("COALESCE(SUM("+column+"), 0)").
		Where("orden_id = ?", ordenID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
