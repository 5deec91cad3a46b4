package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Work-order lifecycle states. cerrada and cancelada are final except for the
// controlled reopen (cerrada → en_proceso).
const (
	OrdenAbierta   = "abierta"
	OrdenEnProceso = "en_proceso"
	OrdenCerrada   = "cerrada"
	OrdenCancelada = "cancelada"
)

// OrdenTrabajo is a work order for one vehicle of one client. Total is kept
// in sync with the sum of its service and consumption lines; Descripcion is
// an append-only log that accumulates reopen reasons.
type OrdenTrabajo struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero           int       `gorm:"uniqueIndex;not null"`
	Fecha            time.Time `gorm:"not null"`
	FechaReapertura  *time.Time
	FechaSalida      *time.Time
	Descripcion      string          `gorm:"not null"`
	Estado           string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FormaPago        *string         `gorm:"type:varchar(30)"`
	ClienteID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehiculoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente      *Cliente        `gorm:"foreignKey:ClienteID"`
	Vehiculo     *Vehiculo       `gorm:"foreignKey:VehiculoID"`
	Servicios    []DetalleOrden  `gorm:"foreignKey:OrdenID"`
	Insumos      []DetalleAlmacen `gorm:"foreignKey:OrdenID"`
	Asignaciones []OrdenMecanico `gorm:"foreignKey:OrdenID"`
}

func (OrdenTrabajo) TableName() string { return "ordenes_trabajo" }

// EsFinal reports whether the order is in a settled state.
func (o *OrdenTrabajo) EsFinal() bool {
	return o.Estado == OrdenCerrada || o.Estado == OrdenCancelada
}

// DetalleOrden is a service (labor) line. PrecioUnitario is captured from the
// catalog at the time the line is added.
type DetalleOrden struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServicioID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null;default:1"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Servicio *Servicio `gorm:"foreignKey:ServicioID"`
}

func (DetalleOrden) TableName() string { return "detalle_orden" }

// DetalleAlmacen is an inventory-consumption line. Both the shop price and
// the supplier cost are recorded per unit at consumption time, so later
// catalog changes cannot alter a settled order's economics.
type DetalleAlmacen struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID            uuid.UUID       `gorm:"type:uuid;not null"`
	ProveedorID       *uuid.UUID      `gorm:"type:uuid"`
	Cantidad          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioUnitario    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoProveedor    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SubtotalProveedor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt         time.Time

	Item      *AlmacenItem `gorm:"foreignKey:ItemID"`
	Proveedor *Proveedor   `gorm:"foreignKey:ProveedorID"`
}

func (DetalleAlmacen) TableName() string { return "detalle_almacen" }

// OrdenMecanico links a work order to a mechanic. Unique per (orden, mecanico).
// Porcentaje falls back to the mechanic's base percentage when zero; Monto is
// recomputed at settlement time and zeroed on reopen.
type OrdenMecanico struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID       uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_orden_mecanico"`
	MecanicoID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_orden_mecanico"`
	Porcentaje    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Mecanico *Mecanico `gorm:"foreignKey:MecanicoID"`
}

func (OrdenMecanico) TableName() string { return "ordenes_mecanicos" }
