package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlmacenItem is an inventory stock item. ValorProveedor is the last known
// cost-from-supplier per unit; ValorTaller is the price charged on orders.
type AlmacenItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"uniqueIndex;not null"`
	Descripcion    *string
	Categoria      *string
	Unidad         string          `gorm:"type:varchar(20);not null;default:'unidad'"`
	StockActual    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockMinimo    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorProveedor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorTaller    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProveedorID    *uuid.UUID      `gorm:"type:uuid"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (AlmacenItem) TableName() string { return "almacen_items" }

// MovimientoAlmacen registra cada cambio de stock de un insumo.
// Tipo: "entrada" | "salida" | "ajuste" | "devolucion"
// Movements are never modified or deleted.
type MovimientoAlmacen struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrdenID       *uuid.UUID `gorm:"type:uuid;index"`
	ProveedorID   *uuid.UUID `gorm:"type:uuid"`
	Tipo          string     `gorm:"type:varchar(20);not null"`
	Cantidad      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ValorUnitario *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones *string
	CreatedAt     time.Time

	Item *AlmacenItem `gorm:"foreignKey:ItemID"`
}

func (MovimientoAlmacen) TableName() string { return "movimientos_almacen" }
