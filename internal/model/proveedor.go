package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proveedor is a parts supplier with a running ledger balance.
type Proveedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	NIT       *string   `gorm:"column:nit"`
	Telefono  *string
	Email     *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Insumos     []AlmacenItem         `gorm:"foreignKey:ProveedorID"`
	Movimientos []MovimientoProveedor `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }

// Supplier ledger entry types. The running balance is
// SUM(cargo + nota_debito) - SUM(pago + nota_credito).
const (
	MovProveedorCargo       = "cargo"
	MovProveedorPago        = "pago"
	MovProveedorNotaCredito = "nota_credito"
	MovProveedorNotaDebito  = "nota_debito"
)

// MovimientoProveedor is an immutable entry in a supplier's ledger.
// An accrual ("cargo") records the liability for consumed inventory
// independent of when it is actually paid.
type MovimientoProveedor struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrdenID       *uuid.UUID `gorm:"type:uuid;index"`
	ItemID        *uuid.UUID `gorm:"type:uuid"`
	Tipo          string     `gorm:"type:varchar(20);not null"`
	Cantidad      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ValorUnitario *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Subtotal      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Motivo        *string
	Usuario       *string
	CreatedAt     time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (MovimientoProveedor) TableName() string { return "movimientos_proveedor" }
