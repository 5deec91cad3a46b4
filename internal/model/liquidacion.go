package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LiquidacionPendiente = "pendiente"
	LiquidacionPagada    = "pagado"
)

// Liquidacion batches one mechanic's commissions over a pay period
// (1st-15th or 16th-end-of-month, "quincenal"). Totals are always the sum of
// the settlement's own detail rows. At most one pending settlement may exist
// per (mecanico, periodo); a partial unique index backs the find-or-create.
type Liquidacion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MecanicoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaInicio   time.Time `gorm:"type:date;not null"`
	FechaFin      time.Time `gorm:"type:date;not null"`
	Frecuencia    string    `gorm:"type:varchar(20);not null"`
	TotalBase     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPagado   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Usuario       *string
	Observaciones *string
	CreatedAt     time.Time

	Mecanico *Mecanico            `gorm:"foreignKey:MecanicoID"`
	Detalles []LiquidacionDetalle `gorm:"foreignKey:LiquidacionID"`
}

func (Liquidacion) TableName() string { return "liquidaciones_mecanicos" }

// LiquidacionDetalle links a settlement to one originating work order with
// the percentage, base and amount used at settlement time.
type LiquidacionDetalle struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LiquidacionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrdenID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Porcentaje    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	BaseCalculo   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
}

func (LiquidacionDetalle) TableName() string { return "liquidaciones_mecanicos_detalle" }
