package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a cash register session. At most one may be "abierta" system-wide;
// the invariant is enforced by a partial unique index (see infra/database.go)
// in addition to the in-transaction check. SaldoFinal is the derived running
// balance: SaldoInicial + SUM(ingresos) - SUM(egresos).
type Caja struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Estado          string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	SaldoInicial    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoFinal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observaciones   *string
	UsuarioApertura *string
	UsuarioCierre   *string
	FechaApertura   time.Time `gorm:"not null"`
	FechaCierre     *time.Time

	Movimientos []MovimientoCaja `gorm:"foreignKey:CajaID"`
}

func (Caja) TableName() string { return "cajas" }

const (
	MovCajaIngreso = "ingreso"
	MovCajaEgreso  = "egreso"
)

// MovimientoCaja is an immutable entry in the cash register ledger.
// Entries are NEVER modified or deleted — reversals create inverse entries
// that point back at the reversed posting via ReversaDeID, which is also how
// reopen detects an already-applied reversal (no concept-text matching).
type MovimientoCaja struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo        string          `gorm:"type:varchar(20);not null"`
	Concepto    string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo      *string
	Usuario     *string
	OrdenID     *uuid.UUID `gorm:"type:uuid;index"`
	ProveedorID *uuid.UUID `gorm:"type:uuid"`
	ReversaDeID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Caja *Caja `gorm:"foreignKey:CajaID"`
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
