package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mecanico is a shop technician. PorcentajeBase is the default commission
// percentage applied when an order assignment has none of its own.
type Mecanico struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombres        string    `gorm:"not null"`
	Apellidos      string    `gorm:"not null"`
	Documento      string    `gorm:"uniqueIndex;not null"`
	Telefono       *string
	Email          *string
	Especialidad   *string
	FechaIngreso   *time.Time
	Activo         bool            `gorm:"not null;default:true"`
	PorcentajeBase decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Asignaciones []OrdenMecanico `gorm:"foreignKey:MecanicoID"`
}

func (Mecanico) TableName() string { return "mecanicos" }

// NombreCompleto is used in posting concepts and payroll receipts.
func (m *Mecanico) NombreCompleto() string {
	if m.Apellidos == "" {
		return m.Nombres
	}
	return m.Nombres + " " + m.Apellidos
}
