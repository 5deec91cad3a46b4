package model

import (
	"time"

	"github.com/google/uuid"
)

type Herramienta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Estado      string `gorm:"type:varchar(20);not null;default:'disponible'"` // disponible | prestada | baja
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Herramienta) TableName() string { return "herramientas" }

// PrestamoHerramienta tracks a tool lent to a mechanic.
// Estado: "prestada" | "devuelta"
type PrestamoHerramienta struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HerramientaID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MecanicoID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado          string    `gorm:"type:varchar(20);not null;default:'prestada'"`
	FechaPrestamo   time.Time `gorm:"not null"`
	FechaDevolucion *time.Time
	Observaciones   *string

	Herramienta *Herramienta `gorm:"foreignKey:HerramientaID"`
	Mecanico    *Mecanico    `gorm:"foreignKey:MecanicoID"`
}

func (PrestamoHerramienta) TableName() string { return "prestamos_herramientas" }
