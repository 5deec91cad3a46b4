package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehiculo belongs to exactly one Cliente. KmActual is nil until the first
// odometer reading is recorded.
type Vehiculo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Placa      string    `gorm:"uniqueIndex;not null"`
	Marca      string    `gorm:"not null"`
	Modelo     string    `gorm:"not null"`
	Color      *string
	Anio       *int
	Cilindraje *int
	Clase      *string
	KmActual   *int
	ClienteID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Vehiculo) TableName() string { return "vehiculos" }
