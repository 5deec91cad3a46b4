package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente owns one or more vehicles.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Documento string    `gorm:"uniqueIndex;not null"`
	Telefono  *string
	Email     *string
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Vehiculos []Vehiculo `gorm:"foreignKey:ClienteID"`
}

func (Cliente) TableName() string { return "clientes" }
