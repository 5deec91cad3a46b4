package model

import (
	"time"

	"github.com/google/uuid"
)

// ReglaMantenimiento is a global maintenance rule evaluated per vehicle.
// At least one of IntervaloKm / IntervaloDias must be set for the rule to be
// usable; creation and edit reject interval-less rules. Deactivating hides a
// rule from future evaluation without deleting history.
type ReglaMantenimiento struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"uniqueIndex;not null"`
	Descripcion    *string
	IntervaloKm    *int
	IntervaloDias  *int
	ToleranciaKm   int  `gorm:"not null;default:200"`
	ToleranciaDias int  `gorm:"not null;default:3"`
	Activo         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ReglaMantenimiento) TableName() string { return "reglas_mantenimiento" }

// VehiculoReglaBase is the per-(vehiculo, regla) baseline: the odometer
// reading and date from which progress toward the next due point is measured.
// Created lazily on first evaluation, reset explicitly after maintenance.
type VehiculoReglaBase struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehiculoID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_vehiculo_regla"`
	ReglaID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_vehiculo_regla"`
	KmBase     *int
	FechaBase  *time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (VehiculoReglaBase) TableName() string { return "vehiculos_reglas_base" }
