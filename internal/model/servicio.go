package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoriaServicio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time

	Servicios []Servicio `gorm:"foreignKey:CategoriaID"`
}

func (CategoriaServicio) TableName() string { return "categorias_servicio" }

// Servicio is a catalog entry for labor sold on work orders.
type Servicio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *CategoriaServicio `gorm:"foreignKey:CategoriaID"`
}

func (Servicio) TableName() string { return "servicios" }
