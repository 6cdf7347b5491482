package model

import (
	"time"

	"github.com/google/uuid"
)

// Empleado is a person who may run a register (cajera/cajero).
type Empleado struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Puesto    string    `gorm:"type:varchar(50);not null"`
	Telefono  *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Empleado) TableName() string { return "empleados" }
