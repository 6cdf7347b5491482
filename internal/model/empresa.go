package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa is one branch / legal entity operating its own registers.
type Empresa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	RFC       string    `gorm:"column:rfc;uniqueIndex;not null"`
	Direccion *string
	Telefono  *string
	// EmailNotificaciones receives corte reports that generated an adeudo
	EmailNotificaciones *string
	Activo              bool `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Empresa) TableName() string { return "empresas" }
