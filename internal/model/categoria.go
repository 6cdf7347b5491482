package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria classifies manual movements on a cuenta. A categoria only
// applies to movements of its own Tipo (MovIngreso or MovEgreso).
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Tipo        string    `gorm:"type:varchar(10);not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }

// Admite reports whether a movement of tipo may be filed under c.
func (c *Categoria) Admite(tipo string) bool {
	return c.Activo && c.Tipo == tipo
}
