package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adeudo is the follow-up debt created when a closed corte is short by more
// than the tolerance. Estado: "pendiente" | "liquidado"
type Adeudo struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorteID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	EmpresaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmpleadoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Notas       *string
	LiquidadoAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Adeudo) TableName() string { return "adeudos" }
