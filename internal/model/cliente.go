package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a customer who may buy on credit (cobranza collects it).
type Cliente struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID     *uuid.UUID `gorm:"type:uuid;index"`
	Nombre        string     `gorm:"not null"`
	RFC           *string    `gorm:"column:rfc"`
	Telefono      *string
	Email         *string
	LimiteCredito decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Cliente) TableName() string { return "clientes" }
