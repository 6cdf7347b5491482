package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cuenta is a money-holding account.
// Tipo: "cajera" (tied to a drawer) | "fiscal" (bank, non-cash settlement)
type Cuenta struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre    string          `gorm:"not null"`
	Tipo      string          `gorm:"type:varchar(10);not null"`
	Banco     *string
	Saldo     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cuenta) TableName() string { return "cuentas" }

const (
	CuentaCajera = "cajera"
	CuentaFiscal = "fiscal"
)

const (
	MovIngreso         = "ingreso"
	MovEgreso          = "egreso"
	MovTraspasoEntrada = "traspaso_entrada"
	MovTraspasoSalida  = "traspaso_salida"
)

// MovimientoCuenta is an immutable ledger entry. Monto is always positive;
// Tipo gives the direction.
// Tipo: "ingreso" | "egreso" | "traspaso_entrada" | "traspaso_salida"
type MovimientoCuenta struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo        string          `gorm:"type:varchar(20);not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Concepto    string          `gorm:"not null"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid"`
	// CorteID is set for entries posted when a corte closes
	CorteID *uuid.UUID `gorm:"type:uuid;index"`
	// TraspasoID pairs the two legs of a transfer
	TraspasoID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
}

func (MovimientoCuenta) TableName() string { return "movimientos_cuenta" }

// Entrada reports whether the movement increases the balance.
func (m MovimientoCuenta) Entrada() bool {
	return m.Tipo == MovIngreso || m.Tipo == MovTraspasoEntrada
}
