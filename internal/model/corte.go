package model

import (
	"time"

	"ballesteros/internal/corte"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Corte is one drawer reconciliation for one empleado, empresa, date and
// session number. Estado: "activo" | "cerrado" | "anulado"
type Corte struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_corte_sesion,priority:1"`
	EmpleadoID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_corte_sesion,priority:2"`
	Fecha        time.Time  `gorm:"type:date;not null;uniqueIndex:idx_corte_sesion,priority:3"`
	NumeroSesion int        `gorm:"not null;uniqueIndex:idx_corte_sesion,priority:4"`
	CuentaID     *uuid.UUID `gorm:"type:uuid"`

	// Captured amounts
	VentaBruta        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EfectivoReportado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	VentasCredito     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	VentasPlataforma  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cobranza          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TarjetaCredito    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TarjetaDebito     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Transferencias    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RetiroParcial     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Gasto             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Compra            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Prestamo          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoCortesia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtrosRetiros      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Etiqueta *string
	Estado   string `gorm:"type:varchar(20);not null;default:'activo'"`

	// Frozen on close; nil while activo
	TotalVentasNoEfectivo    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalSalidasReales       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	EfectivoEsperado         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Diferencia               *decimal.Decimal `gorm:"type:decimal(12,2)"`
	VentasEfectivoCalculadas *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalVentasRegistradas   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalIngresosRegistrados *decimal.Decimal `gorm:"type:decimal(12,2)"`
	GeneraAdeudo             bool             `gorm:"not null;default:false"`

	Observaciones *string
	CreadoPor     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClosedAt      *time.Time
	VoidedAt      *time.Time
}

func (Corte) TableName() string { return "cortes" }

// Entrada copies the captured amounts into the calculator input.
func (c *Corte) Entrada() corte.Entrada {
	return corte.Entrada{
		VentaBruta:        c.VentaBruta,
		EfectivoReportado: c.EfectivoReportado,
		VentasCredito:     c.VentasCredito,
		VentasPlataforma:  c.VentasPlataforma,
		Cobranza:          c.Cobranza,
		TarjetaCredito:    c.TarjetaCredito,
		TarjetaDebito:     c.TarjetaDebito,
		Transferencias:    c.Transferencias,
		RetiroParcial:     c.RetiroParcial,
		Gasto:             c.Gasto,
		Compra:            c.Compra,
		Prestamo:          c.Prestamo,
		DescuentoCortesia: c.DescuentoCortesia,
		OtrosRetiros:      c.OtrosRetiros,
	}
}

// Congelar stores the derived values on the row.
func (c *Corte) Congelar(d corte.Derivados) {
	c.TotalVentasNoEfectivo = ptr(d.TotalVentasNoEfectivo)
	c.TotalSalidasReales = ptr(d.TotalSalidasReales)
	c.EfectivoEsperado = ptr(d.EfectivoEsperado)
	c.Diferencia = ptr(d.Diferencia)
	c.VentasEfectivoCalculadas = ptr(d.VentasEfectivoCalculadas)
	c.TotalVentasRegistradas = ptr(d.TotalVentasRegistradas)
	c.TotalIngresosRegistrados = ptr(d.TotalIngresosRegistrados)
	c.GeneraAdeudo = d.GeneraAdeudo
}

// Congelado returns the frozen derived values, or false when the corte has
// not been closed.
func (c *Corte) Congelado() (corte.Derivados, bool) {
	if c.EfectivoEsperado == nil || c.Diferencia == nil {
		return corte.Derivados{}, false
	}
	return corte.Derivados{
		TotalTarjetas:            c.TarjetaCredito.Add(c.TarjetaDebito),
		TotalVentasNoEfectivo:    deref(c.TotalVentasNoEfectivo),
		TotalSalidasReales:       deref(c.TotalSalidasReales),
		EfectivoEsperado:         *c.EfectivoEsperado,
		Diferencia:               *c.Diferencia,
		VentasEfectivoCalculadas: deref(c.VentasEfectivoCalculadas),
		TotalVentasRegistradas:   deref(c.TotalVentasRegistradas),
		TotalIngresosRegistrados: deref(c.TotalIngresosRegistrados),
		GeneraAdeudo:             c.GeneraAdeudo,
	}, true
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
