package dto

import (
	"ballesteros/internal/corte"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CapturaCorte holds the amounts counted at the drawer. Absent fields are 0.
type CapturaCorte struct {
	VentaBruta        decimal.Decimal `json:"venta_bruta"         validate:"min=0"`
	EfectivoReportado decimal.Decimal `json:"efectivo_reportado"  validate:"min=0"`
	VentasCredito     decimal.Decimal `json:"ventas_credito"      validate:"min=0"`
	VentasPlataforma  decimal.Decimal `json:"ventas_plataforma"   validate:"min=0"`
	Cobranza          decimal.Decimal `json:"cobranza"            validate:"min=0"`
	TarjetaCredito    decimal.Decimal `json:"tarjeta_credito"     validate:"min=0"`
	TarjetaDebito     decimal.Decimal `json:"tarjeta_debito"      validate:"min=0"`
	Transferencias    decimal.Decimal `json:"transferencias"      validate:"min=0"`
	RetiroParcial     decimal.Decimal `json:"retiro_parcial"      validate:"min=0"`
	Gasto             decimal.Decimal `json:"gasto"               validate:"min=0"`
	Compra            decimal.Decimal `json:"compra"              validate:"min=0"`
	Prestamo          decimal.Decimal `json:"prestamo"            validate:"min=0"`
	DescuentoCortesia decimal.Decimal `json:"descuento_cortesia"  validate:"min=0"`
	OtrosRetiros      decimal.Decimal `json:"otros_retiros"       validate:"min=0"`
}

func (c CapturaCorte) Entrada() corte.Entrada {
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

type AbrirCorteRequest struct {
	EmpresaID    string  `json:"empresa_id"    validate:"required,uuid"`
	EmpleadoID   string  `json:"empleado_id"   validate:"required,uuid"`
	CuentaID     *string `json:"cuenta_id"     validate:"omitempty,uuid"`
	Fecha        string  `json:"fecha"         validate:"required,datetime=2006-01-02"`
	NumeroSesion int     `json:"numero_sesion" validate:"required,min=1"`
	Etiqueta     *string `json:"etiqueta"      validate:"omitempty,max=100"`
	CapturaCorte
}

// ActualizarCorteRequest corrects captured amounts while the corte is activo.
// Only non-nil fields change.
type ActualizarCorteRequest struct {
	VentaBruta        *decimal.Decimal `json:"venta_bruta"         validate:"omitempty,min=0"`
	EfectivoReportado *decimal.Decimal `json:"efectivo_reportado"  validate:"omitempty,min=0"`
	VentasCredito     *decimal.Decimal `json:"ventas_credito"      validate:"omitempty,min=0"`
	VentasPlataforma  *decimal.Decimal `json:"ventas_plataforma"   validate:"omitempty,min=0"`
	Cobranza          *decimal.Decimal `json:"cobranza"            validate:"omitempty,min=0"`
	TarjetaCredito    *decimal.Decimal `json:"tarjeta_credito"     validate:"omitempty,min=0"`
	TarjetaDebito     *decimal.Decimal `json:"tarjeta_debito"      validate:"omitempty,min=0"`
	Transferencias    *decimal.Decimal `json:"transferencias"      validate:"omitempty,min=0"`
	RetiroParcial     *decimal.Decimal `json:"retiro_parcial"      validate:"omitempty,min=0"`
	Gasto             *decimal.Decimal `json:"gasto"               validate:"omitempty,min=0"`
	Compra            *decimal.Decimal `json:"compra"              validate:"omitempty,min=0"`
	Prestamo          *decimal.Decimal `json:"prestamo"            validate:"omitempty,min=0"`
	DescuentoCortesia *decimal.Decimal `json:"descuento_cortesia"  validate:"omitempty,min=0"`
	OtrosRetiros      *decimal.Decimal `json:"otros_retiros"       validate:"omitempty,min=0"`
	Etiqueta          *string          `json:"etiqueta"            validate:"omitempty,max=100"`
	CuentaID          *string          `json:"cuenta_id"           validate:"omitempty,uuid"`
}

type CerrarCorteRequest struct {
	Observaciones *string `json:"observaciones" validate:"omitempty,max=1000"`
}

type AnularCorteRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3,max=500"`
}

// CorteFilter is bound from the query string of GET /v1/cortes.
type CorteFilter struct {
	EmpresaID  string `form:"empresa_id"  validate:"omitempty,uuid"`
	EmpleadoID string `form:"empleado_id" validate:"omitempty,uuid"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=activo cerrado anulado"`
	Desde      string `form:"desde"       validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta"       validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CalculoCorteResponse struct {
	CorteID    string          `json:"corte_id,omitempty"`
	Derivados  corte.Derivados `json:"derivados"`
	Tolerancia int             `json:"tolerancia"`
}

type CorteResponse struct {
	ID            string           `json:"id"`
	EmpresaID     string           `json:"empresa_id"`
	EmpleadoID    string           `json:"empleado_id"`
	CuentaID      *string          `json:"cuenta_id"`
	Fecha         string           `json:"fecha"`
	NumeroSesion  int              `json:"numero_sesion"`
	Captura       CapturaCorte     `json:"captura"`
	Etiqueta      *string          `json:"etiqueta"`
	Estado        string           `json:"estado"`
	GeneraAdeudo  bool             `json:"genera_adeudo"`
	Derivados     *corte.Derivados `json:"derivados"`
	Observaciones *string          `json:"observaciones"`
	CreatedAt     string           `json:"created_at"`
	ClosedAt      *string          `json:"closed_at"`
	VoidedAt      *string          `json:"voided_at"`
}

type CierreCorteResponse struct {
	Corte  CorteResponse   `json:"corte"`
	Adeudo *AdeudoResponse `json:"adeudo"`
}

type CorteListResponse struct {
	Data  []CorteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
