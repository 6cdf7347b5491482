package dto

import "github.com/shopspring/decimal"

type AdeudoFilter struct {
	EmpresaID  string `form:"empresa_id"  validate:"omitempty,uuid"`
	EmpleadoID string `form:"empleado_id" validate:"omitempty,uuid"`
	Estado     string `form:"estado"      validate:"omitempty,oneof=pendiente liquidado"`
}

type LiquidarAdeudoRequest struct {
	Notas *string `json:"notas" validate:"omitempty,max=500"`
}

type AdeudoResponse struct {
	ID          string          `json:"id"`
	CorteID     string          `json:"corte_id"`
	EmpresaID   string          `json:"empresa_id"`
	EmpleadoID  string          `json:"empleado_id"`
	Monto       decimal.Decimal `json:"monto"`
	Estado      string          `json:"estado"`
	Notas       *string         `json:"notas"`
	CreatedAt   string          `json:"created_at"`
	LiquidadoAt *string         `json:"liquidado_at"`
}
