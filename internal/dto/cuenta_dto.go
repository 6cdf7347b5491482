package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuentaRequest struct {
	EmpresaID    string          `json:"empresa_id"    validate:"required,uuid"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=100"`
	Tipo         string          `json:"tipo"          validate:"required,oneof=cajera fiscal"`
	Banco        *string         `json:"banco"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type ActualizarCuentaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Banco  *string `json:"banco"`
}

type MovimientoCuentaRequest struct {
	Tipo        string          `json:"tipo"         validate:"required,oneof=ingreso egreso"`
	Monto       decimal.Decimal `json:"monto"        validate:"required,gt=0"`
	Concepto    string          `json:"concepto"     validate:"required,min=3"`
	CategoriaID *string         `json:"categoria_id" validate:"omitempty,uuid"`
}

type TraspasoRequest struct {
	CuentaOrigenID  string          `json:"cuenta_origen_id"  validate:"required,uuid"`
	CuentaDestinoID string          `json:"cuenta_destino_id" validate:"required,uuid,nefield=CuentaOrigenID"`
	Monto           decimal.Decimal `json:"monto"             validate:"required,gt=0"`
	Concepto        string          `json:"concepto"          validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CuentaResponse struct {
	ID        string          `json:"id"`
	EmpresaID string          `json:"empresa_id"`
	Nombre    string          `json:"nombre"`
	Tipo      string          `json:"tipo"`
	Banco     *string         `json:"banco"`
	Saldo     decimal.Decimal `json:"saldo"`
	Activo    bool            `json:"activo"`
}

type MovimientoCuentaResponse struct {
	ID          string          `json:"id"`
	CuentaID    string          `json:"cuenta_id"`
	Tipo        string          `json:"tipo"`
	Monto       decimal.Decimal `json:"monto"`
	Concepto    string          `json:"concepto"`
	CategoriaID *string         `json:"categoria_id"`
	CorteID     *string         `json:"corte_id"`
	TraspasoID  *string         `json:"traspaso_id"`
	CreatedAt   string          `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoCuentaResponse `json:"data"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}

type TraspasoResponse struct {
	TraspasoID string                   `json:"traspaso_id"`
	Salida     MovimientoCuentaResponse `json:"salida"`
	Entrada    MovimientoCuentaResponse `json:"entrada"`
}
