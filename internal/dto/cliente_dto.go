package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	EmpresaID     *string         `json:"empresa_id"     validate:"omitempty,uuid"`
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=150"`
	RFC           *string         `json:"rfc"            validate:"omitempty,min=12,max=13"`
	Telefono      *string         `json:"telefono"`
	Email         *string         `json:"email"          validate:"omitempty,email"`
	LimiteCredito decimal.Decimal `json:"limite_credito" validate:"min=0"`
}

type ActualizarClienteRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2,max=150"`
	RFC           *string          `json:"rfc"            validate:"omitempty,min=12,max=13"`
	Telefono      *string          `json:"telefono"`
	Email         *string          `json:"email"          validate:"omitempty,email"`
	LimiteCredito *decimal.Decimal `json:"limite_credito" validate:"omitempty,min=0"`
}

type ClienteResponse struct {
	ID            string          `json:"id"`
	EmpresaID     *string         `json:"empresa_id"`
	Nombre        string          `json:"nombre"`
	RFC           *string         `json:"rfc"`
	Telefono      *string         `json:"telefono"`
	Email         *string         `json:"email"`
	LimiteCredito decimal.Decimal `json:"limite_credito"`
	Activo        bool            `json:"activo"`
}
