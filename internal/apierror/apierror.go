// Package apierror defines the JSON bodies the API answers errors with.
// Detail is for people; Code is what clients switch on. Driver and internal
// messages never reach either field.
package apierror

const (
	CodigoSolicitud    = "solicitud_invalida"
	CodigoValidacion   = "validacion"
	CodigoNoAutorizado = "no_autorizado"
	CodigoProhibido    = "prohibido"
	CodigoNoEncontrado = "no_encontrado"
	CodigoConflicto    = "conflicto"
	CodigoEstado       = "estado_invalido"
	CodigoLimite       = "limite_excedido"
	CodigoInterno      = "interno"
)

// APIError is the envelope of every 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Con tags the envelope with one of the Codigo* constants.
func Con(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError lists, per struct field, the validator tag that failed.
type ValidationError struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Code: CodigoValidacion, Fields: fields}
}
