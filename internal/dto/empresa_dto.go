package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearEmpresaRequest struct {
	Nombre              string  `json:"nombre"               validate:"required,min=2,max=150"`
	RFC                 string  `json:"rfc"                  validate:"required,min=12,max=13"`
	Direccion           *string `json:"direccion"`
	Telefono            *string `json:"telefono"`
	EmailNotificaciones *string `json:"email_notificaciones" validate:"omitempty,email"`
}

type ActualizarEmpresaRequest struct {
	Nombre              *string `json:"nombre"               validate:"omitempty,min=2,max=150"`
	Direccion           *string `json:"direccion"`
	Telefono            *string `json:"telefono"`
	EmailNotificaciones *string `json:"email_notificaciones" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmpresaResponse struct {
	ID                  string  `json:"id"`
	Nombre              string  `json:"nombre"`
	RFC                 string  `json:"rfc"`
	Direccion           *string `json:"direccion"`
	Telefono            *string `json:"telefono"`
	EmailNotificaciones *string `json:"email_notificaciones"`
	Activo              bool    `json:"activo"`
}
