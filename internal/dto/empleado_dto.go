package dto

type CrearEmpleadoRequest struct {
	EmpresaID string  `json:"empresa_id" validate:"required,uuid"`
	Nombre    string  `json:"nombre"     validate:"required,min=2,max=120"`
	Puesto    string  `json:"puesto"     validate:"required,max=50"`
	Telefono  *string `json:"telefono"`
}

type ActualizarEmpleadoRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=120"`
	Puesto   *string `json:"puesto"   validate:"omitempty,max=50"`
	Telefono *string `json:"telefono"`
}

type EmpleadoResponse struct {
	ID        string  `json:"id"`
	EmpresaID string  `json:"empresa_id"`
	Nombre    string  `json:"nombre"`
	Puesto    string  `json:"puesto"`
	Telefono  *string `json:"telefono"`
	Activo    bool    `json:"activo"`
}
