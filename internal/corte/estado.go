package corte

import "fmt"

// Estado is the lifecycle state of a corte.
// Transitions are one-way: activo -> cerrado, activo -> anulado.
type Estado string

const (
	EstadoActivo  Estado = "activo"
	EstadoCerrado Estado = "cerrado"
	EstadoAnulado Estado = "anulado"
)

// Valido reports whether e is one of the three known states.
func (e Estado) Valido() bool {
	switch e {
	case EstadoActivo, EstadoCerrado, EstadoAnulado:
		return true
	}
	return false
}

// Editable reports whether the captured amounts may still change.
func (e Estado) Editable() bool { return e == EstadoActivo }

// PuedeTransicionar reports whether e may move to destino.
func (e Estado) PuedeTransicionar(destino Estado) bool {
	return e == EstadoActivo && (destino == EstadoCerrado || destino == EstadoAnulado)
}

// Transicionar returns destino, or an error naming both states when the
// move is not allowed.
func (e Estado) Transicionar(destino Estado) (Estado, error) {
	if !e.PuedeTransicionar(destino) {
		return e, fmt.Errorf("transición inválida de %q a %q", e, destino)
	}
	return destino, nil
}
