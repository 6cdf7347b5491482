package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors. Handlers map them to HTTP status codes with errors.Is;
// services wrap them with context using fmt.Errorf("...: %w").
var (
	ErrNoEncontrado   = errors.New("no encontrado")
	ErrConflicto      = errors.New("conflicto")
	ErrEstadoInvalido = errors.New("estado inválido")
	ErrCredenciales   = errors.New("credenciales inválidas")
)

// traducir maps GORM errors to the service sentinels. Other errors pass
// through untouched.
func traducir(err error, entidad string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", entidad, ErrNoEncontrado)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s ya existe: %w", entidad, ErrConflicto)
	}
	return err
}

// runTx runs fn inside a transaction. With a nil db (unit tests with
// in-memory repositories) fn runs directly with a nil tx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrStr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
