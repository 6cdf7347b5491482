package service

import (
	"context"
	"fmt"

	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// agregarAsiento appends an ingreso/egreso entry to movs. Zero amounts are
// skipped and negative ones are posted in the opposite direction, so every
// stored Monto stays positive.
func agregarAsiento(movs []model.MovimientoCuenta, tipo string, monto decimal.Decimal, concepto string) []model.MovimientoCuenta {
	if monto.IsZero() {
		return movs
	}
	if monto.IsNegative() {
		monto = monto.Neg()
		if tipo == model.MovIngreso {
			tipo = model.MovEgreso
		} else {
			tipo = model.MovIngreso
		}
	}
	return append(movs, model.MovimientoCuenta{Tipo: tipo, Monto: monto, Concepto: concepto})
}

// postear locks the account, applies movs to its balance and persists both
// the entries and the new balance. A cajera account may not end below zero.
// Must run inside runTx.
func postear(ctx context.Context, repo repository.CuentaRepository, tx *gorm.DB, cuentaID uuid.UUID, movs []model.MovimientoCuenta) (*model.Cuenta, error) {
	cuenta, err := repo.FindByIDForUpdate(ctx, tx, cuentaID)
	if err != nil {
		return nil, traducir(err, "cuenta")
	}
	if !cuenta.Activo {
		return nil, fmt.Errorf("la cuenta %s está inactiva: %w", cuenta.Nombre, ErrEstadoInvalido)
	}

	saldo := cuenta.Saldo
	for _, m := range movs {
		if m.Entrada() {
			saldo = saldo.Add(m.Monto)
		} else {
			saldo = saldo.Sub(m.Monto)
		}
	}
	if cuenta.Tipo == model.CuentaCajera && saldo.IsNegative() {
		return nil, fmt.Errorf("saldo insuficiente en %s (%s): %w", cuenta.Nombre, cuenta.Saldo.StringFixed(2), ErrEstadoInvalido)
	}

	for i := range movs {
		movs[i].CuentaID = cuentaID
		if err := repo.CreateMovimiento(ctx, tx, &movs[i]); err != nil {
			return nil, err
		}
	}
	if err := repo.UpdateSaldo(ctx, tx, cuentaID, saldo); err != nil {
		return nil, err
	}
	cuenta.Saldo = saldo
	return cuenta, nil
}
