package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"ballesteros/internal/corte"
	"ballesteros/internal/dto"
	"ballesteros/internal/model"
	"ballesteros/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnqueuer struct {
	payloads []worker.ReporteCortePayload
	err      error
}

func (s *stubEnqueuer) EnqueueReporteCorte(_ context.Context, p worker.ReporteCortePayload) error {
	s.payloads = append(s.payloads, p)
	return s.err
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type corteFixture struct {
	svc       CorteService
	cortes    *stubCorteRepo
	adeudos   *stubAdeudoRepo
	cuentas   *stubCuentaRepo
	empleados *stubEmpleadoRepo
	enqueuer  *stubEnqueuer
	empresa   model.Empresa
	empleado  model.Empleado
	cajera    model.Cuenta
}

func newCorteFixture(t *testing.T) *corteFixture {
	t.Helper()
	ctx := context.Background()
	f := &corteFixture{
		cortes:    newStubCorteRepo(),
		adeudos:   newStubAdeudoRepo(),
		cuentas:   newStubCuentaRepo(),
		empleados: newStubEmpleadoRepo(),
		enqueuer:  &stubEnqueuer{},
	}
	empresas := newStubEmpresaRepo()

	email := "gerencia@ballesteros.mx"
	f.empresa = model.Empresa{Nombre: "Ballesteros Centro", RFC: "BCE010101AAA", EmailNotificaciones: &email, Activo: true}
	require.NoError(t, empresas.Create(ctx, &f.empresa))
	f.empleado = model.Empleado{EmpresaID: f.empresa.ID, Nombre: "Lucía Pérez", Puesto: "cajera", Activo: true}
	require.NoError(t, f.empleados.Create(ctx, &f.empleado))
	f.cajera = model.Cuenta{EmpresaID: f.empresa.ID, Nombre: "Caja 1", Tipo: model.CuentaCajera, Activo: true}
	require.NoError(t, f.cuentas.Create(ctx, nil, &f.cajera))

	f.svc = NewCorteService(f.cortes, f.adeudos, empresas, f.empleados, f.cuentas, f.enqueuer, t.TempDir())
	return f
}

func (f *corteFixture) abrirReq(sesion int, efectivo string) dto.AbrirCorteRequest {
	cuenta := f.cajera.ID.String()
	return dto.AbrirCorteRequest{
		EmpresaID:    f.empresa.ID.String(),
		EmpleadoID:   f.empleado.ID.String(),
		CuentaID:     &cuenta,
		Fecha:        "2026-03-14",
		NumeroSesion: sesion,
		CapturaCorte: dto.CapturaCorte{
			VentaBruta:        dec("5000"),
			EfectivoReportado: dec(efectivo),
			TarjetaCredito:    dec("500"),
			TarjetaDebito:     dec("300"),
			Gasto:             dec("200"),
		},
	}
}

func TestCorteService_Abrir(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()
	creador := uuid.New()

	resp, err := f.svc.Abrir(ctx, f.abrirReq(1, "4150"), creador)
	require.NoError(t, err)
	assert.Equal(t, string(corte.EstadoActivo), resp.Estado)
	assert.Equal(t, "2026-03-14", resp.Fecha)
	require.NotNil(t, resp.Derivados)
	assert.Equal(t, "150.00", resp.Derivados.Diferencia.StringFixed(2))
	assert.False(t, resp.GeneraAdeudo)

	stored := f.cortes.data[uuid.MustParse(resp.ID)]
	assert.Equal(t, creador, stored.CreadoPor)
	assert.Nil(t, stored.EfectivoEsperado, "derived values are not frozen while activo")
}

func TestCorteService_Abrir_SesionDuplicada(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, f.abrirReq(1, "4000"), uuid.New())
	require.NoError(t, err)

	_, err = f.svc.Abrir(ctx, f.abrirReq(1, "4000"), uuid.New())
	assert.ErrorIs(t, err, ErrConflicto)

	_, err = f.svc.Abrir(ctx, f.abrirReq(2, "4000"), uuid.New())
	assert.NoError(t, err, "a second session the same day is allowed")
}

func TestCorteService_Abrir_Validaciones(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	t.Run("negative amount", func(t *testing.T) {
		req := f.abrirReq(1, "4000")
		req.Gasto = dec("-1")
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.ErrorIs(t, err, ErrEstadoInvalido)
	})

	t.Run("sub-cent amount", func(t *testing.T) {
		req := f.abrirReq(1, "4000")
		req.Gasto = dec("10.005")
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.ErrorIs(t, err, ErrEstadoInvalido)
	})

	t.Run("amount beyond column range", func(t *testing.T) {
		req := f.abrirReq(1, "4000")
		req.VentaBruta = dec("10000000000")
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.ErrorIs(t, err, ErrEstadoInvalido)
	})

	t.Run("trailing zeros are fine", func(t *testing.T) {
		req := f.abrirReq(7, "4000")
		req.Gasto = dec("10.500")
		req.VentaBruta = dec("9999999999.99")
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.NoError(t, err)
	})

	t.Run("empleado from another empresa", func(t *testing.T) {
		otro := model.Empleado{EmpresaID: uuid.New(), Nombre: "Otro", Puesto: "cajero", Activo: true}
		require.NoError(t, f.empleados.Create(ctx, &otro))
		req := f.abrirReq(1, "4000")
		req.EmpleadoID = otro.ID.String()
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.ErrorIs(t, err, ErrEstadoInvalido)
	})

	t.Run("unknown empresa", func(t *testing.T) {
		req := f.abrirReq(1, "4000")
		req.EmpresaID = uuid.NewString()
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.ErrorIs(t, err, ErrNoEncontrado)
	})

	t.Run("fiscal account rejected", func(t *testing.T) {
		fiscal := model.Cuenta{EmpresaID: f.empresa.ID, Nombre: "Banco", Tipo: model.CuentaFiscal, Activo: true}
		require.NoError(t, f.cuentas.Create(ctx, nil, &fiscal))
		req := f.abrirReq(1, "4000")
		id := fiscal.ID.String()
		req.CuentaID = &id
		_, err := f.svc.Abrir(ctx, req, uuid.New())
		assert.ErrorIs(t, err, ErrEstadoInvalido)
	})
}

func TestCorteService_Actualizar(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "4150"), uuid.New())
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)

	resp, err := f.svc.Actualizar(ctx, id, dto.ActualizarCorteRequest{EfectivoReportado: decPtr("3900")})
	require.NoError(t, err)
	assert.Equal(t, "3900.00", resp.Captura.EfectivoReportado.StringFixed(2))
	assert.Equal(t, "5000.00", resp.Captura.VentaBruta.StringFixed(2), "untouched fields keep their value")
	assert.True(t, resp.GeneraAdeudo)

	_, err = f.svc.Actualizar(ctx, id, dto.ActualizarCorteRequest{Gasto: decPtr("-5")})
	assert.ErrorIs(t, err, ErrEstadoInvalido)

	_, err = f.svc.Actualizar(ctx, id, dto.ActualizarCorteRequest{Gasto: decPtr("0.001")})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestCorteService_Cerrar_ConFaltante(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "3900"), uuid.New())
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)

	obs := "faltó efectivo"
	resp, err := f.svc.Cerrar(ctx, id, dto.CerrarCorteRequest{Observaciones: &obs})
	require.NoError(t, err)

	assert.Equal(t, string(corte.EstadoCerrado), resp.Corte.Estado)
	assert.NotNil(t, resp.Corte.ClosedAt)
	assert.True(t, resp.Corte.GeneraAdeudo)
	require.NotNil(t, resp.Adeudo)
	assert.Equal(t, "100.00", resp.Adeudo.Monto.StringFixed(2))
	assert.Equal(t, AdeudoPendiente, resp.Adeudo.Estado)

	stored := f.cortes.data[id]
	require.NotNil(t, stored.Diferencia)
	assert.Equal(t, "-100.00", stored.Diferencia.StringFixed(2))
	assert.Equal(t, obs, *stored.Observaciones)

	require.Len(t, f.enqueuer.payloads, 1)
	assert.Equal(t, id.String(), f.enqueuer.payloads[0].CorteID)
	assert.Equal(t, "gerencia@ballesteros.mx", f.enqueuer.payloads[0].ToEmail)
}

func TestCorteService_Cerrar_SinFaltante(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "3950"), uuid.New())
	require.NoError(t, err)

	resp, err := f.svc.Cerrar(ctx, uuid.MustParse(abierto.ID), dto.CerrarCorteRequest{})
	require.NoError(t, err)
	assert.False(t, resp.Corte.GeneraAdeudo, "exactly -50 is within tolerance")
	assert.Nil(t, resp.Adeudo)
	assert.Empty(t, f.adeudos.data)
	assert.Empty(t, f.enqueuer.payloads)
}

func TestCorteService_Cerrar_PosteaCuentaCajera(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	req := f.abrirReq(1, "3900")
	req.Cobranza = dec("120")
	abierto, err := f.svc.Abrir(ctx, req, uuid.New())
	require.NoError(t, err)

	_, err = f.svc.Cerrar(ctx, uuid.MustParse(abierto.ID), dto.CerrarCorteRequest{})
	require.NoError(t, err)

	cuenta := f.cuentas.cuentas[f.cajera.ID]
	assert.Equal(t, "3900.00", cuenta.Saldo.StringFixed(2), "net effect equals the reported cash")

	movs := f.cuentas.movimientosDe(f.cajera.ID)
	require.Len(t, movs, 4)
	neto := decimal.Zero
	for _, m := range movs {
		assert.True(t, m.Monto.IsPositive(), "stored amounts are always positive")
		require.NotNil(t, m.CorteID)
		assert.Equal(t, abierto.ID, m.CorteID.String())
		if m.Entrada() {
			neto = neto.Add(m.Monto)
		} else {
			neto = neto.Sub(m.Monto)
		}
	}
	assert.Equal(t, "3900.00", neto.StringFixed(2))
}

func TestCorteService_Cerrar_CuentaInactiva(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "3900"), uuid.New())
	require.NoError(t, err)

	c := f.cuentas.cuentas[f.cajera.ID]
	c.Activo = false
	f.cuentas.cuentas[f.cajera.ID] = c

	_, err = f.svc.Cerrar(ctx, uuid.MustParse(abierto.ID), dto.CerrarCorteRequest{})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestCorteService_TransicionesInvalidas(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "4000"), uuid.New())
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)

	_, err = f.svc.Cerrar(ctx, id, dto.CerrarCorteRequest{})
	require.NoError(t, err)

	_, err = f.svc.Cerrar(ctx, id, dto.CerrarCorteRequest{})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
	_, err = f.svc.Anular(ctx, id, dto.AnularCorteRequest{Motivo: "error de captura"})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
	_, err = f.svc.Actualizar(ctx, id, dto.ActualizarCorteRequest{VentaBruta: decPtr("1")})
	assert.ErrorIs(t, err, ErrEstadoInvalido)

	_, err = f.svc.Cerrar(ctx, uuid.New(), dto.CerrarCorteRequest{})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestCorteService_Anular(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "1000"), uuid.New())
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)

	resp, err := f.svc.Anular(ctx, id, dto.AnularCorteRequest{Motivo: "sesión duplicada"})
	require.NoError(t, err)
	assert.Equal(t, string(corte.EstadoAnulado), resp.Estado)
	assert.NotNil(t, resp.VoidedAt)
	assert.Contains(t, *resp.Observaciones, "sesión duplicada")

	_, err = f.svc.Cerrar(ctx, id, dto.CerrarCorteRequest{})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
	assert.Empty(t, f.adeudos.data, "a voided corte never creates an adeudo")
	assert.Empty(t, f.cuentas.movs)
}

func TestCorteService_Calcular_UsaValoresCongelados(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	abierto, err := f.svc.Abrir(ctx, f.abrirReq(1, "3900"), uuid.New())
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)
	_, err = f.svc.Cerrar(ctx, id, dto.CerrarCorteRequest{})
	require.NoError(t, err)

	// tamper with the stored input; a closed corte keeps its frozen figures
	c := f.cortes.data[id]
	c.VentaBruta = dec("99999")
	f.cortes.data[id] = c

	calc, err := f.svc.Calcular(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "-100.00", calc.Derivados.Diferencia.StringFixed(2))
	assert.Equal(t, corte.ToleranciaAdeudo, calc.Tolerancia)
}

func TestCorteService_CalcularLibre(t *testing.T) {
	f := newCorteFixture(t)
	got := f.svc.CalcularLibre(dto.CapturaCorte{
		VentaBruta:        dec("1000"),
		EfectivoReportado: dec("900"),
		Transferencias:    dec("100"),
	})
	assert.Empty(t, got.CorteID)
	assert.True(t, got.Derivados.Diferencia.IsZero())
	assert.False(t, got.Derivados.GeneraAdeudo)
}

func TestCorteService_Listar(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	a, err := f.svc.Abrir(ctx, f.abrirReq(1, "4000"), uuid.New())
	require.NoError(t, err)
	_, err = f.svc.Abrir(ctx, f.abrirReq(2, "4000"), uuid.New())
	require.NoError(t, err)
	_, err = f.svc.Cerrar(ctx, uuid.MustParse(a.ID), dto.CerrarCorteRequest{})
	require.NoError(t, err)

	resp, err := f.svc.Listar(ctx, dto.CorteFilter{Estado: "cerrado", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, a.ID, resp.Data[0].ID)

	resp, err = f.svc.Listar(ctx, dto.CorteFilter{EmpresaID: f.empresa.ID.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.Equal(t, 50, resp.Limit, "zero limit falls back to the default")

	_, err = f.svc.Listar(ctx, dto.CorteFilter{Desde: "2026-03-10", Hasta: "2026-03-01"})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestCorteService_Reportes(t *testing.T) {
	f := newCorteFixture(t)
	ctx := context.Background()

	a, err := f.svc.Abrir(ctx, f.abrirReq(1, "3900"), uuid.New())
	require.NoError(t, err)
	id := uuid.MustParse(a.ID)
	_, err = f.svc.Cerrar(ctx, id, dto.CerrarCorteRequest{})
	require.NoError(t, err)

	buf, err := f.svc.ExportarExcel(ctx, dto.CorteFilter{})
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)

	path, err := f.svc.GenerarPDF(ctx, id)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = f.svc.GenerarPDF(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNoEncontrado))
}
