package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Stubs embed the interface and override only what the worker calls.

type stubCortes struct {
	repository.CorteRepository
	c *model.Corte
}

func (s stubCortes) FindByID(_ context.Context, id uuid.UUID) (*model.Corte, error) {
	if s.c == nil || s.c.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.c, nil
}

type stubEmpresas struct{ repository.EmpresaRepository }

func (stubEmpresas) FindByID(_ context.Context, id uuid.UUID) (*model.Empresa, error) {
	return &model.Empresa{ID: id, Nombre: "Ballesteros Centro"}, nil
}

type stubEmpleados struct{ repository.EmpleadoRepository }

func (stubEmpleados) FindByID(_ context.Context, id uuid.UUID) (*model.Empleado, error) {
	return &model.Empleado{ID: id, Nombre: "Lucía Pérez"}, nil
}

type stubAdeudos struct{ repository.AdeudoRepository }

func (stubAdeudos) FindByCorteID(_ context.Context, _ uuid.UUID) (*model.Adeudo, error) {
	return nil, gorm.ErrRecordNotFound
}

type sentMail struct {
	to, subject, body, filename string
	pdf                         []byte
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) SendReporte(to, subject, body, filename string, pdf []byte) error {
	m.sent = append(m.sent, sentMail{to, subject, body, filename, pdf})
	return m.err
}

func corteCerrado() *model.Corte {
	return &model.Corte{
		ID:                uuid.New(),
		EmpresaID:         uuid.New(),
		EmpleadoID:        uuid.New(),
		Fecha:             time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		NumeroSesion:      2,
		VentaBruta:        decimal.RequireFromString("5000"),
		EfectivoReportado: decimal.RequireFromString("3900"),
		TarjetaCredito:    decimal.RequireFromString("500"),
		TarjetaDebito:     decimal.RequireFromString("300"),
		Gasto:             decimal.RequireFromString("200"),
		Estado:            "cerrado",
	}
}

func payload(t *testing.T, p ReporteCortePayload) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

func TestReporteWorker_Envia(t *testing.T) {
	c := corteCerrado()
	mailer := &stubMailer{}
	w := NewReporteWorker(stubCortes{c: c}, stubEmpresas{}, stubEmpleados{}, stubAdeudos{}, mailer)

	err := w.Process(context.Background(), payload(t, ReporteCortePayload{CorteID: c.ID.String(), ToEmail: "gerencia@ballesteros.mx"}))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	m := mailer.sent[0]
	assert.Equal(t, "gerencia@ballesteros.mx", m.to)
	assert.Contains(t, m.subject, "Lucía Pérez")
	assert.Contains(t, m.body, "-100.00")
	assert.Equal(t, "corte_20260314_2.pdf", m.filename)
	assert.NotEmpty(t, m.pdf)
}

func TestReporteWorker_ErroresPermanentes(t *testing.T) {
	c := corteCerrado()
	w := NewReporteWorker(stubCortes{c: c}, stubEmpresas{}, stubEmpleados{}, stubAdeudos{}, &stubMailer{})
	ctx := context.Background()

	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"bad json", json.RawMessage(`{`)},
		{"missing email", payload(t, ReporteCortePayload{CorteID: c.ID.String()})},
		{"bad id", payload(t, ReporteCortePayload{CorteID: "x", ToEmail: "a@b.mx"})},
		{"unknown corte", payload(t, ReporteCortePayload{CorteID: uuid.NewString(), ToEmail: "a@b.mx"})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, w.Process(ctx, tc.raw), ErrPermanente)
		})
	}
}

func TestReporteWorker_FalloSMTPEsTransitorio(t *testing.T) {
	c := corteCerrado()
	w := NewReporteWorker(stubCortes{c: c}, stubEmpresas{}, stubEmpleados{}, stubAdeudos{}, &stubMailer{err: errors.New("connection refused")})

	err := w.Process(context.Background(), payload(t, ReporteCortePayload{CorteID: c.ID.String(), ToEmail: "a@b.mx"}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPermanente))
}
