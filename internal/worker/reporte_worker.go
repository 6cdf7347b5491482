package worker

// Processes QueueReporteCorte: renders the PDF of a closed corte and emails
// it to the empresa's notification address.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ballesteros/internal/corte"
	"ballesteros/internal/infra"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReporteCortePayload is the job body sent to QueueReporteCorte.
type ReporteCortePayload struct {
	CorteID string `json:"corte_id"`
	ToEmail string `json:"to_email"`
}

// ReporteMailer is the part of infra.Mailer the worker needs.
type ReporteMailer interface {
	SendReporte(to, subject, body, filename string, pdf []byte) error
}

type ReporteWorker struct {
	cortes    repository.CorteRepository
	empresas  repository.EmpresaRepository
	empleados repository.EmpleadoRepository
	adeudos   repository.AdeudoRepository
	mailer    ReporteMailer
}

func NewReporteWorker(
	cortes repository.CorteRepository,
	empresas repository.EmpresaRepository,
	empleados repository.EmpleadoRepository,
	adeudos repository.AdeudoRepository,
	mailer ReporteMailer,
) *ReporteWorker {
	return &ReporteWorker{cortes: cortes, empresas: empresas, empleados: empleados, adeudos: adeudos, mailer: mailer}
}

func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteCortePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: payload inválido: %v", ErrPermanente, err)
	}
	if payload.ToEmail == "" {
		return fmt.Errorf("%w: to_email vacío", ErrPermanente)
	}
	id, err := uuid.Parse(payload.CorteID)
	if err != nil {
		return fmt.Errorf("%w: corte_id inválido", ErrPermanente)
	}

	c, err := w.cortes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: corte %s no existe", ErrPermanente, id)
		}
		return err
	}

	rep := infra.CorteReporte{Corte: c}
	if d, ok := c.Congelado(); ok {
		rep.Derivados = d
	} else {
		rep.Derivados = corte.Calcular(c.Entrada())
	}
	if e, err := w.empresas.FindByID(ctx, c.EmpresaID); err == nil {
		rep.Empresa = e.Nombre
	}
	if e, err := w.empleados.FindByID(ctx, c.EmpleadoID); err == nil {
		rep.Empleado = e.Nombre
	}
	if a, err := w.adeudos.FindByCorteID(ctx, c.ID); err == nil {
		rep.Adeudo = a
	}

	pdf, err := infra.CortePDF(rep)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Corte con faltante: %s sesión %d (%s)", rep.Empleado, c.NumeroSesion, c.Fecha.Format("02/01/2006"))
	body := fmt.Sprintf(
		"El corte de %s del %s (sesión %d) cerró con una diferencia de $%s.\n"+
			"Se generó un adeudo por $%s.\n",
		rep.Empleado, c.Fecha.Format("02/01/2006"), c.NumeroSesion,
		rep.Derivados.Diferencia.StringFixed(2), rep.Derivados.MontoAdeudo().StringFixed(2),
	)
	filename := fmt.Sprintf("corte_%s_%d.pdf", c.Fecha.Format("20060102"), c.NumeroSesion)

	if err := w.mailer.SendReporte(payload.ToEmail, subject, body, filename, pdf); err != nil {
		return fmt.Errorf("reporte_worker: send: %w", err)
	}
	log.Info().Str("corte_id", c.ID.String()).Str("to", payload.ToEmail).Msg("reporte_worker: reporte enviado")
	return nil
}
