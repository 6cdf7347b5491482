package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"ballesteros/internal/corte"
	"ballesteros/internal/dto"
	"ballesteros/internal/infra"
	"ballesteros/internal/model"
	"ballesteros/internal/repository"
	"ballesteros/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxExportacion caps the rows of one Excel export.
const maxExportacion = 10000

// ReporteEnqueuer is satisfied by *worker.Dispatcher.
type ReporteEnqueuer interface {
	EnqueueReporteCorte(ctx context.Context, payload worker.ReporteCortePayload) error
}

type CorteService interface {
	Abrir(ctx context.Context, req dto.AbrirCorteRequest, creadoPor uuid.UUID) (*dto.CorteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCorteRequest) (*dto.CorteResponse, error)
	Calcular(ctx context.Context, id uuid.UUID) (*dto.CalculoCorteResponse, error)
	CalcularLibre(captura dto.CapturaCorte) dto.CalculoCorteResponse
	Cerrar(ctx context.Context, id uuid.UUID, req dto.CerrarCorteRequest) (*dto.CierreCorteResponse, error)
	Anular(ctx context.Context, id uuid.UUID, req dto.AnularCorteRequest) (*dto.CorteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CorteResponse, error)
	Listar(ctx context.Context, f dto.CorteFilter) (*dto.CorteListResponse, error)
	ExportarExcel(ctx context.Context, f dto.CorteFilter) (*bytes.Buffer, error)
	GenerarPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type corteService struct {
	repo         repository.CorteRepository
	adeudoRepo   repository.AdeudoRepository
	empresaRepo  repository.EmpresaRepository
	empleadoRepo repository.EmpleadoRepository
	cuentaRepo   repository.CuentaRepository
	dispatcher   ReporteEnqueuer
	pdfPath      string
}

func NewCorteService(
	repo repository.CorteRepository,
	adeudoRepo repository.AdeudoRepository,
	empresaRepo repository.EmpresaRepository,
	empleadoRepo repository.EmpleadoRepository,
	cuentaRepo repository.CuentaRepository,
	dispatcher ReporteEnqueuer,
	pdfPath string,
) CorteService {
	return &corteService{
		repo:         repo,
		adeudoRepo:   adeudoRepo,
		empresaRepo:  empresaRepo,
		empleadoRepo: empleadoRepo,
		cuentaRepo:   cuentaRepo,
		dispatcher:   dispatcher,
		pdfPath:      pdfPath,
	}
}

// derivados returns the frozen values of a closed corte, or a live
// calculation otherwise.
func derivados(c *model.Corte) corte.Derivados {
	if d, ok := c.Congelado(); ok {
		return d
	}
	return corte.Calcular(c.Entrada())
}

func mapCorte(c *model.Corte) *dto.CorteResponse {
	d := derivados(c)
	resp := &dto.CorteResponse{
		ID:           c.ID.String(),
		EmpresaID:    c.EmpresaID.String(),
		EmpleadoID:   c.EmpleadoID.String(),
		CuentaID:     uuidPtrStr(c.CuentaID),
		Fecha:        c.Fecha.Format("2006-01-02"),
		NumeroSesion: c.NumeroSesion,
		Captura: dto.CapturaCorte{
			VentaBruta:        c.VentaBruta,
			EfectivoReportado: c.EfectivoReportado,
			VentasCredito:     c.VentasCredito,
			VentasPlataforma:  c.VentasPlataforma,
			Cobranza:          c.Cobranza,
			TarjetaCredito:    c.TarjetaCredito,
			TarjetaDebito:     c.TarjetaDebito,
			Transferencias:    c.Transferencias,
			RetiroParcial:     c.RetiroParcial,
			Gasto:             c.Gasto,
			Compra:            c.Compra,
			Prestamo:          c.Prestamo,
			DescuentoCortesia: c.DescuentoCortesia,
			OtrosRetiros:      c.OtrosRetiros,
		},
		Etiqueta:      c.Etiqueta,
		Estado:        c.Estado,
		GeneraAdeudo:  d.GeneraAdeudo,
		Derivados:     &d,
		Observaciones: c.Observaciones,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.ClosedAt != nil {
		s := c.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &s
	}
	if c.VoidedAt != nil {
		s := c.VoidedAt.Format(time.RFC3339)
		resp.VoidedAt = &s
	}
	return resp
}

// montoMaximo is the largest value a decimal(12,2) column holds.
var montoMaximo = decimal.RequireFromString("9999999999.99")

func validarCaptura(e corte.Entrada) error {
	campos := map[string]decimal.Decimal{
		"venta_bruta": e.VentaBruta, "efectivo_reportado": e.EfectivoReportado,
		"ventas_credito": e.VentasCredito, "ventas_plataforma": e.VentasPlataforma,
		"cobranza": e.Cobranza, "tarjeta_credito": e.TarjetaCredito,
		"tarjeta_debito": e.TarjetaDebito, "transferencias": e.Transferencias,
		"retiro_parcial": e.RetiroParcial, "gasto": e.Gasto, "compra": e.Compra,
		"prestamo": e.Prestamo, "descuento_cortesia": e.DescuentoCortesia,
		"otros_retiros": e.OtrosRetiros,
	}
	for campo, v := range campos {
		switch {
		case v.IsNegative():
			return fmt.Errorf("%s no puede ser negativo: %w", campo, ErrEstadoInvalido)
		case !v.Equal(v.Round(2)):
			return fmt.Errorf("%s admite a lo más dos decimales: %w", campo, ErrEstadoInvalido)
		case v.GreaterThan(montoMaximo):
			return fmt.Errorf("%s excede %s: %w", campo, montoMaximo.StringFixed(2), ErrEstadoInvalido)
		}
	}
	return nil
}

func asignarCaptura(c *model.Corte, e corte.Entrada) {
	c.VentaBruta = e.VentaBruta
	c.EfectivoReportado = e.EfectivoReportado
	c.VentasCredito = e.VentasCredito
	c.VentasPlataforma = e.VentasPlataforma
	c.Cobranza = e.Cobranza
	c.TarjetaCredito = e.TarjetaCredito
	c.TarjetaDebito = e.TarjetaDebito
	c.Transferencias = e.Transferencias
	c.RetiroParcial = e.RetiroParcial
	c.Gasto = e.Gasto
	c.Compra = e.Compra
	c.Prestamo = e.Prestamo
	c.DescuentoCortesia = e.DescuentoCortesia
	c.OtrosRetiros = e.OtrosRetiros
}

// verificarCuentaCajera checks that cuentaID is an active cajera account of
// empresaID.
func (s *corteService) verificarCuentaCajera(ctx context.Context, cuentaID, empresaID uuid.UUID) error {
	cuenta, err := s.cuentaRepo.FindByID(ctx, nil, cuentaID)
	if err != nil {
		return traducir(err, "cuenta")
	}
	if cuenta.EmpresaID != empresaID || cuenta.Tipo != model.CuentaCajera || !cuenta.Activo {
		return fmt.Errorf("la cuenta %s no es una cuenta cajera activa de la empresa: %w", cuenta.Nombre, ErrEstadoInvalido)
	}
	return nil
}

// ── Abrir ────────────────────────────────────────────────────────────────────

func (s *corteService) Abrir(ctx context.Context, req dto.AbrirCorteRequest, creadoPor uuid.UUID) (*dto.CorteResponse, error) {
	empresaID, err := uuid.Parse(req.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("empresa_id inválido: %w", ErrNoEncontrado)
	}
	empleadoID, err := uuid.Parse(req.EmpleadoID)
	if err != nil {
		return nil, fmt.Errorf("empleado_id inválido: %w", ErrNoEncontrado)
	}
	cuentaID, err := parseUUIDPtr(req.CuentaID)
	if err != nil {
		return nil, fmt.Errorf("cuenta_id inválido: %w", ErrNoEncontrado)
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: %w", req.Fecha, ErrEstadoInvalido)
	}
	entrada := req.CapturaCorte.Entrada()
	if err := validarCaptura(entrada); err != nil {
		return nil, err
	}

	empresa, err := s.empresaRepo.FindByID(ctx, empresaID)
	if err != nil {
		return nil, traducir(err, "empresa")
	}
	if !empresa.Activo {
		return nil, fmt.Errorf("la empresa %s está inactiva: %w", empresa.Nombre, ErrEstadoInvalido)
	}
	empleado, err := s.empleadoRepo.FindByID(ctx, empleadoID)
	if err != nil {
		return nil, traducir(err, "empleado")
	}
	if !empleado.Activo {
		return nil, fmt.Errorf("el empleado %s está inactivo: %w", empleado.Nombre, ErrEstadoInvalido)
	}
	if empleado.EmpresaID != empresaID {
		return nil, fmt.Errorf("el empleado %s no pertenece a %s: %w", empleado.Nombre, empresa.Nombre, ErrEstadoInvalido)
	}
	if cuentaID != nil {
		if err := s.verificarCuentaCajera(ctx, *cuentaID, empresaID); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.FindBySesion(ctx, empresaID, empleadoID, fecha, req.NumeroSesion); err == nil {
		return nil, fmt.Errorf("ya existe el corte %s sesión %d para %s: %w",
			req.Fecha, req.NumeroSesion, empleado.Nombre, ErrConflicto)
	}

	c := &model.Corte{
		EmpresaID:    empresaID,
		EmpleadoID:   empleadoID,
		Fecha:        fecha,
		NumeroSesion: req.NumeroSesion,
		CuentaID:     cuentaID,
		Etiqueta:     req.Etiqueta,
		Estado:       string(corte.EstadoActivo),
		CreadoPor:    creadoPor,
	}
	asignarCaptura(c, entrada)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, traducir(err, "corte")
	}

	log.Info().
		Str("corte_id", c.ID.String()).
		Str("empleado", empleado.Nombre).
		Str("fecha", req.Fecha).
		Int("sesion", c.NumeroSesion).
		Msg("corte abierto")
	return mapCorte(c), nil
}

// ── Actualizar ───────────────────────────────────────────────────────────────

func (s *corteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCorteRequest) (*dto.CorteResponse, error) {
	var actualizado *model.Corte
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return traducir(err, "corte")
		}
		if !corte.Estado(c.Estado).Editable() {
			return fmt.Errorf("el corte está %s y no admite cambios: %w", c.Estado, ErrEstadoInvalido)
		}

		e := c.Entrada()
		for _, p := range []struct {
			dst *decimal.Decimal
			src *decimal.Decimal
		}{
			{&e.VentaBruta, req.VentaBruta},
			{&e.EfectivoReportado, req.EfectivoReportado},
			{&e.VentasCredito, req.VentasCredito},
			{&e.VentasPlataforma, req.VentasPlataforma},
			{&e.Cobranza, req.Cobranza},
			{&e.TarjetaCredito, req.TarjetaCredito},
			{&e.TarjetaDebito, req.TarjetaDebito},
			{&e.Transferencias, req.Transferencias},
			{&e.RetiroParcial, req.RetiroParcial},
			{&e.Gasto, req.Gasto},
			{&e.Compra, req.Compra},
			{&e.Prestamo, req.Prestamo},
			{&e.DescuentoCortesia, req.DescuentoCortesia},
			{&e.OtrosRetiros, req.OtrosRetiros},
		} {
			if p.src != nil {
				*p.dst = *p.src
			}
		}
		if err := validarCaptura(e); err != nil {
			return err
		}
		asignarCaptura(c, e)

		if req.Etiqueta != nil {
			c.Etiqueta = req.Etiqueta
		}
		if req.CuentaID != nil {
			cuentaID, err := parseUUIDPtr(req.CuentaID)
			if err != nil {
				return fmt.Errorf("cuenta_id inválido: %w", ErrNoEncontrado)
			}
			if cuentaID != nil {
				if err := s.verificarCuentaCajera(ctx, *cuentaID, c.EmpresaID); err != nil {
					return err
				}
			}
			c.CuentaID = cuentaID
		}

		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}
		actualizado = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapCorte(actualizado), nil
}

// ── Calcular ─────────────────────────────────────────────────────────────────

// Calcular previews the figures of a stored corte without changing it.
func (s *corteService) Calcular(ctx context.Context, id uuid.UUID) (*dto.CalculoCorteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "corte")
	}
	return &dto.CalculoCorteResponse{
		CorteID:    c.ID.String(),
		Derivados:  derivados(c),
		Tolerancia: corte.ToleranciaAdeudo,
	}, nil
}

func (s *corteService) CalcularLibre(captura dto.CapturaCorte) dto.CalculoCorteResponse {
	return dto.CalculoCorteResponse{
		Derivados:  corte.Calcular(captura.Entrada()),
		Tolerancia: corte.ToleranciaAdeudo,
	}
}

// ── Cerrar ───────────────────────────────────────────────────────────────────
// One transaction:
//  1. lock the row and check it is activo
//  2. calculate and freeze the derived values, estado=cerrado
//  3. create the adeudo when the shortfall exceeds the tolerance
//  4. post the ledger entries to the cajera account, if any
// After commit the report job is enqueued (best effort).

// asientosCierre returns the entries a closing corte posts to its cajera
// account. Their net effect on the balance equals EfectivoReportado.
func asientosCierre(c *model.Corte, d corte.Derivados) []model.MovimientoCuenta {
	etiqueta := fmt.Sprintf("corte %s sesión %d", c.Fecha.Format("2006-01-02"), c.NumeroSesion)

	var movs []model.MovimientoCuenta
	movs = agregarAsiento(movs, model.MovIngreso, d.TotalVentasRegistradas, "Ventas registradas "+etiqueta)
	movs = agregarAsiento(movs, model.MovIngreso, c.Cobranza, "Cobranza "+etiqueta)
	movs = agregarAsiento(movs, model.MovEgreso, d.TotalVentasNoEfectivo, "Ventas no efectivo "+etiqueta)
	movs = agregarAsiento(movs, model.MovEgreso, d.TotalSalidasReales, "Salidas de caja "+etiqueta)
	for i := range movs {
		movs[i].CorteID = &c.ID
	}
	return movs
}

func (s *corteService) Cerrar(ctx context.Context, id uuid.UUID, req dto.CerrarCorteRequest) (*dto.CierreCorteResponse, error) {
	var (
		cerrado *model.Corte
		adeudo  *model.Adeudo
	)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return traducir(err, "corte")
		}
		nuevo, err := corte.Estado(c.Estado).Transicionar(corte.EstadoCerrado)
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrEstadoInvalido)
		}

		d := corte.Calcular(c.Entrada())
		c.Congelar(d)
		now := time.Now()
		c.Estado = string(nuevo)
		c.ClosedAt = &now
		if req.Observaciones != nil {
			c.Observaciones = req.Observaciones
		}
		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}

		if d.GeneraAdeudo {
			adeudo = &model.Adeudo{
				CorteID:    c.ID,
				EmpresaID:  c.EmpresaID,
				EmpleadoID: c.EmpleadoID,
				Monto:      d.MontoAdeudo(),
				Estado:     AdeudoPendiente,
			}
			if err := s.adeudoRepo.Create(ctx, tx, adeudo); err != nil {
				return traducir(err, "adeudo")
			}
		}

		if c.CuentaID != nil {
			if _, err := postear(ctx, s.cuentaRepo, tx, *c.CuentaID, asientosCierre(c, d)); err != nil {
				return err
			}
		}

		cerrado = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("corte_id", cerrado.ID.String()).
		Str("diferencia", cerrado.Diferencia.StringFixed(2)).
		Bool("genera_adeudo", cerrado.GeneraAdeudo).
		Msg("corte cerrado")

	resp := &dto.CierreCorteResponse{Corte: *mapCorte(cerrado)}
	if adeudo != nil {
		log.Warn().
			Str("corte_id", cerrado.ID.String()).
			Str("monto", adeudo.Monto.StringFixed(2)).
			Msg("adeudo generado")
		resp.Adeudo = mapAdeudo(adeudo)
		s.notificarAdeudo(ctx, cerrado)
	}
	return resp, nil
}

// notificarAdeudo enqueues the report mail. Failures are logged only: the
// corte is already committed.
func (s *corteService) notificarAdeudo(ctx context.Context, c *model.Corte) {
	if s.dispatcher == nil {
		return
	}
	empresa, err := s.empresaRepo.FindByID(ctx, c.EmpresaID)
	if err != nil {
		log.Error().Err(err).Str("corte_id", c.ID.String()).Msg("notificación: empresa no encontrada")
		return
	}
	if empresa.EmailNotificaciones == nil || *empresa.EmailNotificaciones == "" {
		return
	}
	payload := worker.ReporteCortePayload{CorteID: c.ID.String(), ToEmail: *empresa.EmailNotificaciones}
	if err := s.dispatcher.EnqueueReporteCorte(ctx, payload); err != nil {
		log.Error().Err(err).Str("corte_id", c.ID.String()).Msg("notificación: no se pudo encolar el reporte")
	}
}

// ── Anular ───────────────────────────────────────────────────────────────────

func (s *corteService) Anular(ctx context.Context, id uuid.UUID, req dto.AnularCorteRequest) (*dto.CorteResponse, error) {
	var anulado *model.Corte
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return traducir(err, "corte")
		}
		nuevo, err := corte.Estado(c.Estado).Transicionar(corte.EstadoAnulado)
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrEstadoInvalido)
		}
		now := time.Now()
		c.Estado = string(nuevo)
		c.VoidedAt = &now
		motivo := "Anulado: " + req.Motivo
		if c.Observaciones != nil && *c.Observaciones != "" {
			motivo = *c.Observaciones + "\n" + motivo
		}
		c.Observaciones = &motivo
		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}
		anulado = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("corte_id", anulado.ID.String()).Str("motivo", req.Motivo).Msg("corte anulado")
	return mapCorte(anulado), nil
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *corteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CorteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "corte")
	}
	return mapCorte(c), nil
}

func toRepoFilter(f dto.CorteFilter) (repository.CorteFilter, error) {
	out := repository.CorteFilter{Estado: f.Estado, Page: f.Page, Limit: f.Limit}
	if out.Page < 1 {
		out.Page = 1
	}
	if out.Limit < 1 || out.Limit > 500 {
		out.Limit = 50
	}
	if f.EmpresaID != "" {
		id, err := uuid.Parse(f.EmpresaID)
		if err != nil {
			return out, fmt.Errorf("empresa_id inválido: %w", ErrNoEncontrado)
		}
		out.EmpresaID = &id
	}
	if f.EmpleadoID != "" {
		id, err := uuid.Parse(f.EmpleadoID)
		if err != nil {
			return out, fmt.Errorf("empleado_id inválido: %w", ErrNoEncontrado)
		}
		out.EmpleadoID = &id
	}
	if f.Desde != "" {
		t, err := time.Parse("2006-01-02", f.Desde)
		if err != nil {
			return out, fmt.Errorf("desde inválido: %w", ErrEstadoInvalido)
		}
		out.Desde = &t
	}
	if f.Hasta != "" {
		t, err := time.Parse("2006-01-02", f.Hasta)
		if err != nil {
			return out, fmt.Errorf("hasta inválido: %w", ErrEstadoInvalido)
		}
		out.Hasta = &t
	}
	if out.Desde != nil && out.Hasta != nil && out.Hasta.Before(*out.Desde) {
		return out, fmt.Errorf("hasta es anterior a desde: %w", ErrEstadoInvalido)
	}
	return out, nil
}

func (s *corteService) Listar(ctx context.Context, f dto.CorteFilter) (*dto.CorteListResponse, error) {
	filter, err := toRepoFilter(f)
	if err != nil {
		return nil, err
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CorteResponse, len(list))
	for i := range list {
		data[i] = *mapCorte(&list[i])
	}
	return &dto.CorteListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// nombres resolves empresa and empleado names, caching lookups across rows.
type nombres struct {
	s         *corteService
	empresas  map[uuid.UUID]string
	empleados map[uuid.UUID]string
}

func (s *corteService) nuevosNombres() *nombres {
	return &nombres{s: s, empresas: map[uuid.UUID]string{}, empleados: map[uuid.UUID]string{}}
}

func (n *nombres) reporte(ctx context.Context, c *model.Corte) infra.CorteReporte {
	empresa, ok := n.empresas[c.EmpresaID]
	if !ok {
		if e, err := n.s.empresaRepo.FindByID(ctx, c.EmpresaID); err == nil {
			empresa = e.Nombre
		}
		n.empresas[c.EmpresaID] = empresa
	}
	empleado, ok := n.empleados[c.EmpleadoID]
	if !ok {
		if e, err := n.s.empleadoRepo.FindByID(ctx, c.EmpleadoID); err == nil {
			empleado = e.Nombre
		}
		n.empleados[c.EmpleadoID] = empleado
	}
	return infra.CorteReporte{Corte: c, Empresa: empresa, Empleado: empleado, Derivados: derivados(c)}
}

func (s *corteService) ExportarExcel(ctx context.Context, f dto.CorteFilter) (*bytes.Buffer, error) {
	filter, err := toRepoFilter(f)
	if err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = 1, maxExportacion

	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if total > maxExportacion {
		log.Warn().Int64("total", total).Int("max", maxExportacion).Msg("exportación truncada")
	}

	n := s.nuevosNombres()
	rows := make([]infra.CorteReporte, len(list))
	for i := range list {
		rows[i] = n.reporte(ctx, &list[i])
	}
	return infra.ExportarCortesExcel(rows)
}

// GenerarPDF renders the corte to PDF_STORAGE_PATH and returns the file path.
func (s *corteService) GenerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", traducir(err, "corte")
	}
	rep := s.nuevosNombres().reporte(ctx, c)
	if a, err := s.adeudoRepo.FindByCorteID(ctx, c.ID); err == nil {
		rep.Adeudo = a
	}
	return infra.GuardarCortePDF(rep, s.pdfPath)
}
