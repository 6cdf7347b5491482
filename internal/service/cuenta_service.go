package service

import (
	"context"
	"fmt"
	"time"

	"ballesteros/internal/dto"
	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CuentaService interface {
	Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error)
	Listar(ctx context.Context, empresaID *uuid.UUID) ([]dto.CuentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CuentaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuentaRequest) (*dto.CuentaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	RegistrarMovimiento(ctx context.Context, cuentaID uuid.UUID, req dto.MovimientoCuentaRequest) (*dto.MovimientoCuentaResponse, error)
	ListarMovimientos(ctx context.Context, cuentaID uuid.UUID, page, limit int) (*dto.MovimientoListResponse, error)
	Traspaso(ctx context.Context, req dto.TraspasoRequest) (*dto.TraspasoResponse, error)
}

type cuentaService struct {
	repo          repository.CuentaRepository
	empresaRepo   repository.EmpresaRepository
	categoriaRepo repository.CategoriaRepository
}

func NewCuentaService(repo repository.CuentaRepository, empresaRepo repository.EmpresaRepository, categoriaRepo repository.CategoriaRepository) CuentaService {
	return &cuentaService{repo: repo, empresaRepo: empresaRepo, categoriaRepo: categoriaRepo}
}

func mapCuenta(c *model.Cuenta) *dto.CuentaResponse {
	return &dto.CuentaResponse{
		ID:        c.ID.String(),
		EmpresaID: c.EmpresaID.String(),
		Nombre:    c.Nombre,
		Tipo:      c.Tipo,
		Banco:     c.Banco,
		Saldo:     c.Saldo,
		Activo:    c.Activo,
	}
}

func mapMovimiento(m *model.MovimientoCuenta) dto.MovimientoCuentaResponse {
	return dto.MovimientoCuentaResponse{
		ID:          m.ID.String(),
		CuentaID:    m.CuentaID.String(),
		Tipo:        m.Tipo,
		Monto:       m.Monto,
		Concepto:    m.Concepto,
		CategoriaID: uuidPtrStr(m.CategoriaID),
		CorteID:     uuidPtrStr(m.CorteID),
		TraspasoID:  uuidPtrStr(m.TraspasoID),
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func (s *cuentaService) Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error) {
	empresaID, err := uuid.Parse(req.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("empresa_id inválido: %w", ErrNoEncontrado)
	}
	empresa, err := s.empresaRepo.FindByID(ctx, empresaID)
	if err != nil {
		return nil, traducir(err, "empresa")
	}
	if !empresa.Activo {
		return nil, fmt.Errorf("la empresa %s está inactiva: %w", empresa.Nombre, ErrEstadoInvalido)
	}

	c := &model.Cuenta{
		EmpresaID: empresaID,
		Nombre:    req.Nombre,
		Tipo:      req.Tipo,
		Banco:     req.Banco,
		Activo:    true,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, c); err != nil {
			return err
		}
		movs := agregarAsiento(nil, model.MovIngreso, req.SaldoInicial, "Saldo inicial")
		if len(movs) == 0 {
			return nil
		}
		cuenta, err := postear(ctx, s.repo, tx, c.ID, movs)
		if err != nil {
			return err
		}
		c.Saldo = cuenta.Saldo
		return nil
	})
	if err != nil {
		return nil, traducir(err, "cuenta")
	}
	return mapCuenta(c), nil
}

func (s *cuentaService) Listar(ctx context.Context, empresaID *uuid.UUID) ([]dto.CuentaResponse, error) {
	list, err := s.repo.List(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuentaResponse, len(list))
	for i := range list {
		resp[i] = *mapCuenta(&list[i])
	}
	return resp, nil
}

func (s *cuentaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CuentaResponse, error) {
	c, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, traducir(err, "cuenta")
	}
	return mapCuenta(c), nil
}

func (s *cuentaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuentaRequest) (*dto.CuentaResponse, error) {
	c, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, traducir(err, "cuenta")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Banco != nil {
		c.Banco = req.Banco
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return mapCuenta(c), nil
}

// Desactivar only accepts accounts with a zero balance. The row stays locked
// between the check and the update so no posting can slip in.
func (s *cuentaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return traducir(err, "cuenta")
		}
		if !c.Saldo.IsZero() {
			return fmt.Errorf("la cuenta %s tiene saldo %s: %w", c.Nombre, c.Saldo.StringFixed(2), ErrEstadoInvalido)
		}
		return s.repo.SoftDelete(ctx, tx, id)
	})
}

func (s *cuentaService) RegistrarMovimiento(ctx context.Context, cuentaID uuid.UUID, req dto.MovimientoCuentaRequest) (*dto.MovimientoCuentaResponse, error) {
	categoriaID, err := parseUUIDPtr(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("categoria_id inválido: %w", ErrNoEncontrado)
	}
	if categoriaID != nil {
		cat, err := s.categoriaRepo.ObtenerPorID(ctx, *categoriaID)
		if err != nil {
			return nil, traducir(err, "categoría")
		}
		if !cat.Admite(req.Tipo) {
			return nil, fmt.Errorf("la categoría %s no admite movimientos de tipo %s: %w", cat.Nombre, req.Tipo, ErrEstadoInvalido)
		}
	}

	mov := model.MovimientoCuenta{
		Tipo:        req.Tipo,
		Monto:       req.Monto,
		Concepto:    req.Concepto,
		CategoriaID: categoriaID,
	}
	movs := []model.MovimientoCuenta{mov}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		_, err := postear(ctx, s.repo, tx, cuentaID, movs)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("cuenta_id", cuentaID.String()).
		Str("tipo", req.Tipo).
		Str("monto", req.Monto.StringFixed(2)).
		Msg("movimiento registrado")
	resp := mapMovimiento(&movs[0])
	return &resp, nil
}

func (s *cuentaService) ListarMovimientos(ctx context.Context, cuentaID uuid.UUID, page, limit int) (*dto.MovimientoListResponse, error) {
	if _, err := s.repo.FindByID(ctx, nil, cuentaID); err != nil {
		return nil, traducir(err, "cuenta")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	movs, total, err := s.repo.ListMovimientos(ctx, cuentaID, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoCuentaResponse, len(movs))
	for i := range movs {
		data[i] = mapMovimiento(&movs[i])
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// Traspaso moves money between two accounts of the same empresa. Both legs
// share a TraspasoID and are written in one transaction.
func (s *cuentaService) Traspaso(ctx context.Context, req dto.TraspasoRequest) (*dto.TraspasoResponse, error) {
	origenID, err := uuid.Parse(req.CuentaOrigenID)
	if err != nil {
		return nil, fmt.Errorf("cuenta_origen_id inválido: %w", ErrNoEncontrado)
	}
	destinoID, err := uuid.Parse(req.CuentaDestinoID)
	if err != nil {
		return nil, fmt.Errorf("cuenta_destino_id inválido: %w", ErrNoEncontrado)
	}
	if origenID == destinoID {
		return nil, fmt.Errorf("origen y destino son la misma cuenta: %w", ErrEstadoInvalido)
	}

	origen, err := s.repo.FindByID(ctx, nil, origenID)
	if err != nil {
		return nil, traducir(err, "cuenta origen")
	}
	destino, err := s.repo.FindByID(ctx, nil, destinoID)
	if err != nil {
		return nil, traducir(err, "cuenta destino")
	}
	if origen.EmpresaID != destino.EmpresaID {
		return nil, fmt.Errorf("las cuentas pertenecen a empresas distintas: %w", ErrEstadoInvalido)
	}

	traspasoID := uuid.New()
	salida := []model.MovimientoCuenta{{
		Tipo: model.MovTraspasoSalida, Monto: req.Monto, Concepto: req.Concepto, TraspasoID: &traspasoID,
	}}
	entrada := []model.MovimientoCuenta{{
		Tipo: model.MovTraspasoEntrada, Monto: req.Monto, Concepto: req.Concepto, TraspasoID: &traspasoID,
	}}

	// lock in a stable order so concurrent opposite transfers cannot deadlock
	pasos := []struct {
		id   uuid.UUID
		movs []model.MovimientoCuenta
	}{{origenID, salida}, {destinoID, entrada}}
	if destinoID.String() < origenID.String() {
		pasos[0], pasos[1] = pasos[1], pasos[0]
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, p := range pasos {
			if _, err := postear(ctx, s.repo, tx, p.id, p.movs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("traspaso_id", traspasoID.String()).
		Str("origen", origenID.String()).
		Str("destino", destinoID.String()).
		Str("monto", req.Monto.StringFixed(2)).
		Msg("traspaso registrado")

	return &dto.TraspasoResponse{
		TraspasoID: traspasoID.String(),
		Salida:     mapMovimiento(&salida[0]),
		Entrada:    mapMovimiento(&entrada[0]),
	}, nil
}
