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

// Adeudo states.
const (
	AdeudoPendiente = "pendiente"
	AdeudoLiquidado = "liquidado"
)

type AdeudoService interface {
	Listar(ctx context.Context, f dto.AdeudoFilter) ([]dto.AdeudoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.AdeudoResponse, error)
	Liquidar(ctx context.Context, id uuid.UUID, req dto.LiquidarAdeudoRequest) (*dto.AdeudoResponse, error)
}

type adeudoService struct {
	repo repository.AdeudoRepository
}

func NewAdeudoService(repo repository.AdeudoRepository) AdeudoService {
	return &adeudoService{repo: repo}
}

func mapAdeudo(a *model.Adeudo) *dto.AdeudoResponse {
	resp := &dto.AdeudoResponse{
		ID:         a.ID.String(),
		CorteID:    a.CorteID.String(),
		EmpresaID:  a.EmpresaID.String(),
		EmpleadoID: a.EmpleadoID.String(),
		Monto:      a.Monto,
		Estado:     a.Estado,
		Notas:      a.Notas,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
	if a.LiquidadoAt != nil {
		s := a.LiquidadoAt.Format(time.RFC3339)
		resp.LiquidadoAt = &s
	}
	return resp
}

func (s *adeudoService) Listar(ctx context.Context, f dto.AdeudoFilter) ([]dto.AdeudoResponse, error) {
	filter := repository.AdeudoFilter{Estado: f.Estado}
	if f.EmpresaID != "" {
		id, err := uuid.Parse(f.EmpresaID)
		if err != nil {
			return nil, fmt.Errorf("empresa_id inválido: %w", ErrNoEncontrado)
		}
		filter.EmpresaID = &id
	}
	if f.EmpleadoID != "" {
		id, err := uuid.Parse(f.EmpleadoID)
		if err != nil {
			return nil, fmt.Errorf("empleado_id inválido: %w", ErrNoEncontrado)
		}
		filter.EmpleadoID = &id
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AdeudoResponse, len(list))
	for i := range list {
		resp[i] = *mapAdeudo(&list[i])
	}
	return resp, nil
}

func (s *adeudoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.AdeudoResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "adeudo")
	}
	return mapAdeudo(a), nil
}

// Liquidar moves a pendiente adeudo to liquidado. Already settled debts are
// rejected with ErrEstadoInvalido. The row is locked so two concurrent
// settlements cannot both pass the estado check.
func (s *adeudoService) Liquidar(ctx context.Context, id uuid.UUID, req dto.LiquidarAdeudoRequest) (*dto.AdeudoResponse, error) {
	var a *model.Adeudo
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		a, err = s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return traducir(err, "adeudo")
		}
		if a.Estado != AdeudoPendiente {
			return fmt.Errorf("el adeudo ya está %s: %w", a.Estado, ErrEstadoInvalido)
		}

		now := time.Now()
		a.Estado = AdeudoLiquidado
		a.LiquidadoAt = &now
		if req.Notas != nil {
			a.Notas = req.Notas
		}
		return s.repo.Update(ctx, tx, a)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("adeudo_id", a.ID.String()).
		Str("empleado_id", a.EmpleadoID.String()).
		Str("monto", a.Monto.StringFixed(2)).
		Msg("adeudo liquidado")
	return mapAdeudo(a), nil
}
