package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ballesteros/internal/dto"
	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpresaService interface {
	Crear(ctx context.Context, req dto.CrearEmpresaRequest) (*dto.EmpresaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.EmpresaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EmpresaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpresaRequest) (*dto.EmpresaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type empresaService struct {
	repo repository.EmpresaRepository
}

func NewEmpresaService(repo repository.EmpresaRepository) EmpresaService {
	return &empresaService{repo: repo}
}

func mapEmpresa(e *model.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:                  e.ID.String(),
		Nombre:              e.Nombre,
		RFC:                 e.RFC,
		Direccion:           e.Direccion,
		Telefono:            e.Telefono,
		EmailNotificaciones: e.EmailNotificaciones,
		Activo:              e.Activo,
	}
}

func (s *empresaService) Crear(ctx context.Context, req dto.CrearEmpresaRequest) (*dto.EmpresaResponse, error) {
	rfc := strings.ToUpper(strings.TrimSpace(req.RFC))
	existing, err := s.repo.FindByRFC(ctx, rfc)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe una empresa con RFC %s: %w", rfc, ErrConflicto)
	}

	e := &model.Empresa{
		Nombre:              req.Nombre,
		RFC:                 rfc,
		Direccion:           req.Direccion,
		Telefono:            req.Telefono,
		EmailNotificaciones: req.EmailNotificaciones,
		Activo:              true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, traducir(err, "empresa")
	}
	return mapEmpresa(e), nil
}

func (s *empresaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.EmpresaResponse, error) {
	list, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpresaResponse, len(list))
	for i := range list {
		resp[i] = *mapEmpresa(&list[i])
	}
	return resp, nil
}

func (s *empresaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EmpresaResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "empresa")
	}
	return mapEmpresa(e), nil
}

func (s *empresaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpresaRequest) (*dto.EmpresaResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "empresa")
	}
	if req.Nombre != nil {
		e.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		e.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		e.Telefono = req.Telefono
	}
	if req.EmailNotificaciones != nil {
		e.EmailNotificaciones = req.EmailNotificaciones
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpresa(e), nil
}

func (s *empresaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.setActivo(ctx, id, false)
}

func (s *empresaService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.setActivo(ctx, id, true)
}

func (s *empresaService) setActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir(err, "empresa")
	}
	return s.repo.SetActivo(ctx, id, activo)
}
