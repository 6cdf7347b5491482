package service

import (
	"context"
	"fmt"

	"ballesteros/internal/dto"
	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
)

type EmpleadoService interface {
	Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	Listar(ctx context.Context, empresaID *uuid.UUID) ([]dto.EmpleadoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EmpleadoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type empleadoService struct {
	repo        repository.EmpleadoRepository
	empresaRepo repository.EmpresaRepository
}

func NewEmpleadoService(repo repository.EmpleadoRepository, empresaRepo repository.EmpresaRepository) EmpleadoService {
	return &empleadoService{repo: repo, empresaRepo: empresaRepo}
}

func mapEmpleado(e *model.Empleado) *dto.EmpleadoResponse {
	return &dto.EmpleadoResponse{
		ID:        e.ID.String(),
		EmpresaID: e.EmpresaID.String(),
		Nombre:    e.Nombre,
		Puesto:    e.Puesto,
		Telefono:  e.Telefono,
		Activo:    e.Activo,
	}
}

func (s *empleadoService) Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
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

	e := &model.Empleado{
		EmpresaID: empresaID,
		Nombre:    req.Nombre,
		Puesto:    req.Puesto,
		Telefono:  req.Telefono,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpleado(e), nil
}

func (s *empleadoService) Listar(ctx context.Context, empresaID *uuid.UUID) ([]dto.EmpleadoResponse, error) {
	list, err := s.repo.List(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpleadoResponse, len(list))
	for i := range list {
		resp[i] = *mapEmpleado(&list[i])
	}
	return resp, nil
}

func (s *empleadoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EmpleadoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "empleado")
	}
	return mapEmpleado(e), nil
}

func (s *empleadoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "empleado")
	}
	if req.Nombre != nil {
		e.Nombre = *req.Nombre
	}
	if req.Puesto != nil {
		e.Puesto = *req.Puesto
	}
	if req.Telefono != nil {
		e.Telefono = req.Telefono
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpleado(e), nil
}

func (s *empleadoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir(err, "empleado")
	}
	return s.repo.SoftDelete(ctx, id)
}
