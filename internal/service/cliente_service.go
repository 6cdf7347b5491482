package service

import (
	"context"
	"fmt"
	"strings"

	"ballesteros/internal/dto"
	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, busqueda string) ([]dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func mapCliente(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:            c.ID.String(),
		EmpresaID:     uuidPtrStr(c.EmpresaID),
		Nombre:        c.Nombre,
		RFC:           c.RFC,
		Telefono:      c.Telefono,
		Email:         c.Email,
		LimiteCredito: c.LimiteCredito,
		Activo:        c.Activo,
	}
}

func normalizarRFC(rfc *string) *string {
	if rfc == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*rfc))
	return &v
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	empresaID, err := parseUUIDPtr(req.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("empresa_id inválido: %w", ErrNoEncontrado)
	}
	c := &model.Cliente{
		EmpresaID:     empresaID,
		Nombre:        req.Nombre,
		RFC:           normalizarRFC(req.RFC),
		Telefono:      req.Telefono,
		Email:         req.Email,
		LimiteCredito: req.LimiteCredito,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, traducir(err, "cliente")
	}
	return mapCliente(c), nil
}

func (s *clienteService) Listar(ctx context.Context, busqueda string) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx, strings.TrimSpace(busqueda))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(list))
	for i := range list {
		resp[i] = *mapCliente(&list[i])
	}
	return resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "cliente")
	}
	return mapCliente(c), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "cliente")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.RFC != nil {
		c.RFC = normalizarRFC(req.RFC)
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.LimiteCredito != nil {
		c.LimiteCredito = *req.LimiteCredito
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return mapCliente(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir(err, "cliente")
	}
	return s.repo.SoftDelete(ctx, id)
}
