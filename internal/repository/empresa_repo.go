package repository

import (
	"context"

	"ballesteros/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpresaRepository interface {
	Create(ctx context.Context, e *model.Empresa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empresa, error)
	FindByRFC(ctx context.Context, rfc string) (*model.Empresa, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Empresa, error)
	Update(ctx context.Context, e *model.Empresa) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) Create(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empresaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empresa, error) {
	var e model.Empresa
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empresaRepo) FindByRFC(ctx context.Context, rfc string) (*model.Empresa, error) {
	var e model.Empresa
	if err := r.db.WithContext(ctx).Where("upper(rfc) = upper(?)", rfc).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empresaRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Empresa, error) {
	var list []model.Empresa
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *empresaRepo) Update(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empresaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Empresa{}).Where("id = ?", id).Update("activo", activo).Error
}
