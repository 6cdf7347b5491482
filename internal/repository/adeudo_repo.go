package repository

import (
	"context"

	"ballesteros/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdeudoFilter struct {
	EmpresaID  *uuid.UUID
	EmpleadoID *uuid.UUID
	Estado     string
}

type AdeudoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Adeudo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Adeudo, error)
	// FindByIDForUpdate locks the row until tx ends.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Adeudo, error)
	FindByCorteID(ctx context.Context, corteID uuid.UUID) (*model.Adeudo, error)
	List(ctx context.Context, f AdeudoFilter) ([]model.Adeudo, error)
	Update(ctx context.Context, tx *gorm.DB, a *model.Adeudo) error
	DB() *gorm.DB
}

type adeudoRepo struct{ db *gorm.DB }

func NewAdeudoRepository(db *gorm.DB) AdeudoRepository { return &adeudoRepo{db: db} }

func (r *adeudoRepo) DB() *gorm.DB { return r.db }

func (r *adeudoRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Adeudo) error {
	return conn(r.db, tx).WithContext(ctx).Create(a).Error
}

func (r *adeudoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Adeudo, error) {
	var a model.Adeudo
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adeudoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Adeudo, error) {
	var a model.Adeudo
	if err := forUpdate(r.db, tx).WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adeudoRepo) FindByCorteID(ctx context.Context, corteID uuid.UUID) (*model.Adeudo, error) {
	var a model.Adeudo
	if err := r.db.WithContext(ctx).Where("corte_id = ?", corteID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adeudoRepo) List(ctx context.Context, f AdeudoFilter) ([]model.Adeudo, error) {
	var list []model.Adeudo
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if f.EmpresaID != nil {
		q = q.Where("empresa_id = ?", *f.EmpresaID)
	}
	if f.EmpleadoID != nil {
		q = q.Where("empleado_id = ?", *f.EmpleadoID)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *adeudoRepo) Update(ctx context.Context, tx *gorm.DB, a *model.Adeudo) error {
	return conn(r.db, tx).WithContext(ctx).Save(a).Error
}
