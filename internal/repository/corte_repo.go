package repository

import (
	"context"
	"time"

	"ballesteros/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CorteFilter narrows List. Nil fields are ignored; Hasta is inclusive.
type CorteFilter struct {
	EmpresaID  *uuid.UUID
	EmpleadoID *uuid.UUID
	Estado     string
	Desde      *time.Time
	Hasta      *time.Time
	Page       int
	Limit      int
}

type CorteRepository interface {
	Create(ctx context.Context, c *model.Corte) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Corte, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Corte, error)
	FindBySesion(ctx context.Context, empresaID, empleadoID uuid.UUID, fecha time.Time, numeroSesion int) (*model.Corte, error)
	List(ctx context.Context, f CorteFilter) ([]model.Corte, int64, error)
	Update(ctx context.Context, tx *gorm.DB, c *model.Corte) error
	DB() *gorm.DB
}

type corteRepo struct{ db *gorm.DB }

func NewCorteRepository(db *gorm.DB) CorteRepository { return &corteRepo{db: db} }

func (r *corteRepo) DB() *gorm.DB { return r.db }

func (r *corteRepo) Create(ctx context.Context, c *model.Corte) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *corteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Corte, error) {
	var c model.Corte
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Corte, error) {
	var c model.Corte
	if err := forUpdate(r.db, tx).WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) FindBySesion(ctx context.Context, empresaID, empleadoID uuid.UUID, fecha time.Time, numeroSesion int) (*model.Corte, error) {
	var c model.Corte
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND empleado_id = ? AND fecha = ? AND numero_sesion = ?",
			empresaID, empleadoID, fecha.Format("2006-01-02"), numeroSesion).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) List(ctx context.Context, f CorteFilter) ([]model.Corte, int64, error) {
	var cortes []model.Corte
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Corte{})
	if f.EmpresaID != nil {
		q = q.Where("empresa_id = ?", *f.EmpresaID)
	}
	if f.EmpleadoID != nil {
		q = q.Where("empleado_id = ?", *f.EmpleadoID)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.Desde != nil {
		q = q.Where("fecha >= ?", f.Desde.Format("2006-01-02"))
	}
	if f.Hasta != nil {
		q = q.Where("fecha <= ?", f.Hasta.Format("2006-01-02"))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha DESC, numero_sesion ASC").Scopes(paginate(f.Page, f.Limit)).Find(&cortes).Error
	return cortes, total, err
}

func (r *corteRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Corte) error {
	return conn(r.db, tx).WithContext(ctx).Save(c).Error
}
