package repository

import (
	"context"

	"ballesteros/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CuentaRepository persists accounts and their immutable ledger.
// Methods taking tx run inside the caller's transaction when tx is non-nil.
type CuentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Cuenta) error
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuenta, error)
	// FindByIDForUpdate locks the row until tx ends.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuenta, error)
	List(ctx context.Context, empresaID *uuid.UUID) ([]model.Cuenta, error)
	Update(ctx context.Context, c *model.Cuenta) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpdateSaldo(ctx context.Context, tx *gorm.DB, id uuid.UUID, saldo decimal.Decimal) error
	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuenta) error
	ListMovimientos(ctx context.Context, cuentaID uuid.UUID, page, limit int) ([]model.MovimientoCuenta, int64, error)
	DB() *gorm.DB
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) DB() *gorm.DB { return r.db }

func (r *cuentaRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cuenta) error {
	return conn(r.db, tx).WithContext(ctx).Create(c).Error
}

func (r *cuentaRepo) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuenta, error) {
	var c model.Cuenta
	if err := conn(r.db, tx).WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuentaRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuenta, error) {
	var c model.Cuenta
	if err := forUpdate(r.db, tx).WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuentaRepo) List(ctx context.Context, empresaID *uuid.UUID) ([]model.Cuenta, error) {
	var list []model.Cuenta
	q := r.db.WithContext(ctx).Where("activo = true").Order("tipo asc, nombre asc")
	if empresaID != nil {
		q = q.Where("empresa_id = ?", *empresaID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *cuentaRepo) Update(ctx context.Context, c *model.Cuenta) error {
	return r.db.WithContext(ctx).Model(c).Select("nombre", "banco", "updated_at").Updates(c).Error
}

func (r *cuentaRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return conn(r.db, tx).WithContext(ctx).Model(&model.Cuenta{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *cuentaRepo) UpdateSaldo(ctx context.Context, tx *gorm.DB, id uuid.UUID, saldo decimal.Decimal) error {
	return conn(r.db, tx).WithContext(ctx).Model(&model.Cuenta{}).Where("id = ?", id).Update("saldo", saldo).Error
}

func (r *cuentaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuenta) error {
	return conn(r.db, tx).WithContext(ctx).Create(m).Error
}

func (r *cuentaRepo) ListMovimientos(ctx context.Context, cuentaID uuid.UUID, page, limit int) ([]model.MovimientoCuenta, int64, error) {
	var movs []model.MovimientoCuenta
	var total int64
	q := r.db.WithContext(ctx).Model(&model.MovimientoCuenta{}).Where("cuenta_id = ?", cuentaID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Scopes(paginate(page, limit)).Find(&movs).Error
	return movs, total, err
}
