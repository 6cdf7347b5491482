package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"ballesteros/internal/model"
	"ballesteros/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────
// Every stub stores copies so a service that forgets to call Update is caught.
// DB() returns nil, which makes runTx call fn(nil) directly.

type stubEmpresaRepo struct{ data map[uuid.UUID]model.Empresa }

func newStubEmpresaRepo() *stubEmpresaRepo {
	return &stubEmpresaRepo{data: map[uuid.UUID]model.Empresa{}}
}

func (r *stubEmpresaRepo) Create(_ context.Context, e *model.Empresa) error {
	for _, x := range r.data {
		if x.RFC == e.RFC {
			return gorm.ErrDuplicatedKey
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.data[e.ID] = *e
	return nil
}

func (r *stubEmpresaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Empresa, error) {
	e, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *stubEmpresaRepo) FindByRFC(_ context.Context, rfc string) (*model.Empresa, error) {
	for _, e := range r.data {
		if e.RFC == rfc {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpresaRepo) List(_ context.Context, incluirInactivas bool) ([]model.Empresa, error) {
	var out []model.Empresa
	for _, e := range r.data {
		if e.Activo || incluirInactivas {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEmpresaRepo) Update(_ context.Context, e *model.Empresa) error {
	r.data[e.ID] = *e
	return nil
}

func (r *stubEmpresaRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	e, ok := r.data[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Activo = activo
	r.data[id] = e
	return nil
}

var _ repository.EmpresaRepository = (*stubEmpresaRepo)(nil)

type stubEmpleadoRepo struct{ data map[uuid.UUID]model.Empleado }

func newStubEmpleadoRepo() *stubEmpleadoRepo {
	return &stubEmpleadoRepo{data: map[uuid.UUID]model.Empleado{}}
}

func (r *stubEmpleadoRepo) Create(_ context.Context, e *model.Empleado) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.data[e.ID] = *e
	return nil
}

func (r *stubEmpleadoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Empleado, error) {
	e, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *stubEmpleadoRepo) List(_ context.Context, empresaID *uuid.UUID) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.data {
		if e.Activo && (empresaID == nil || e.EmpresaID == *empresaID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEmpleadoRepo) Update(_ context.Context, e *model.Empleado) error {
	r.data[e.ID] = *e
	return nil
}

func (r *stubEmpleadoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	e := r.data[id]
	e.Activo = false
	r.data[id] = e
	return nil
}

var _ repository.EmpleadoRepository = (*stubEmpleadoRepo)(nil)

type stubCuentaRepo struct {
	cuentas map[uuid.UUID]model.Cuenta
	movs    []model.MovimientoCuenta
	locks   []uuid.UUID
}

func newStubCuentaRepo() *stubCuentaRepo {
	return &stubCuentaRepo{cuentas: map[uuid.UUID]model.Cuenta{}}
}

func (r *stubCuentaRepo) Create(_ context.Context, _ *gorm.DB, c *model.Cuenta) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cuentas[c.ID] = *c
	return nil
}

func (r *stubCuentaRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Cuenta, error) {
	c, ok := r.cuentas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *stubCuentaRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuenta, error) {
	r.locks = append(r.locks, id)
	return r.FindByID(ctx, tx, id)
}

func (r *stubCuentaRepo) List(_ context.Context, empresaID *uuid.UUID) ([]model.Cuenta, error) {
	var out []model.Cuenta
	for _, c := range r.cuentas {
		if empresaID == nil || c.EmpresaID == *empresaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCuentaRepo) Update(_ context.Context, c *model.Cuenta) error {
	r.cuentas[c.ID] = *c
	return nil
}

func (r *stubCuentaRepo) SoftDelete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	c := r.cuentas[id]
	c.Activo = false
	r.cuentas[id] = c
	return nil
}

func (r *stubCuentaRepo) UpdateSaldo(_ context.Context, _ *gorm.DB, id uuid.UUID, saldo decimal.Decimal) error {
	c := r.cuentas[id]
	c.Saldo = saldo
	r.cuentas[id] = c
	return nil
}

func (r *stubCuentaRepo) CreateMovimiento(_ context.Context, _ *gorm.DB, m *model.MovimientoCuenta) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubCuentaRepo) ListMovimientos(_ context.Context, cuentaID uuid.UUID, page, limit int) ([]model.MovimientoCuenta, int64, error) {
	var all []model.MovimientoCuenta
	for _, m := range r.movs {
		if m.CuentaID == cuentaID {
			all = append(all, m)
		}
	}
	from := (page - 1) * limit
	if from > len(all) {
		from = len(all)
	}
	to := from + limit
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], int64(len(all)), nil
}

func (r *stubCuentaRepo) DB() *gorm.DB { return nil }

func (r *stubCuentaRepo) movimientosDe(cuentaID uuid.UUID) []model.MovimientoCuenta {
	var out []model.MovimientoCuenta
	for _, m := range r.movs {
		if m.CuentaID == cuentaID {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.CuentaRepository = (*stubCuentaRepo)(nil)

type stubCorteRepo struct{ data map[uuid.UUID]model.Corte }

func newStubCorteRepo() *stubCorteRepo {
	return &stubCorteRepo{data: map[uuid.UUID]model.Corte{}}
}

func (r *stubCorteRepo) Create(_ context.Context, c *model.Corte) error {
	for _, x := range r.data {
		if x.EmpresaID == c.EmpresaID && x.EmpleadoID == c.EmpleadoID &&
			x.Fecha.Equal(c.Fecha) && x.NumeroSesion == c.NumeroSesion {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.data[c.ID] = *c
	return nil
}

func (r *stubCorteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Corte, error) {
	c, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *stubCorteRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Corte, error) {
	return r.FindByID(ctx, id)
}

func (r *stubCorteRepo) FindBySesion(_ context.Context, empresaID, empleadoID uuid.UUID, fecha time.Time, numeroSesion int) (*model.Corte, error) {
	for _, c := range r.data {
		if c.EmpresaID == empresaID && c.EmpleadoID == empleadoID && c.Fecha.Equal(fecha) && c.NumeroSesion == numeroSesion {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCorteRepo) List(_ context.Context, f repository.CorteFilter) ([]model.Corte, int64, error) {
	var out []model.Corte
	for _, c := range r.data {
		if f.EmpresaID != nil && c.EmpresaID != *f.EmpresaID {
			continue
		}
		if f.EmpleadoID != nil && c.EmpleadoID != *f.EmpleadoID {
			continue
		}
		if f.Estado != "" && c.Estado != f.Estado {
			continue
		}
		if f.Desde != nil && c.Fecha.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && c.Fecha.After(*f.Hasta) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, int64(len(out)), nil
}

func (r *stubCorteRepo) Update(_ context.Context, _ *gorm.DB, c *model.Corte) error {
	r.data[c.ID] = *c
	return nil
}

func (r *stubCorteRepo) DB() *gorm.DB { return nil }

var _ repository.CorteRepository = (*stubCorteRepo)(nil)

type stubAdeudoRepo struct {
	data  map[uuid.UUID]model.Adeudo
	locks []uuid.UUID
}

func newStubAdeudoRepo() *stubAdeudoRepo {
	return &stubAdeudoRepo{data: map[uuid.UUID]model.Adeudo{}}
}

func (r *stubAdeudoRepo) Create(_ context.Context, _ *gorm.DB, a *model.Adeudo) error {
	for _, x := range r.data {
		if x.CorteID == a.CorteID {
			return gorm.ErrDuplicatedKey
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.data[a.ID] = *a
	return nil
}

func (r *stubAdeudoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Adeudo, error) {
	a, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *stubAdeudoRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Adeudo, error) {
	r.locks = append(r.locks, id)
	return r.FindByID(ctx, id)
}

func (r *stubAdeudoRepo) FindByCorteID(_ context.Context, corteID uuid.UUID) (*model.Adeudo, error) {
	for _, a := range r.data {
		if a.CorteID == corteID {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdeudoRepo) List(_ context.Context, f repository.AdeudoFilter) ([]model.Adeudo, error) {
	var out []model.Adeudo
	for _, a := range r.data {
		if f.EmpresaID != nil && a.EmpresaID != *f.EmpresaID {
			continue
		}
		if f.EmpleadoID != nil && a.EmpleadoID != *f.EmpleadoID {
			continue
		}
		if f.Estado != "" && a.Estado != f.Estado {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAdeudoRepo) Update(_ context.Context, _ *gorm.DB, a *model.Adeudo) error {
	r.data[a.ID] = *a
	return nil
}

func (r *stubAdeudoRepo) DB() *gorm.DB { return nil }

var _ repository.AdeudoRepository = (*stubAdeudoRepo)(nil)

type stubCategoriaRepo struct{ data map[uuid.UUID]model.Categoria }

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{data: map[uuid.UUID]model.Categoria{}}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	c.ID = uuid.New()
	r.data[c.ID] = *c
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context, tipo string) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.data {
		if tipo == "" || c.Tipo == tipo {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.data {
		if strings.EqualFold(c.Nombre, nombre) {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	r.data[c.ID] = *c
	return nil
}

func (r *stubCategoriaRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	c := r.data[id]
	c.Activo = false
	r.data[id] = c
	return nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubClienteRepo struct{ data map[uuid.UUID]model.Cliente }

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{data: map[uuid.UUID]model.Cliente{}}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	c.ID = uuid.New()
	r.data[c.ID] = *c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *stubClienteRepo) List(_ context.Context, busqueda string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.data {
		if c.Activo && strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(busqueda)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.data[c.ID] = *c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c := r.data[id]
	c.Activo = false
	r.data[id] = c
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubProveedorRepo struct{ data map[uuid.UUID]model.Proveedor }

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{data: map[uuid.UUID]model.Proveedor{}}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	p.ID = uuid.New()
	r.data[p.ID] = *p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubProveedorRepo) FindByRFC(_ context.Context, rfc string) (*model.Proveedor, error) {
	for _, p := range r.data {
		if p.RFC == rfc {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.data {
		if p.Activo {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.data[p.ID] = *p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p := r.data[id]
	p.Activo = false
	r.data[id] = p
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

type stubUsuarioRepo struct{ data map[uuid.UUID]model.Usuario }

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{data: map[uuid.UUID]model.Usuario{}}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, x := range r.data {
		if x.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uuid.New()
	r.data[u.ID] = *u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.data {
		if u.Username == username && u.Activo {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.data[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.data {
		if u.Activo || incluirInactivos {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.data[u.ID] = *u
	return nil
}

func (r *stubUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	u := r.data[id]
	u.Activo = activo
	r.data[id] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
