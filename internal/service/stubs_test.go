package service_test

// In-memory repository stubs shared by the service tests. Tx methods ignore
// the *gorm.DB argument: services run their transactional flows through
// runTx, which passes a nil handle when no database is wired.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── CajaRepository ───────────────────────────────────────────────────────────

type stubCajaRepo struct {
	cajas       map[uuid.UUID]*model.Caja
	movimientos []model.MovimientoCaja
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *stubCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *stubCajaRepo) Save(_ context.Context, c *model.Caja) error { r.cajas[c.ID] = c; return nil }
func (r *stubCajaRepo) SaveTx(_ *gorm.DB, c *model.Caja) error      { r.cajas[c.ID] = c; return nil }

func (r *stubCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) { return r.abierta() }
func (r *stubCajaRepo) FindAbiertaTx(_ *gorm.DB) (*model.Caja, error)      { return r.abierta() }

func (r *stubCajaRepo) abierta() (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.Estado == "abierta" {
			return c, nil
		}
	}
	return nil, nil
}

func (r *stubCajaRepo) List(_ context.Context) ([]model.Caja, error) {
	out := make([]model.Caja, 0, len(r.cajas))
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	return r.CreateMovimientoTx(nil, m)
}

func (r *stubCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) ListMovimientos(_ context.Context, cajaID *uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if cajaID == nil || m.CajaID == *cajaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) MovimientosPorOrdenTx(_ *gorm.DB, ordenID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.OrdenID != nil && *m.OrdenID == ordenID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) ExisteReversaTx(_ *gorm.DB, movimientoID uuid.UUID) (bool, error) {
	for _, m := range r.movimientos {
		if m.ReversaDeID != nil && *m.ReversaDeID == movimientoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCajaRepo) SumMovimientosTx(_ *gorm.DB, cajaID uuid.UUID, tipo string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movimientos {
		if m.CajaID == cajaID && m.Tipo == tipo {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── ProveedorRepository ──────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
	movimientos []model.MovimientoProveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Save(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context, soloActivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if !soloActivos || p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) CreateMovimiento(_ context.Context, m *model.MovimientoProveedor) error {
	return r.CreateMovimientoTx(nil, m)
}

func (r *stubProveedorRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoProveedor) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubProveedorRepo) ListMovimientos(_ context.Context, proveedorID uuid.UUID) ([]model.MovimientoProveedor, error) {
	var out []model.MovimientoProveedor
	for _, m := range r.movimientos {
		if m.ProveedorID == proveedorID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) SumMovimientos(_ context.Context, proveedorID uuid.UUID, tipos []string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movimientos {
		if m.ProveedorID != proveedorID {
			continue
		}
		for _, t := range tipos {
			if m.Tipo == t {
				sum = sum.Add(m.Subtotal)
				break
			}
		}
	}
	return sum, nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── OrdenRepository ──────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes      map[uuid.UUID]*model.OrdenTrabajo
	servicios    []*model.DetalleOrden
	insumos      []*model.DetalleAlmacen
	asignaciones []*model.OrdenMecanico
	numero       int

	// shared with the mecanico/proveedor stubs so preloads can be simulated
	mecanicos   map[uuid.UUID]*model.Mecanico
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubOrdenRepo(mecanicos *stubMecanicoRepo, proveedores *stubProveedorRepo) *stubOrdenRepo {
	return &stubOrdenRepo{
		ordenes:     make(map[uuid.UUID]*model.OrdenTrabajo),
		mecanicos:   mecanicos.mecanicos,
		proveedores: proveedores.proveedores,
	}
}

func (r *stubOrdenRepo) Create(_ context.Context, o *model.OrdenTrabajo) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenTrabajo, error) {
	return r.find(id)
}

func (r *stubOrdenRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.OrdenTrabajo, error) {
	return r.find(id)
}

func (r *stubOrdenRepo) find(id uuid.UUID) (*model.OrdenTrabajo, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, errNotFound
	}
	o.Servicios = nil
	o.Insumos = nil
	o.Asignaciones = nil
	for _, d := range r.servicios {
		if d.OrdenID == id {
			o.Servicios = append(o.Servicios, *d)
		}
	}
	for _, d := range r.insumos {
		if d.OrdenID == id {
			o.Insumos = append(o.Insumos, *d)
		}
	}
	for _, a := range r.asignaciones {
		if a.OrdenID == id {
			o.Asignaciones = append(o.Asignaciones, *a)
		}
	}
	return o, nil
}

func (r *stubOrdenRepo) Save(_ context.Context, o *model.OrdenTrabajo) error {
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) SaveTx(_ *gorm.DB, o *model.OrdenTrabajo) error {
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) Delete(_ context.Context, o *model.OrdenTrabajo) error {
	delete(r.ordenes, o.ID)
	return nil
}

func (r *stubOrdenRepo) List(_ context.Context, filter repository.OrdenFilter) ([]model.OrdenTrabajo, error) {
	var out []model.OrdenTrabajo
	for _, o := range r.ordenes {
		if filter.Estado != "" && o.Estado != filter.Estado {
			continue
		}
		if filter.ClienteID != nil && o.ClienteID != *filter.ClienteID {
			continue
		}
		if filter.VehiculoID != nil && o.VehiculoID != *filter.VehiculoID {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrdenRepo) NextNumero(_ context.Context) (int, error) {
	r.numero++
	return r.numero, nil
}

func (r *stubOrdenRepo) CreateDetalleServicio(_ context.Context, d *model.DetalleOrden) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.servicios = append(r.servicios, d)
	return nil
}

func (r *stubOrdenRepo) FindDetalleServicio(_ context.Context, id uuid.UUID) (*model.DetalleOrden, error) {
	for _, d := range r.servicios {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, errNotFound
}

func (r *stubOrdenRepo) SaveDetalleServicio(_ context.Context, d *model.DetalleOrden) error {
	return nil
}

func (r *stubOrdenRepo) DeleteDetalleServicio(_ context.Context, d *model.DetalleOrden) error {
	for i, x := range r.servicios {
		if x.ID == d.ID {
			r.servicios = append(r.servicios[:i], r.servicios[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubOrdenRepo) ListDetalleServicios(_ context.Context, ordenID uuid.UUID) ([]model.DetalleOrden, error) {
	var out []model.DetalleOrden
	for _, d := range r.servicios {
		if d.OrdenID == ordenID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) SumSubtotalServiciosTx(_ *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, d := range r.servicios {
		if d.OrdenID == ordenID {
			sum = sum.Add(d.Subtotal)
		}
	}
	return sum, nil
}

func (r *stubOrdenRepo) CreateDetalleInsumo(_ context.Context, d *model.DetalleAlmacen) error {
	return r.CreateDetalleInsumoTx(nil, d)
}

func (r *stubOrdenRepo) CreateDetalleInsumoTx(_ *gorm.DB, d *model.DetalleAlmacen) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.insumos = append(r.insumos, d)
	return nil
}

func (r *stubOrdenRepo) DeleteDetalleInsumoTx(_ *gorm.DB, d *model.DetalleAlmacen) error {
	for i, x := range r.insumos {
		if x.ID == d.ID {
			r.insumos = append(r.insumos[:i], r.insumos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubOrdenRepo) FindDetalleInsumo(_ context.Context, id uuid.UUID) (*model.DetalleAlmacen, error) {
	for _, d := range r.insumos {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, errNotFound
}

func (r *stubOrdenRepo) SaveDetalleInsumo(_ context.Context, d *model.DetalleAlmacen) error {
	return nil
}

func (r *stubOrdenRepo) DeleteDetalleInsumo(_ context.Context, d *model.DetalleAlmacen) error {
	return r.DeleteDetalleInsumoTx(nil, d)
}

func (r *stubOrdenRepo) ListDetalleInsumos(_ context.Context, ordenID uuid.UUID) ([]model.DetalleAlmacen, error) {
	var out []model.DetalleAlmacen
	for _, d := range r.insumos {
		if d.OrdenID == ordenID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) SumSubtotalInsumosTx(_ *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, d := range r.insumos {
		if d.OrdenID == ordenID {
			sum = sum.Add(d.Subtotal)
		}
	}
	return sum, nil
}

func (r *stubOrdenRepo) SumSubtotalProveedorTx(_ *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, d := range r.insumos {
		if d.OrdenID == ordenID {
			sum = sum.Add(d.SubtotalProveedor)
		}
	}
	return sum, nil
}

func (r *stubOrdenRepo) ProveedoresDeOrdenTx(_ *gorm.DB, ordenID uuid.UUID) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, d := range r.insumos {
		if d.OrdenID != ordenID || d.ProveedorID == nil {
			continue
		}
		p, ok := r.proveedores[*d.ProveedorID]
		if !ok || seen[p.Nombre] {
			continue
		}
		seen[p.Nombre] = true
		out = append(out, p.Nombre)
	}
	return out, nil
}

func (r *stubOrdenRepo) CreateAsignacion(_ context.Context, a *model.OrdenMecanico) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.asignaciones = append(r.asignaciones, a)
	return nil
}

func (r *stubOrdenRepo) FindAsignacion(_ context.Context, ordenID, mecanicoID uuid.UUID) (*model.OrdenMecanico, error) {
	for _, a := range r.asignaciones {
		if a.OrdenID == ordenID && a.MecanicoID == mecanicoID {
			return a, nil
		}
	}
	return nil, errNotFound
}

func (r *stubOrdenRepo) DeleteAsignacion(_ context.Context, a *model.OrdenMecanico) error {
	for i, x := range r.asignaciones {
		if x.ID == a.ID {
			r.asignaciones = append(r.asignaciones[:i], r.asignaciones[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubOrdenRepo) ListAsignacionesTx(_ *gorm.DB, ordenID uuid.UUID) ([]model.OrdenMecanico, error) {
	var out []model.OrdenMecanico
	for _, a := range r.asignaciones {
		if a.OrdenID == ordenID {
			copia := *a
			copia.Mecanico = r.mecanicos[a.MecanicoID]
			out = append(out, copia)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) SaveAsignacionTx(_ *gorm.DB, a *model.OrdenMecanico) error {
	for _, x := range r.asignaciones {
		if x.ID == a.ID {
			x.Porcentaje = a.Porcentaje
			x.Monto = a.Monto
			return nil
		}
	}
	return errNotFound
}

func (r *stubOrdenRepo) ZeroMontosAsignacionesTx(_ *gorm.DB, ordenID uuid.UUID) error {
	for _, a := range r.asignaciones {
		if a.OrdenID == ordenID {
			a.Monto = decimal.Zero
		}
	}
	return nil
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

// ── LiquidacionRepository ────────────────────────────────────────────────────

type stubLiquidacionRepo struct {
	liquidaciones map[uuid.UUID]*model.Liquidacion
	detalles      []*model.LiquidacionDetalle
}

func newStubLiquidacionRepo() *stubLiquidacionRepo {
	return &stubLiquidacionRepo{liquidaciones: make(map[uuid.UUID]*model.Liquidacion)}
}

func (r *stubLiquidacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Liquidacion, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubLiquidacionRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Liquidacion, error) {
	l, ok := r.liquidaciones[id]
	if !ok {
		return nil, errNotFound
	}
	return l, nil
}

func (r *stubLiquidacionRepo) List(_ context.Context, mecanicoID *uuid.UUID) ([]model.Liquidacion, error) {
	var out []model.Liquidacion
	for _, l := range r.liquidaciones {
		if mecanicoID == nil || l.MecanicoID == *mecanicoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLiquidacionRepo) Save(_ context.Context, l *model.Liquidacion) error {
	r.liquidaciones[l.ID] = l
	return nil
}

func (r *stubLiquidacionRepo) SaveTx(_ *gorm.DB, l *model.Liquidacion) error {
	r.liquidaciones[l.ID] = l
	return nil
}

func (r *stubLiquidacionRepo) CreateTx(_ *gorm.DB, l *model.Liquidacion) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = time.Now()
	r.liquidaciones[l.ID] = l
	return nil
}

func (r *stubLiquidacionRepo) FindPendienteTx(_ *gorm.DB, mecanicoID uuid.UUID, inicio, fin time.Time) (*model.Liquidacion, error) {
	for _, l := range r.liquidaciones {
		if l.MecanicoID == mecanicoID && l.Estado == model.LiquidacionPendiente &&
			l.FechaInicio.Equal(inicio) && l.FechaFin.Equal(fin) {
			return l, nil
		}
	}
	return nil, nil
}

func (r *stubLiquidacionRepo) ListDetalles(_ context.Context, liquidacionID uuid.UUID) ([]model.LiquidacionDetalle, error) {
	var out []model.LiquidacionDetalle
	for _, d := range r.detalles {
		if d.LiquidacionID == liquidacionID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubLiquidacionRepo) FindDetalleTx(_ *gorm.DB, liquidacionID, ordenID uuid.UUID) (*model.LiquidacionDetalle, error) {
	for _, d := range r.detalles {
		if d.LiquidacionID == liquidacionID && d.OrdenID == ordenID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *stubLiquidacionRepo) CreateDetalleTx(_ *gorm.DB, d *model.LiquidacionDetalle) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	r.detalles = append(r.detalles, d)
	return nil
}

func (r *stubLiquidacionRepo) SaveDetalleTx(_ *gorm.DB, d *model.LiquidacionDetalle) error {
	return nil
}

func (r *stubLiquidacionRepo) DetallesPorOrdenTx(_ *gorm.DB, ordenID uuid.UUID) ([]model.LiquidacionDetalle, error) {
	var out []model.LiquidacionDetalle
	for _, d := range r.detalles {
		if d.OrdenID == ordenID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubLiquidacionRepo) DeleteDetallesTx(_ *gorm.DB, ordenID uuid.UUID, liquidacionIDs []uuid.UUID) error {
	keep := r.detalles[:0]
	for _, d := range r.detalles {
		remove := false
		if d.OrdenID == ordenID {
			for _, id := range liquidacionIDs {
				if d.LiquidacionID == id {
					remove = true
					break
				}
			}
		}
		if !remove {
			keep = append(keep, d)
		}
	}
	r.detalles = keep
	return nil
}

func (r *stubLiquidacionRepo) SumDetallesTx(_ *gorm.DB, liquidacionID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	base, monto := decimal.Zero, decimal.Zero
	for _, d := range r.detalles {
		if d.LiquidacionID == liquidacionID {
			base = base.Add(d.BaseCalculo)
			monto = monto.Add(d.Monto)
		}
	}
	return base, monto, nil
}

func (r *stubLiquidacionRepo) DB() *gorm.DB { return nil }

var _ repository.LiquidacionRepository = (*stubLiquidacionRepo)(nil)

// ── Catalog repositories ─────────────────────────────────────────────────────

type stubMecanicoRepo struct {
	mecanicos map[uuid.UUID]*model.Mecanico
}

func newStubMecanicoRepo() *stubMecanicoRepo {
	return &stubMecanicoRepo{mecanicos: make(map[uuid.UUID]*model.Mecanico)}
}

func (r *stubMecanicoRepo) Create(_ context.Context, m *model.Mecanico) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mecanicos[m.ID] = m
	return nil
}

func (r *stubMecanicoRepo) Save(_ context.Context, m *model.Mecanico) error {
	r.mecanicos[m.ID] = m
	return nil
}

func (r *stubMecanicoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mecanico, error) {
	m, ok := r.mecanicos[id]
	if !ok {
		return nil, errNotFound
	}
	return m, nil
}

func (r *stubMecanicoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Mecanico, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubMecanicoRepo) List(_ context.Context, soloActivos bool) ([]model.Mecanico, error) {
	var out []model.Mecanico
	for _, m := range r.mecanicos {
		if !soloActivos || m.Activo {
			out = append(out, *m)
		}
	}
	return out, nil
}

var _ repository.MecanicoRepository = (*stubMecanicoRepo)(nil)

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Save(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, buscar string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if buscar == "" || strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(buscar)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubVehiculoRepo struct {
	vehiculos map[uuid.UUID]*model.Vehiculo
}

func newStubVehiculoRepo() *stubVehiculoRepo {
	return &stubVehiculoRepo{vehiculos: make(map[uuid.UUID]*model.Vehiculo)}
}

func (r *stubVehiculoRepo) Create(_ context.Context, v *model.Vehiculo) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) Save(_ context.Context, v *model.Vehiculo) error {
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) SaveTx(_ *gorm.DB, v *model.Vehiculo) error {
	r.vehiculos[v.ID] = v
	return nil
}

func (r *stubVehiculoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	v, ok := r.vehiculos[id]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

func (r *stubVehiculoRepo) FindByPlaca(_ context.Context, placa string) (*model.Vehiculo, error) {
	for _, v := range r.vehiculos {
		if v.Placa == placa {
			return v, nil
		}
	}
	return nil, nil
}

func (r *stubVehiculoRepo) List(_ context.Context, clienteID *uuid.UUID) ([]model.Vehiculo, error) {
	var out []model.Vehiculo
	for _, v := range r.vehiculos {
		if clienteID == nil || v.ClienteID == *clienteID {
			out = append(out, *v)
		}
	}
	return out, nil
}

var _ repository.VehiculoRepository = (*stubVehiculoRepo)(nil)

type stubServicioRepo struct {
	servicios  map[uuid.UUID]*model.Servicio
	categorias map[uuid.UUID]*model.CategoriaServicio
}

func newStubServicioRepo() *stubServicioRepo {
	return &stubServicioRepo{
		servicios:  make(map[uuid.UUID]*model.Servicio),
		categorias: make(map[uuid.UUID]*model.CategoriaServicio),
	}
}

func (r *stubServicioRepo) Create(_ context.Context, s *model.Servicio) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.servicios[s.ID] = s
	return nil
}

func (r *stubServicioRepo) Save(_ context.Context, s *model.Servicio) error {
	r.servicios[s.ID] = s
	return nil
}

func (r *stubServicioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Servicio, error) {
	s, ok := r.servicios[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubServicioRepo) List(_ context.Context, categoriaID *uuid.UUID, soloActivos bool) ([]model.Servicio, error) {
	var out []model.Servicio
	for _, s := range r.servicios {
		if soloActivos && !s.Activo {
			continue
		}
		if categoriaID != nil && (s.CategoriaID == nil || *s.CategoriaID != *categoriaID) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubServicioRepo) CreateCategoria(_ context.Context, c *model.CategoriaServicio) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubServicioRepo) SaveCategoria(_ context.Context, c *model.CategoriaServicio) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubServicioRepo) FindCategoria(_ context.Context, id uuid.UUID) (*model.CategoriaServicio, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubServicioRepo) ListCategorias(_ context.Context) ([]model.CategoriaServicio, error) {
	var out []model.CategoriaServicio
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ServicioRepository = (*stubServicioRepo)(nil)

type stubAlmacenRepo struct {
	items       map[uuid.UUID]*model.AlmacenItem
	movimientos []model.MovimientoAlmacen
}

func newStubAlmacenRepo() *stubAlmacenRepo {
	return &stubAlmacenRepo{items: make(map[uuid.UUID]*model.AlmacenItem)}
}

func (r *stubAlmacenRepo) Create(_ context.Context, item *model.AlmacenItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubAlmacenRepo) Save(_ context.Context, item *model.AlmacenItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubAlmacenRepo) SaveTx(_ *gorm.DB, item *model.AlmacenItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubAlmacenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AlmacenItem, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubAlmacenRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.AlmacenItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errNotFound
	}
	return item, nil
}

func (r *stubAlmacenRepo) List(_ context.Context, soloActivos bool) ([]model.AlmacenItem, error) {
	var out []model.AlmacenItem
	for _, item := range r.items {
		if !soloActivos || item.Activo {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubAlmacenRepo) CreateMovimiento(_ context.Context, m *model.MovimientoAlmacen) error {
	return r.CreateMovimientoTx(nil, m)
}

func (r *stubAlmacenRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoAlmacen) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubAlmacenRepo) ListMovimientos(_ context.Context, itemID uuid.UUID) ([]model.MovimientoAlmacen, error) {
	var out []model.MovimientoAlmacen
	for _, m := range r.movimientos {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubAlmacenRepo) DB() *gorm.DB { return nil }

var _ repository.AlmacenRepository = (*stubAlmacenRepo)(nil)

type stubReglaRepo struct {
	reglas map[uuid.UUID]*model.ReglaMantenimiento
	bases  []*model.VehiculoReglaBase
}

func newStubReglaRepo() *stubReglaRepo {
	return &stubReglaRepo{reglas: make(map[uuid.UUID]*model.ReglaMantenimiento)}
}

func (r *stubReglaRepo) Create(_ context.Context, regla *model.ReglaMantenimiento) error {
	if regla.ID == uuid.Nil {
		regla.ID = uuid.New()
	}
	r.reglas[regla.ID] = regla
	return nil
}

func (r *stubReglaRepo) Save(_ context.Context, regla *model.ReglaMantenimiento) error {
	r.reglas[regla.ID] = regla
	return nil
}

func (r *stubReglaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.reglas, id)
	return r.DeleteBasesPorRegla(context.Background(), id)
}

func (r *stubReglaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReglaMantenimiento, error) {
	regla, ok := r.reglas[id]
	if !ok {
		return nil, errNotFound
	}
	return regla, nil
}

func (r *stubReglaRepo) List(_ context.Context, soloActivas bool) ([]model.ReglaMantenimiento, error) {
	var out []model.ReglaMantenimiento
	for _, regla := range r.reglas {
		if !soloActivas || regla.Activo {
			out = append(out, *regla)
		}
	}
	return out, nil
}

func (r *stubReglaRepo) FindBase(_ context.Context, vehiculoID, reglaID uuid.UUID) (*model.VehiculoReglaBase, error) {
	for _, b := range r.bases {
		if b.VehiculoID == vehiculoID && b.ReglaID == reglaID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubReglaRepo) CreateBase(_ context.Context, base *model.VehiculoReglaBase) error {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	r.bases = append(r.bases, base)
	return nil
}

func (r *stubReglaRepo) SaveBase(_ context.Context, base *model.VehiculoReglaBase) error {
	return nil
}

func (r *stubReglaRepo) ListBases(_ context.Context, vehiculoID uuid.UUID) ([]model.VehiculoReglaBase, error) {
	var out []model.VehiculoReglaBase
	for _, b := range r.bases {
		if b.VehiculoID == vehiculoID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubReglaRepo) DeleteBasesPorRegla(_ context.Context, reglaID uuid.UUID) error {
	keep := r.bases[:0]
	for _, b := range r.bases {
		if b.ReglaID != reglaID {
			keep = append(keep, b)
		}
	}
	r.bases = keep
	return nil
}

var _ repository.ReglaRepository = (*stubReglaRepo)(nil)

type stubHerramientaRepo struct {
	herramientas map[uuid.UUID]*model.Herramienta
	prestamos    []*model.PrestamoHerramienta
}

func newStubHerramientaRepo() *stubHerramientaRepo {
	return &stubHerramientaRepo{herramientas: make(map[uuid.UUID]*model.Herramienta)}
}

func (r *stubHerramientaRepo) Create(_ context.Context, h *model.Herramienta) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.herramientas[h.ID] = h
	return nil
}

func (r *stubHerramientaRepo) Save(_ context.Context, h *model.Herramienta) error {
	r.herramientas[h.ID] = h
	return nil
}

func (r *stubHerramientaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Herramienta, error) {
	h, ok := r.herramientas[id]
	if !ok {
		return nil, errNotFound
	}
	return h, nil
}

func (r *stubHerramientaRepo) List(_ context.Context) ([]model.Herramienta, error) {
	var out []model.Herramienta
	for _, h := range r.herramientas {
		out = append(out, *h)
	}
	return out, nil
}

func (r *stubHerramientaRepo) CreatePrestamo(_ context.Context, p *model.PrestamoHerramienta) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.prestamos = append(r.prestamos, p)
	return nil
}

func (r *stubHerramientaRepo) SavePrestamo(_ context.Context, p *model.PrestamoHerramienta) error {
	return nil
}

func (r *stubHerramientaRepo) FindPrestamo(_ context.Context, id uuid.UUID) (*model.PrestamoHerramienta, error) {
	for _, p := range r.prestamos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubHerramientaRepo) FindPrestamoAbierto(_ context.Context, herramientaID uuid.UUID) (*model.PrestamoHerramienta, error) {
	for _, p := range r.prestamos {
		if p.HerramientaID == herramientaID && p.Estado == "prestada" {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubHerramientaRepo) ListPrestamos(_ context.Context, herramientaID *uuid.UUID) ([]model.PrestamoHerramienta, error) {
	var out []model.PrestamoHerramienta
	for _, p := range r.prestamos {
		if herramientaID == nil || p.HerramientaID == *herramientaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.HerramientaRepository = (*stubHerramientaRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Save(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
