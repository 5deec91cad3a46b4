package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var cien = decimal.NewFromInt(100)

type OrdenService interface {
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*model.OrdenTrabajo, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error)
	Listar(ctx context.Context, filter repository.OrdenFilter) ([]model.OrdenTrabajo, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenRequest) (*model.OrdenTrabajo, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ResumenFinanciero(ctx context.Context, id uuid.UUID) (*dto.ResumenFinancieroOrden, error)

	AgregarServicio(ctx context.Context, ordenID uuid.UUID, req dto.AgregarServicioRequest) (*model.DetalleOrden, error)
	ActualizarLineaServicio(ctx context.Context, ordenID, detalleID uuid.UUID, req dto.ActualizarLineaServicioRequest) (*model.DetalleOrden, error)
	EliminarLineaServicio(ctx context.Context, ordenID, detalleID uuid.UUID) error

	AgregarInsumo(ctx context.Context, ordenID uuid.UUID, usuario string, req dto.AgregarInsumoRequest) (*model.DetalleAlmacen, error)
	EliminarInsumo(ctx context.Context, ordenID, detalleID uuid.UUID, usuario string) error

	AsignarMecanico(ctx context.Context, ordenID uuid.UUID, req dto.AsignarMecanicoRequest) (*model.OrdenMecanico, error)
	QuitarMecanico(ctx context.Context, ordenID, mecanicoID uuid.UUID) error

	// CambiarEstado drives the lifecycle. Moving into cerrada or cancelada
	// runs the full financial settlement in one transaction.
	CambiarEstado(ctx context.Context, id uuid.UUID, usuario string, req dto.CambiarEstadoRequest) (*model.OrdenTrabajo, error)
	// Reabrir reverses a closed order's settlement and returns it to
	// en_proceso. Only cerrada orders can be reopened.
	Reabrir(ctx context.Context, id uuid.UUID, usuario string, req dto.ReabrirOrdenRequest) (*model.OrdenTrabajo, error)
}

type ordenService struct {
	repo         repository.OrdenRepository
	clientes     repository.ClienteRepository
	vehiculos    repository.VehiculoRepository
	servicios    repository.ServicioRepository
	almacen      repository.AlmacenRepository
	mecanicos    repository.MecanicoRepository
	proveedores  repository.ProveedorRepository
	caja         CajaService
	liquidacion  LiquidacionService
	cajaRepo     repository.CajaRepository
}

func NewOrdenService(
	repo repository.OrdenRepository,
	clientes repository.ClienteRepository,
	vehiculos repository.VehiculoRepository,
	servicios repository.ServicioRepository,
	almacen repository.AlmacenRepository,
	mecanicos repository.MecanicoRepository,
	proveedores repository.ProveedorRepository,
	caja CajaService,
	liquidacion LiquidacionService,
	cajaRepo repository.CajaRepository,
) OrdenService {
	return &ordenService{
		repo:        repo,
		clientes:    clientes,
		vehiculos:   vehiculos,
		servicios:   servicios,
		almacen:     almacen,
		mecanicos:   mecanicos,
		proveedores: proveedores,
		caja:        caja,
		liquidacion: liquidacion,
		cajaRepo:    cajaRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*model.OrdenTrabajo, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	vehiculoID, err := uuid.Parse(req.VehiculoID)
	if err != nil {
		return nil, apierror.Validation("vehiculo_id inválido")
	}
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("cliente %s no encontrado", clienteID)
	}
	vehiculo, err := s.vehiculos.FindByID(ctx, vehiculoID)
	if err != nil {
		return nil, apierror.NotFound("vehículo %s no encontrado", vehiculoID)
	}
	if vehiculo.ClienteID != clienteID {
		return nil, apierror.Validation("el vehículo no pertenece al cliente indicado")
	}

	// An order with a fresher odometer reading advances the vehicle.
	if req.KmActual != nil && (vehiculo.KmActual == nil || *req.KmActual > *vehiculo.KmActual) {
		vehiculo.KmActual = req.KmActual
		if err := s.vehiculos.Save(ctx, vehiculo); err != nil {
			return nil, err
		}
	}

	numero, err := s.repo.NextNumero(ctx)
	if err != nil {
		return nil, err
	}
	orden := &model.OrdenTrabajo{
		Numero:      numero,
		Fecha:       time.Now(),
		Descripcion: req.Descripcion,
		Estado:      model.OrdenAbierta,
		FormaPago:   req.FormaPago,
		ClienteID:   clienteID,
		VehiculoID:  vehiculoID,
	}
	if err := s.repo.Create(ctx, orden); err != nil {
		return nil, err
	}
	log.Info().Int("numero", orden.Numero).Str("placa", vehiculo.Placa).Msg("orden creada")
	return orden, nil
}

func (s *ordenService) Obtener(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden %s no encontrada", id)
	}
	return orden, nil
}

func (s *ordenService) Listar(ctx context.Context, filter repository.OrdenFilter) ([]model.OrdenTrabajo, error) {
	return s.repo.List(ctx, filter)
}

func (s *ordenService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenRequest) (*model.OrdenTrabajo, error) {
	orden, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Descripcion != nil {
		orden.Descripcion = *req.Descripcion
	}
	if req.FormaPago != nil {
		orden.FormaPago = req.FormaPago
	}
	if err := s.repo.Save(ctx, orden); err != nil {
		return nil, err
	}
	return orden, nil
}

func (s *ordenService) Eliminar(ctx context.Context, id uuid.UUID) error {
	orden, err := s.editable(ctx, id)
	if err != nil {
		return err
	}
	if len(orden.Insumos) > 0 {
		return apierror.Precondition("la orden tiene insumos consumidos, retírelos antes de eliminar")
	}
	return s.repo.Delete(ctx, orden)
}

func (s *ordenService) ResumenFinanciero(ctx context.Context, id uuid.UUID) (*dto.ResumenFinancieroOrden, error) {
	if _, err := s.Obtener(ctx, id); err != nil {
		return nil, err
	}
	servicios, err := s.repo.SumSubtotalServiciosTx(nil, id)
	if err != nil {
		return nil, err
	}
	insumos, err := s.repo.SumSubtotalInsumosTx(nil, id)
	if err != nil {
		return nil, err
	}
	proveedor, err := s.repo.SumSubtotalProveedorTx(nil, id)
	if err != nil {
		return nil, err
	}
	total := servicios.Add(insumos)
	return &dto.ResumenFinancieroOrden{
		Total:             total,
		SubtotalServicios: servicios,
		SubtotalInsumos:   insumos,
		SubtotalProveedor: proveedor,
		Utilidad:          total.Sub(proveedor),
	}, nil
}

// editable loads the order and rejects mutations on settled orders.
func (s *ordenService) editable(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error) {
	orden, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.EsFinal() {
		return nil, apierror.Precondition("la orden #%d está %s y no admite cambios", orden.Numero, orden.Estado)
	}
	return orden, nil
}

// ── Service lines ────────────────────────────────────────────────────────────

func (s *ordenService) AgregarServicio(ctx context.Context, ordenID uuid.UUID, req dto.AgregarServicioRequest) (*model.DetalleOrden, error) {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return nil, err
	}
	servicioID, err := uuid.Parse(req.ServicioID)
	if err != nil {
		return nil, apierror.Validation("servicio_id inválido")
	}
	servicio, err := s.servicios.FindByID(ctx, servicioID)
	if err != nil {
		return nil, apierror.NotFound("servicio %s no encontrado", servicioID)
	}
	if !servicio.Activo {
		return nil, apierror.Precondition("el servicio %s está inactivo", servicio.Nombre)
	}

	precio := servicio.Precio
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Validation("el precio no puede ser negativo")
		}
		precio = *req.Precio
	}
	detalle := &model.DetalleOrden{
		OrdenID:        ordenID,
		ServicioID:     servicioID,
		Cantidad:       req.Cantidad,
		PrecioUnitario: precio,
		Subtotal:       precio.Mul(decimal.NewFromInt(int64(req.Cantidad))),
	}
	if err := s.repo.CreateDetalleServicio(ctx, detalle); err != nil {
		return nil, err
	}
	if err := s.recalcularTotal(ctx, ordenID); err != nil {
		return nil, err
	}
	return detalle, nil
}

func (s *ordenService) ActualizarLineaServicio(ctx context.Context, ordenID, detalleID uuid.UUID, req dto.ActualizarLineaServicioRequest) (*model.DetalleOrden, error) {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return nil, err
	}
	detalle, err := s.repo.FindDetalleServicio(ctx, detalleID)
	if err != nil || detalle.OrdenID != ordenID {
		return nil, apierror.NotFound("línea de servicio %s no encontrada", detalleID)
	}
	detalle.Cantidad = req.Cantidad
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Validation("el precio no puede ser negativo")
		}
		detalle.PrecioUnitario = *req.Precio
	}
	detalle.Subtotal = detalle.PrecioUnitario.Mul(decimal.NewFromInt(int64(detalle.Cantidad)))
	if err := s.repo.SaveDetalleServicio(ctx, detalle); err != nil {
		return nil, err
	}
	if err := s.recalcularTotal(ctx, ordenID); err != nil {
		return nil, err
	}
	return detalle, nil
}

func (s *ordenService) EliminarLineaServicio(ctx context.Context, ordenID, detalleID uuid.UUID) error {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return err
	}
	detalle, err := s.repo.FindDetalleServicio(ctx, detalleID)
	if err != nil || detalle.OrdenID != ordenID {
		return apierror.NotFound("línea de servicio %s no encontrada", detalleID)
	}
	if err := s.repo.DeleteDetalleServicio(ctx, detalle); err != nil {
		return err
	}
	return s.recalcularTotal(ctx, ordenID)
}

// ── Consumption lines ────────────────────────────────────────────────────────

// AgregarInsumo consumes stock onto the order. Prices and supplier cost are
// captured from the item at this moment; the supplier accrual is posted to
// its ledger right away, not deferred to the close.
func (s *ordenService) AgregarInsumo(ctx context.Context, ordenID uuid.UUID, usuario string, req dto.AgregarInsumoRequest) (*model.DetalleAlmacen, error) {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, apierror.Validation("item_id inválido")
	}
	if !req.Cantidad.IsPositive() {
		return nil, apierror.Validation("la cantidad debe ser mayor que cero")
	}

	var detalle *model.DetalleAlmacen
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item, err := s.almacen.FindByIDTx(tx, itemID)
		if err != nil {
			return apierror.NotFound("insumo %s no encontrado", itemID)
		}
		if !item.Activo {
			return apierror.Precondition("el insumo %s está inactivo", item.Nombre)
		}
		if item.StockActual.LessThan(req.Cantidad) {
			return apierror.Precondition("stock insuficiente de %s: disponible %s, solicitado %s",
				item.Nombre, item.StockActual, req.Cantidad)
		}

		detalle = &model.DetalleAlmacen{
			OrdenID:           ordenID,
			ItemID:            item.ID,
			ProveedorID:       item.ProveedorID,
			Cantidad:          req.Cantidad,
			PrecioUnitario:    item.ValorTaller,
			Subtotal:          item.ValorTaller.Mul(req.Cantidad),
			CostoProveedor:    item.ValorProveedor,
			SubtotalProveedor: item.ValorProveedor.Mul(req.Cantidad),
		}
		if err := s.repo.CreateDetalleInsumoTx(tx, detalle); err != nil {
			return err
		}

		item.StockActual = item.StockActual.Sub(req.Cantidad)
		if err := s.almacen.SaveTx(tx, item); err != nil {
			return err
		}
		salida := &model.MovimientoAlmacen{
			ItemID:        item.ID,
			OrdenID:       &ordenID,
			ProveedorID:   item.ProveedorID,
			Tipo:          "salida",
			Cantidad:      req.Cantidad,
			ValorUnitario: &item.ValorProveedor,
		}
		if err := s.almacen.CreateMovimientoTx(tx, salida); err != nil {
			return err
		}
		if item.ProveedorID != nil {
			cargo := &model.MovimientoProveedor{
				ProveedorID:   *item.ProveedorID,
				OrdenID:       &ordenID,
				ItemID:        &item.ID,
				Tipo:          model.MovProveedorCargo,
				Cantidad:      &req.Cantidad,
				ValorUnitario: &item.ValorProveedor,
				Subtotal:      detalle.SubtotalProveedor,
				Usuario:       &usuario,
			}
			if err := s.proveedores.CreateMovimientoTx(tx, cargo); err != nil {
				return err
			}
		}
		return s.recalcularTotalTx(tx, ordenID)
	})
	if err != nil {
		return nil, err
	}
	return detalle, nil
}

// EliminarInsumo returns stock and neutralizes the supplier accrual with a
// credit note. Ledger entries are never deleted.
func (s *ordenService) EliminarInsumo(ctx context.Context, ordenID, detalleID uuid.UUID, usuario string) error {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return err
	}
	detalle, err := s.repo.FindDetalleInsumo(ctx, detalleID)
	if err != nil || detalle.OrdenID != ordenID {
		return apierror.NotFound("insumo %s no encontrado en la orden", detalleID)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item, err := s.almacen.FindByIDTx(tx, detalle.ItemID)
		if err != nil {
			return err
		}
		item.StockActual = item.StockActual.Add(detalle.Cantidad)
		if err := s.almacen.SaveTx(tx, item); err != nil {
			return err
		}
		devolucion := &model.MovimientoAlmacen{
			ItemID:        item.ID,
			OrdenID:       &ordenID,
			ProveedorID:   detalle.ProveedorID,
			Tipo:          "devolucion",
			Cantidad:      detalle.Cantidad,
			ValorUnitario: &detalle.CostoProveedor,
		}
		if err := s.almacen.CreateMovimientoTx(tx, devolucion); err != nil {
			return err
		}
		if detalle.ProveedorID != nil {
			nota := &model.MovimientoProveedor{
				ProveedorID:   *detalle.ProveedorID,
				OrdenID:       &ordenID,
				ItemID:        &detalle.ItemID,
				Tipo:          model.MovProveedorNotaCredito,
				Cantidad:      &detalle.Cantidad,
				ValorUnitario: &detalle.CostoProveedor,
				Subtotal:      detalle.SubtotalProveedor,
				Usuario:       &usuario,
			}
			if err := s.proveedores.CreateMovimientoTx(tx, nota); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteDetalleInsumoTx(tx, detalle); err != nil {
			return err
		}
		return s.recalcularTotalTx(tx, ordenID)
	})
}

// ── Mechanic assignments ─────────────────────────────────────────────────────

func (s *ordenService) AsignarMecanico(ctx context.Context, ordenID uuid.UUID, req dto.AsignarMecanicoRequest) (*model.OrdenMecanico, error) {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return nil, err
	}
	mecanicoID, err := uuid.Parse(req.MecanicoID)
	if err != nil {
		return nil, apierror.Validation("mecanico_id inválido")
	}
	mecanico, err := s.mecanicos.FindByID(ctx, mecanicoID)
	if err != nil {
		return nil, apierror.NotFound("mecánico %s no encontrado", mecanicoID)
	}
	if !mecanico.Activo {
		return nil, apierror.Precondition("el mecánico %s está inactivo", mecanico.NombreCompleto())
	}
	if existente, err := s.repo.FindAsignacion(ctx, ordenID, mecanicoID); err == nil && existente != nil {
		return nil, apierror.Conflict("el mecánico ya está asignado a la orden")
	}

	asignacion := &model.OrdenMecanico{
		OrdenID:       ordenID,
		MecanicoID:    mecanicoID,
		Observaciones: req.Observaciones,
	}
	if req.Porcentaje != nil {
		if req.Porcentaje.IsNegative() || req.Porcentaje.GreaterThan(cien) {
			return nil, apierror.Validation("el porcentaje debe estar entre 0 y 100")
		}
		asignacion.Porcentaje = *req.Porcentaje
	}
	if err := s.repo.CreateAsignacion(ctx, asignacion); err != nil {
		return nil, err
	}
	return asignacion, nil
}

func (s *ordenService) QuitarMecanico(ctx context.Context, ordenID, mecanicoID uuid.UUID) error {
	if _, err := s.editable(ctx, ordenID); err != nil {
		return err
	}
	asignacion, err := s.repo.FindAsignacion(ctx, ordenID, mecanicoID)
	if err != nil {
		return apierror.NotFound("el mecánico no está asignado a la orden")
	}
	return s.repo.DeleteAsignacion(ctx, asignacion)
}

// ── Lifecycle and settlement ─────────────────────────────────────────────────

var transiciones = map[string][]string{
	model.OrdenAbierta:   {model.OrdenEnProceso, model.OrdenCerrada, model.OrdenCancelada},
	model.OrdenEnProceso: {model.OrdenAbierta, model.OrdenCerrada, model.OrdenCancelada},
}

// dedup collapses adjacent duplicates of a sorted slice.
func dedup(vals []string) []string {
	out := vals[:0]
	for _, v := range vals {
		if len(out) == 0 || out[len(out)-1] != v {
			out = append(out, v)
		}
	}
	return out
}

func transicionValida(desde, hacia string) bool {
	for _, t := range transiciones[desde] {
		if t == hacia {
			return true
		}
	}
	return false
}

func (s *ordenService) CambiarEstado(ctx context.Context, id uuid.UUID, usuario string, req dto.CambiarEstadoRequest) (*model.OrdenTrabajo, error) {
	orden, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado == req.Estado {
		return orden, nil
	}
	if !transicionValida(orden.Estado, req.Estado) {
		return nil, apierror.Precondition("transición %s → %s no permitida", orden.Estado, req.Estado)
	}

	// abierta y en_proceso se alternan libremente sin efecto financiero.
	if req.Estado == model.OrdenAbierta || req.Estado == model.OrdenEnProceso {
		orden.Estado = req.Estado
		if err := s.repo.Save(ctx, orden); err != nil {
			return nil, err
		}
		return orden, nil
	}

	// cerrada and cancelada settle: the whole settlement commits or none of
	// it does, and the state flips only as the last step.
	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.liquidarTx(tx, orden, usuario, req.Estado)
	}); err != nil {
		return nil, err
	}
	log.Info().
		Int("numero", orden.Numero).
		Str("estado", orden.Estado).
		Str("total", orden.Total.String()).
		Msg("orden liquidada")
	return orden, nil
}

func (s *ordenService) liquidarTx(tx *gorm.DB, orden *model.OrdenTrabajo, usuario, estadoFinal string) error {
	caja, err := s.caja.AbiertaTx(tx)
	if err != nil {
		return err
	}

	subServicios, err := s.repo.SumSubtotalServiciosTx(tx, orden.ID)
	if err != nil {
		return err
	}
	subInsumos, err := s.repo.SumSubtotalInsumosTx(tx, orden.ID)
	if err != nil {
		return err
	}
	orden.Total = subServicios.Add(subInsumos)

	if orden.Total.IsPositive() {
		ingreso := &model.MovimientoCaja{
			Tipo:     model.MovCajaIngreso,
			Concepto: fmt.Sprintf("Ingreso orden #%d", orden.Numero),
			Monto:    orden.Total,
			Usuario:  &usuario,
			OrdenID:  &orden.ID,
		}
		if err := s.caja.RegistrarMovimientoTx(tx, caja, ingreso); err != nil {
			return err
		}
	}

	provision, err := s.repo.SumSubtotalProveedorTx(tx, orden.ID)
	if err != nil {
		return err
	}
	if provision.IsPositive() {
		nombres, err := s.repo.ProveedoresDeOrdenTx(tx, orden.ID)
		if err != nil {
			return err
		}
		sort.Strings(nombres)
		egreso := &model.MovimientoCaja{
			Tipo:     model.MovCajaEgreso,
			Concepto: fmt.Sprintf("Provision proveedores orden #%d (%s)", orden.Numero, strings.Join(nombres, ", ")),
			Monto:    provision,
			Usuario:  &usuario,
			OrdenID:  &orden.ID,
		}
		if err := s.caja.RegistrarMovimientoTx(tx, caja, egreso); err != nil {
			return err
		}
	}

	// Commission base is labor only: inventory lines never generate
	// commission even though they count toward the order total.
	asignaciones, err := s.repo.ListAsignacionesTx(tx, orden.ID)
	if err != nil {
		return err
	}
	// Las comisiones se imputan a la quincena de la fecha de la orden, no a
	// la del cierre.
	fechaBase := orden.Fecha
	if fechaBase.IsZero() {
		fechaBase = time.Now()
	}
	totalComisiones := decimal.Zero
	var tecnicos []string
	liquidacionesTocadas := map[uuid.UUID]bool{}
	for i := range asignaciones {
		a := &asignaciones[i]
		pct := a.Porcentaje
		if pct.IsZero() && a.Mecanico != nil {
			pct = a.Mecanico.PorcentajeBase
		}
		monto := subServicios.Mul(pct).Div(cien)
		a.Monto = monto
		if err := s.repo.SaveAsignacionTx(tx, a); err != nil {
			return err
		}
		if !monto.IsPositive() {
			continue
		}
		totalComisiones = totalComisiones.Add(monto)
		if a.Mecanico != nil {
			tecnicos = append(tecnicos, a.Mecanico.NombreCompleto())
		}

		liq, err := s.liquidacion.ObtenerOCrearPendienteTx(tx, a.MecanicoID, fechaBase)
		if err != nil {
			return err
		}
		if err := s.liquidacion.RegistrarDetalleTx(tx, liq, orden.ID, pct, subServicios, monto); err != nil {
			return err
		}
		liquidacionesTocadas[liq.ID] = true
	}
	for liqID := range liquidacionesTocadas {
		if err := s.liquidacion.RecalcularTotalesTx(tx, liqID); err != nil {
			return err
		}
	}

	if totalComisiones.IsPositive() {
		sort.Strings(tecnicos)
		egreso := &model.MovimientoCaja{
			Tipo:     model.MovCajaEgreso,
			Concepto: fmt.Sprintf("Provision mecanicos orden #%d (%s)", orden.Numero, strings.Join(dedup(tecnicos), ", ")),
			Monto:    totalComisiones,
			Usuario:  &usuario,
			OrdenID:  &orden.ID,
		}
		if err := s.caja.RegistrarMovimientoTx(tx, caja, egreso); err != nil {
			return err
		}
	}

	if err := s.caja.RecalcularSaldoTx(tx, caja); err != nil {
		return err
	}

	now := time.Now()
	orden.FechaSalida = &now
	orden.Estado = estadoFinal
	return s.repo.SaveTx(tx, orden)
}

func (s *ordenService) Reabrir(ctx context.Context, id uuid.UUID, usuario string, req dto.ReabrirOrdenRequest) (*model.OrdenTrabajo, error) {
	orden, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado != model.OrdenCerrada {
		return nil, apierror.Precondition("solo una orden cerrada puede reabrirse, la orden #%d está %s", orden.Numero, orden.Estado)
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		caja, err := s.caja.AbiertaTx(tx)
		if err != nil {
			return err
		}

		// Reverse every settlement posting with an inverse entry referencing
		// the original via reversa_de_id. Postings already reversed are
		// skipped, so a retried reopen never double-reverses.
		movs, err := s.cajaRepo.MovimientosPorOrdenTx(tx, orden.ID)
		if err != nil {
			return err
		}
		for i := range movs {
			mov := &movs[i]
			if mov.ReversaDeID != nil {
				continue
			}
			yaRevertido, err := s.cajaRepo.ExisteReversaTx(tx, mov.ID)
			if err != nil {
				return err
			}
			if yaRevertido {
				continue
			}
			tipo := model.MovCajaIngreso
			if mov.Tipo == model.MovCajaIngreso {
				tipo = model.MovCajaEgreso
			}
			reversa := &model.MovimientoCaja{
				CajaID:      caja.ID,
				Tipo:        tipo,
				Concepto:    "Reversa: " + mov.Concepto,
				Monto:       mov.Monto,
				Motivo:      &req.Motivo,
				Usuario:     &usuario,
				OrdenID:     &orden.ID,
				ProveedorID: mov.ProveedorID,
				ReversaDeID: &mov.ID,
			}
			if err := s.cajaRepo.CreateMovimientoTx(tx, reversa); err != nil {
				return err
			}
		}

		if err := s.repo.ZeroMontosAsignacionesTx(tx, orden.ID); err != nil {
			return err
		}
		if err := s.liquidacion.QuitarOrdenTx(tx, orden.ID); err != nil {
			return err
		}
		if err := s.caja.RecalcularSaldoTx(tx, caja); err != nil {
			return err
		}

		now := time.Now()
		orden.FechaReapertura = &now
		orden.FechaSalida = nil
		orden.Descripcion = orden.Descripcion + "\n[REAPERTURA]: " + req.Motivo
		orden.Estado = model.OrdenEnProceso
		return s.repo.SaveTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("numero", orden.Numero).Str("motivo", req.Motivo).Msg("orden reabierta")
	return orden, nil
}

func (s *ordenService) recalcularTotal(ctx context.Context, ordenID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.recalcularTotalTx(tx, ordenID)
	})
}

func (s *ordenService) recalcularTotalTx(tx *gorm.DB, ordenID uuid.UUID) error {
	servicios, err := s.repo.SumSubtotalServiciosTx(tx, ordenID)
	if err != nil {
		return err
	}
	insumos, err := s.repo.SumSubtotalInsumosTx(tx, ordenID)
	if err != nil {
		return err
	}
	orden, err := s.repo.FindByIDTx(tx, ordenID)
	if err != nil {
		return err
	}
	orden.Total = servicios.Add(insumos)
	return s.repo.SaveTx(tx, orden)
}
