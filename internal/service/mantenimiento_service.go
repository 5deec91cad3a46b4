package service

import (
	"context"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Rule evaluation outcomes.
const (
	EstadoOk      = "ok"
	EstadoProximo = "proximo"
	EstadoVencido = "vencido"
)

// EstadoRegla is the result of evaluating one maintenance rule against one
// vehicle's baseline. Remaining values go negative once the interval is
// exceeded; progress saturates at 100.
type EstadoRegla struct {
	Estado         string
	Progreso       int
	KmRecorridos   *int
	KmRestantes    *int
	DiasRecorridos *int
	DiasRestantes  *int
}

// EvaluarRegla evaluates a rule purely from its inputs. A dimension runs when
// its interval is positive; an unknown odometer counts as zero distance
// traveled, so the rule still surfaces proximo when the tolerance covers the
// whole interval. The rule is vencido when either dimension reached its
// interval, proximo when either entered the tolerance window, ok otherwise.
func EvaluarRegla(regla *model.ReglaMantenimiento, kmActual *int, kmBase *int, fechaBase *time.Time, hoy time.Time) EstadoRegla {
	res := EstadoRegla{Estado: EstadoOk}
	var progKm, progDias float64
	vencido, proximo := false, false

	if regla.IntervaloKm != nil && *regla.IntervaloKm > 0 {
		recorridos := 0
		if kmActual != nil && kmBase != nil {
			recorridos = *kmActual - *kmBase
		}
		if recorridos < 0 {
			recorridos = 0
		}
		restantes := *regla.IntervaloKm - recorridos
		res.KmRecorridos = &recorridos
		res.KmRestantes = &restantes
		progKm = float64(recorridos) / float64(*regla.IntervaloKm)
		if recorridos >= *regla.IntervaloKm {
			vencido = true
		}
		umbral := *regla.IntervaloKm - regla.ToleranciaKm
		if umbral < 0 {
			umbral = 0
		}
		if recorridos >= umbral {
			proximo = true
		}
	}

	if regla.IntervaloDias != nil && *regla.IntervaloDias > 0 && fechaBase != nil {
		transcurridos := int(hoy.Sub(*fechaBase).Hours() / 24)
		if transcurridos < 0 {
			transcurridos = 0
		}
		restantes := *regla.IntervaloDias - transcurridos
		res.DiasRecorridos = &transcurridos
		res.DiasRestantes = &restantes
		progDias = float64(transcurridos) / float64(*regla.IntervaloDias)
		if transcurridos >= *regla.IntervaloDias {
			vencido = true
		}
		umbral := *regla.IntervaloDias - regla.ToleranciaDias
		if umbral < 0 {
			umbral = 0
		}
		if transcurridos >= umbral {
			proximo = true
		}
	}

	prog := progKm
	if progDias > prog {
		prog = progDias
	}
	if prog < 0 {
		prog = 0
	}
	if prog > 1 {
		prog = 1
	}
	res.Progreso = int(prog * 100)

	switch {
	case vencido:
		res.Estado = EstadoVencido
	case proximo:
		res.Estado = EstadoProximo
	}
	return res
}

type MantenimientoService interface {
	CrearRegla(ctx context.Context, req dto.CrearReglaRequest) (*model.ReglaMantenimiento, error)
	ActualizarRegla(ctx context.Context, id uuid.UUID, req dto.ActualizarReglaRequest) (*model.ReglaMantenimiento, error)
	EliminarRegla(ctx context.Context, id uuid.UUID) error
	ListarReglas(ctx context.Context, soloActivas bool) ([]model.ReglaMantenimiento, error)

	EvaluarVehiculo(ctx context.Context, vehiculoID uuid.UUID) ([]dto.EstadoReglaResponse, error)
	ResetBase(ctx context.Context, vehiculoID uuid.UUID, req dto.ResetBaseRequest) error
	AlertasTaller(ctx context.Context) ([]dto.AlertasVehiculoResponse, error)
}

type mantenimientoService struct {
	reglas    repository.ReglaRepository
	vehiculos repository.VehiculoRepository
}

func NewMantenimientoService(reglas repository.ReglaRepository, vehiculos repository.VehiculoRepository) MantenimientoService {
	return &mantenimientoService{reglas: reglas, vehiculos: vehiculos}
}

func (s *mantenimientoService) CrearRegla(ctx context.Context, req dto.CrearReglaRequest) (*model.ReglaMantenimiento, error) {
	if req.IntervaloKm == nil && req.IntervaloDias == nil {
		return nil, apierror.Validation("la regla debe tener al menos un intervalo (km o días)")
	}
	regla := &model.ReglaMantenimiento{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		IntervaloKm:   req.IntervaloKm,
		IntervaloDias: req.IntervaloDias,
		ToleranciaKm:  200,
		ToleranciaDias: 3,
		Activo:        true,
	}
	if req.ToleranciaKm != nil {
		regla.ToleranciaKm = *req.ToleranciaKm
	}
	if req.ToleranciaDias != nil {
		regla.ToleranciaDias = *req.ToleranciaDias
	}
	if err := s.reglas.Create(ctx, regla); err != nil {
		return nil, err
	}
	return regla, nil
}

func (s *mantenimientoService) ActualizarRegla(ctx context.Context, id uuid.UUID, req dto.ActualizarReglaRequest) (*model.ReglaMantenimiento, error) {
	regla, err := s.reglas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("regla %s no encontrada", id)
	}
	if req.Nombre != nil {
		regla.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		regla.Descripcion = req.Descripcion
	}
	if req.IntervaloKm != nil {
		regla.IntervaloKm = req.IntervaloKm
	}
	if req.IntervaloDias != nil {
		regla.IntervaloDias = req.IntervaloDias
	}
	if req.ToleranciaKm != nil {
		regla.ToleranciaKm = *req.ToleranciaKm
	}
	if req.ToleranciaDias != nil {
		regla.ToleranciaDias = *req.ToleranciaDias
	}
	if req.Activo != nil {
		regla.Activo = *req.Activo
	}
	if regla.IntervaloKm == nil && regla.IntervaloDias == nil {
		return nil, apierror.Validation("la regla debe conservar al menos un intervalo (km o días)")
	}
	if err := s.reglas.Save(ctx, regla); err != nil {
		return nil, err
	}
	return regla, nil
}

func (s *mantenimientoService) EliminarRegla(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reglas.FindByID(ctx, id); err != nil {
		return apierror.NotFound("regla %s no encontrada", id)
	}
	return s.reglas.Delete(ctx, id)
}

func (s *mantenimientoService) ListarReglas(ctx context.Context, soloActivas bool) ([]model.ReglaMantenimiento, error) {
	return s.reglas.List(ctx, soloActivas)
}

// EvaluarVehiculo evaluates every active rule against the vehicle. Baselines
// are created lazily on first evaluation from the vehicle's current state, so
// a just-registered vehicle starts every rule at zero progress.
func (s *mantenimientoService) EvaluarVehiculo(ctx context.Context, vehiculoID uuid.UUID) ([]dto.EstadoReglaResponse, error) {
	vehiculo, err := s.vehiculos.FindByID(ctx, vehiculoID)
	if err != nil {
		return nil, apierror.NotFound("vehículo %s no encontrado", vehiculoID)
	}
	reglas, err := s.reglas.List(ctx, true)
	if err != nil {
		return nil, err
	}
	hoy := time.Now()

	out := make([]dto.EstadoReglaResponse, 0, len(reglas))
	for i := range reglas {
		regla := &reglas[i]
		base, err := s.baseParaRegla(ctx, vehiculo, regla, hoy)
		if err != nil {
			return nil, err
		}
		estado := EvaluarRegla(regla, vehiculo.KmActual, base.KmBase, base.FechaBase, hoy)
		out = append(out, estadoToResponse(regla, base, estado))
	}
	return out, nil
}

func (s *mantenimientoService) baseParaRegla(ctx context.Context, vehiculo *model.Vehiculo, regla *model.ReglaMantenimiento, hoy time.Time) (*model.VehiculoReglaBase, error) {
	base, err := s.reglas.FindBase(ctx, vehiculo.ID, regla.ID)
	if err != nil {
		return nil, err
	}
	if base != nil {
		return base, nil
	}
	fecha := hoy
	base = &model.VehiculoReglaBase{
		VehiculoID: vehiculo.ID,
		ReglaID:    regla.ID,
		KmBase:     vehiculo.KmActual,
		FechaBase:  &fecha,
	}
	if err := s.reglas.CreateBase(ctx, base); err != nil {
		return nil, err
	}
	log.Debug().
		Str("vehiculo_id", vehiculo.ID.String()).
		Str("regla", regla.Nombre).
		Msg("línea base creada en primera evaluación")
	return base, nil
}

// ResetBase re-anchors a rule's baseline after the maintenance was performed.
// Km defaults to the vehicle's current odometer, the date to today.
func (s *mantenimientoService) ResetBase(ctx context.Context, vehiculoID uuid.UUID, req dto.ResetBaseRequest) error {
	vehiculo, err := s.vehiculos.FindByID(ctx, vehiculoID)
	if err != nil {
		return apierror.NotFound("vehículo %s no encontrado", vehiculoID)
	}
	reglaID, err := uuid.Parse(req.ReglaID)
	if err != nil {
		return apierror.Validation("regla_id inválido")
	}
	if _, err := s.reglas.FindByID(ctx, reglaID); err != nil {
		return apierror.NotFound("regla %s no encontrada", reglaID)
	}

	km := vehiculo.KmActual
	if req.Km != nil {
		km = req.Km
	}
	fecha := time.Now()
	if req.Fecha != nil {
		parsed, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return apierror.Validation("fecha inválida, formato esperado AAAA-MM-DD")
		}
		fecha = parsed
	}

	base, err := s.reglas.FindBase(ctx, vehiculoID, reglaID)
	if err != nil {
		return err
	}
	if base == nil {
		base = &model.VehiculoReglaBase{VehiculoID: vehiculoID, ReglaID: reglaID}
		base.KmBase = km
		base.FechaBase = &fecha
		return s.reglas.CreateBase(ctx, base)
	}
	base.KmBase = km
	base.FechaBase = &fecha
	return s.reglas.SaveBase(ctx, base)
}

// AlertasTaller evaluates every vehicle against every active rule and returns
// only the vehicles with at least one rule due or due soon.
func (s *mantenimientoService) AlertasTaller(ctx context.Context) ([]dto.AlertasVehiculoResponse, error) {
	vehiculos, err := s.vehiculos.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertasVehiculoResponse, 0)
	for i := range vehiculos {
		v := &vehiculos[i]
		estados, err := s.EvaluarVehiculo(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		entrada := dto.AlertasVehiculoResponse{
			VehiculoID: v.ID.String(),
			Placa:      v.Placa,
			KmActual:   v.KmActual,
			Vencidos:   []dto.EstadoReglaResponse{},
			Proximos:   []dto.EstadoReglaResponse{},
		}
		for _, e := range estados {
			switch e.Estado {
			case EstadoVencido:
				entrada.Vencidos = append(entrada.Vencidos, e)
			case EstadoProximo:
				entrada.Proximos = append(entrada.Proximos, e)
			}
		}
		if len(entrada.Vencidos) > 0 || len(entrada.Proximos) > 0 {
			alertas = append(alertas, entrada)
		}
	}
	return alertas, nil
}

func estadoToResponse(regla *model.ReglaMantenimiento, base *model.VehiculoReglaBase, e EstadoRegla) dto.EstadoReglaResponse {
	resp := dto.EstadoReglaResponse{
		ReglaID:        regla.ID.String(),
		Nombre:         regla.Nombre,
		Estado:         e.Estado,
		Progreso:       e.Progreso,
		KmRecorridos:   e.KmRecorridos,
		KmRestantes:    e.KmRestantes,
		DiasRecorridos: e.DiasRecorridos,
		DiasRestantes:  e.DiasRestantes,
		KmBase:         base.KmBase,
	}
	if base.FechaBase != nil {
		f := base.FechaBase.Format("2006-01-02")
		resp.FechaBase = &f
	}
	return resp
}
