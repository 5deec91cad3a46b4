package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type MantenimientoHandler struct {
	svc        service.MantenimientoService
	vehiculos  service.VehiculoService
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewMantenimientoHandler(svc service.MantenimientoService, vehiculos service.VehiculoService, dispatcher *worker.Dispatcher, cfg *config.Config) *MantenimientoHandler {
	return &MantenimientoHandler{svc: svc, vehiculos: vehiculos, dispatcher: dispatcher, cfg: cfg}
}

// ── Reglas ───────────────────────────────────────────────────────────────────

// CrearRegla godoc
// @Summary Crear regla de mantenimiento
// @Tags mantenimiento
// @Security BearerAuth
// @Param body body dto.CrearReglaRequest true "Regla"
// @Success 201 {object} model.ReglaMantenimiento
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/mantenimiento/reglas [post]
func (h *MantenimientoHandler) CrearRegla(c *gin.Context) {
	var req dto.CrearReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	regla, err := h.svc.CrearRegla(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, regla)
}

func (h *MantenimientoHandler) ActualizarRegla(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	regla, err := h.svc.ActualizarRegla(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regla)
}

func (h *MantenimientoHandler) EliminarRegla(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarRegla(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MantenimientoHandler) ListarReglas(c *gin.Context) {
	soloActivas := c.Query("activas") == "true"
	reglas, err := h.svc.ListarReglas(c.Request.Context(), soloActivas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reglas)
}

// ── Evaluación ───────────────────────────────────────────────────────────────

// EvaluarVehiculo godoc
// @Summary Evaluar reglas de mantenimiento sobre un vehículo
// @Tags mantenimiento
// @Security BearerAuth
// @Param id path string true "ID de vehículo"
// @Success 200 {array} dto.EstadoReglaResponse
// @Router /v1/vehiculos/{id}/mantenimiento [get]
func (h *MantenimientoHandler) EvaluarVehiculo(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	estados, err := h.svc.EvaluarVehiculo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estados)
}

// ResetBase godoc
// @Summary Marcar un mantenimiento como realizado (reinicia la línea base)
// @Tags mantenimiento
// @Security BearerAuth
// @Param id path string true "ID de vehículo"
// @Param body body dto.ResetBaseRequest true "Base"
// @Success 204
// @Router /v1/vehiculos/{id}/mantenimiento/reset [post]
func (h *MantenimientoHandler) ResetBase(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ResetBaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetBase(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Alertas godoc
// @Summary Vehículos con mantenimientos vencidos o próximos
// @Tags mantenimiento
// @Security BearerAuth
// @Success 200 {array} dto.AlertasVehiculoResponse
// @Router /v1/mantenimiento/alertas [get]
func (h *MantenimientoHandler) Alertas(c *gin.Context) {
	alertas, err := h.svc.AlertasTaller(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alertas)
}

// EnviarRecordatorios encola un correo de recordatorio por cada vehículo en
// alerta cuyo cliente tenga email registrado. Responde con el conteo encolado.
func (h *MantenimientoHandler) EnviarRecordatorios(c *gin.Context) {
	alertas, err := h.svc.AlertasTaller(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	encolados := 0
	for _, a := range alertas {
		vehiculoID, err := uuid.Parse(a.VehiculoID)
		if err != nil {
			continue
		}
		vehiculo, err := h.vehiculos.Obtener(c.Request.Context(), vehiculoID)
		if err != nil || vehiculo.Cliente == nil || vehiculo.Cliente.Email == nil || *vehiculo.Cliente.Email == "" {
			continue
		}

		payload := worker.RecordatorioJobPayload{
			ToEmail:        *vehiculo.Cliente.Email,
			ClienteNombre:  vehiculo.Cliente.Nombre,
			Placa:          a.Placa,
			TallerNombre:   h.cfg.TallerNombre,
			TallerTelefono: h.cfg.TallerTelefono,
		}
		for _, e := range a.Vencidos {
			payload.Vencidos = append(payload.Vencidos, e.Nombre)
		}
		for _, e := range a.Proximos {
			payload.Proximos = append(payload.Proximos, e.Nombre)
		}

		if err := h.dispatcher.EnqueueRecordatorio(c.Request.Context(), payload); err != nil {
			log.Error().Err(err).Str("placa", a.Placa).Msg("no se pudo encolar recordatorio")
			continue
		}
		encolados++
	}

	c.JSON(http.StatusAccepted, gin.H{"encolados": encolados, "vehiculos_en_alerta": len(alertas)})
}
