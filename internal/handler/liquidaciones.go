package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/infra"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/middleware"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LiquidacionesHandler struct {
	svc        service.LiquidacionService
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewLiquidacionesHandler(svc service.LiquidacionService, dispatcher *worker.Dispatcher, cfg *config.Config) *LiquidacionesHandler {
	return &LiquidacionesHandler{svc: svc, dispatcher: dispatcher, cfg: cfg}
}

// Listar godoc
// @Summary Listar liquidaciones quincenales
// @Tags liquidaciones
// @Security BearerAuth
// @Param mecanico_id query string false "Filtrar por mecánico"
// @Success 200 {array} model.Liquidacion
// @Router /v1/liquidaciones [get]
func (h *LiquidacionesHandler) Listar(c *gin.Context) {
	var mecanicoID *uuid.UUID
	if raw := c.Query("mecanico_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "mecanico_id inválido"})
			return
		}
		mecanicoID = &id
	}
	liquidaciones, err := h.svc.Listar(c.Request.Context(), mecanicoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, liquidaciones)
}

func (h *LiquidacionesHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	liq, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, liq)
}

// MarcarPagada godoc
// @Summary Pagar una liquidación pendiente (registra egreso de caja)
// @Tags liquidaciones
// @Security BearerAuth
// @Param id path string true "ID de liquidación"
// @Param body body dto.MarcarPagadaRequest true "Pago"
// @Success 200 {object} model.Liquidacion
// @Failure 400 {object} apierror.APIError
// @Router /v1/liquidaciones/{id}/pagar [post]
func (h *LiquidacionesHandler) MarcarPagada(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.MarcarPagadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	liq, err := h.svc.MarcarPagada(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.enviarReciboNomina(c, liq)
	c.JSON(http.StatusOK, liq)
}

// enviarReciboNomina encola el recibo de nómina por correo. El pago ya quedó
// registrado, así que un fallo aquí solo se loguea.
func (h *LiquidacionesHandler) enviarReciboNomina(c *gin.Context, liq *model.Liquidacion) {
	if liq.Mecanico == nil || liq.Mecanico.Email == nil || *liq.Mecanico.Email == "" {
		return
	}
	path, err := infra.GenerateNominaPDF(liq, h.cfg.TallerNombre, h.cfg.PDFStoragePath)
	if err != nil {
		log.Warn().Err(err).Str("liquidacion_id", liq.ID.String()).Msg("no se pudo generar el recibo de nómina")
		return
	}
	payload := worker.EmailJobPayload{
		ToEmail: *liq.Mecanico.Email,
		Subject: "Recibo de nómina",
		Body:    "Adjuntamos el recibo de su liquidación quincenal.",
		PDFPath: path,
	}
	if err := h.dispatcher.EnqueueEmail(c.Request.Context(), payload); err != nil {
		log.Warn().Err(err).Str("liquidacion_id", liq.ID.String()).Msg("no se pudo encolar el recibo de nómina")
	}
}

// DescargarNomina godoc
// @Summary Descargar comprobante de nómina en PDF
// @Tags liquidaciones
// @Security BearerAuth
// @Param id path string true "ID de liquidación"
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /v1/liquidaciones/{id}/nomina [get]
func (h *LiquidacionesHandler) DescargarNomina(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	liq, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateNominaPDF(liq, h.cfg.TallerNombre, h.cfg.PDFStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "nomina.pdf")
}
