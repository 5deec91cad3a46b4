package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/infra"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/middleware"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdenesHandler struct {
	svc        service.OrdenService
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewOrdenesHandler(svc service.OrdenService, dispatcher *worker.Dispatcher, cfg *config.Config) *OrdenesHandler {
	return &OrdenesHandler{svc: svc, dispatcher: dispatcher, cfg: cfg}
}

// Crear godoc
// @Summary Crear orden de trabajo
// @Tags ordenes
// @Security BearerAuth
// @Param body body dto.CrearOrdenRequest true "Orden"
// @Success 201 {object} model.OrdenTrabajo
// @Router /v1/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	orden, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orden)
}

// Listar godoc
// @Summary Listar ordenes
// @Tags ordenes
// @Security BearerAuth
// @Param estado query string false "Filtrar por estado"
// @Param cliente_id query string false "Filtrar por cliente"
// @Param vehiculo_id query string false "Filtrar por vehículo"
// @Success 200 {array} model.OrdenTrabajo
// @Router /v1/ordenes [get]
func (h *OrdenesHandler) Listar(c *gin.Context) {
	var filter repository.OrdenFilter
	filter.Estado = c.Query("estado")
	if raw := c.Query("cliente_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cliente_id inválido"})
			return
		}
		filter.ClienteID = &id
	}
	if raw := c.Query("vehiculo_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "vehiculo_id inválido"})
			return
		}
		filter.VehiculoID = &id
	}
	ordenes, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordenes)
}

func (h *OrdenesHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	orden, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orden)
}

func (h *OrdenesHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	orden, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orden)
}

func (h *OrdenesHandler) Eliminar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResumenFinanciero godoc
// @Summary Resumen financiero de la orden
// @Tags ordenes
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Success 200 {object} dto.ResumenFinancieroOrden
// @Router /v1/ordenes/{id}/resumen [get]
func (h *OrdenesHandler) ResumenFinanciero(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resumen, err := h.svc.ResumenFinanciero(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumen)
}

// ── Líneas de servicio ───────────────────────────────────────────────────────

func (h *OrdenesHandler) AgregarServicio(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	detalle, err := h.svc.AgregarServicio(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detalle)
}

func (h *OrdenesHandler) ActualizarLineaServicio(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := pathUUID(c, "detalleId")
	if !ok {
		return
	}
	var req dto.ActualizarLineaServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	detalle, err := h.svc.ActualizarLineaServicio(c.Request.Context(), id, detalleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detalle)
}

func (h *OrdenesHandler) EliminarLineaServicio(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := pathUUID(c, "detalleId")
	if !ok {
		return
	}
	if err := h.svc.EliminarLineaServicio(c.Request.Context(), id, detalleID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Insumos de almacén ───────────────────────────────────────────────────────

// AgregarInsumo godoc
// @Summary Agregar insumo de almacén a la orden
// @Tags ordenes
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Param body body dto.AgregarInsumoRequest true "Insumo"
// @Success 201 {object} model.DetalleAlmacen
// @Failure 400 {object} apierror.APIError
// @Router /v1/ordenes/{id}/insumos [post]
func (h *OrdenesHandler) AgregarInsumo(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	detalle, err := h.svc.AgregarInsumo(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detalle)
}

func (h *OrdenesHandler) EliminarInsumo(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := pathUUID(c, "detalleId")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.EliminarInsumo(c.Request.Context(), id, detalleID, claims.Username); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Mecánicos asignados ──────────────────────────────────────────────────────

func (h *OrdenesHandler) AsignarMecanico(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarMecanicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	asignacion, err := h.svc.AsignarMecanico(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asignacion)
}

func (h *OrdenesHandler) QuitarMecanico(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	mecanicoID, ok := pathUUID(c, "mecanicoId")
	if !ok {
		return
	}
	if err := h.svc.QuitarMecanico(c.Request.Context(), id, mecanicoID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Ciclo de vida ────────────────────────────────────────────────────────────

// CambiarEstado godoc
// @Summary Cambiar estado de la orden (cerrar/cancelar liquida la orden)
// @Tags ordenes
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Param body body dto.CambiarEstadoRequest true "Nuevo estado"
// @Success 200 {object} model.OrdenTrabajo
// @Failure 400 {object} apierror.APIError
// @Router /v1/ordenes/{id}/estado [patch]
func (h *OrdenesHandler) CambiarEstado(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orden, err := h.svc.CambiarEstado(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orden)
}

// Reabrir godoc
// @Summary Reabrir una orden cerrada (revierte sus asientos de caja)
// @Tags ordenes
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Param body body dto.ReabrirOrdenRequest true "Motivo"
// @Success 200 {object} model.OrdenTrabajo
// @Failure 400 {object} apierror.APIError
// @Router /v1/ordenes/{id}/reabrir [post]
func (h *OrdenesHandler) Reabrir(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ReabrirOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	orden, err := h.svc.Reabrir(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orden)
}

// ── Comprobantes ─────────────────────────────────────────────────────────────

// DescargarPDF godoc
// @Summary Descargar comprobante PDF de la orden
// @Tags ordenes
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /v1/ordenes/{id}/pdf [get]
func (h *OrdenesHandler) DescargarPDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	orden, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateOrdenPDF(orden, h.cfg.TallerNombre, h.cfg.TallerTelefono, h.cfg.PDFStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "orden.pdf")
}

// EnviarPDF genera el comprobante y lo encola para envío por correo.
func (h *OrdenesHandler) EnviarPDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	orden, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if orden.Cliente == nil || orden.Cliente.Email == nil || *orden.Cliente.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "el cliente no tiene email registrado"})
		return
	}
	path, err := infra.GenerateOrdenPDF(orden, h.cfg.TallerNombre, h.cfg.TallerTelefono, h.cfg.PDFStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	payload := worker.EmailJobPayload{
		ToEmail: *orden.Cliente.Email,
		Subject: "Comprobante de orden",
		Body:    "Adjuntamos el comprobante de su orden de trabajo.",
		PDFPath: path,
	}
	if err := h.dispatcher.EnqueueEmail(c.Request.Context(), payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
