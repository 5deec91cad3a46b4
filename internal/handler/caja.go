package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/middleware"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abrir caja del día
// @Tags caja
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Apertura"
// @Success 201 {object} model.Caja
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	caja, err := h.svc.Abrir(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, caja)
}

// Cerrar godoc
// @Summary Cerrar la caja abierta
// @Tags caja
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Cierre"
// @Success 200 {object} model.Caja
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	caja, err := h.svc.Cerrar(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, caja)
}

// Actual godoc
// @Summary Caja abierta actual
// @Tags caja
// @Security BearerAuth
// @Success 200 {object} model.Caja
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/actual [get]
func (h *CajaHandler) Actual(c *gin.Context) {
	caja, err := h.svc.ObtenerAbierta(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, caja)
}

func (h *CajaHandler) Listar(c *gin.Context) {
	cajas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cajas)
}

func (h *CajaHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	caja, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, caja)
}

// Resumen godoc
// @Summary Resumen financiero de una caja
// @Tags caja
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 200 {object} dto.ResumenCajaResponse
// @Router /v1/caja/{id}/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resumen, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumen)
}

// Movimientos lists cash movements, optionally filtered by ?caja_id=.
func (h *CajaHandler) Movimientos(c *gin.Context) {
	var cajaID *uuid.UUID
	if raw := c.Query("caja_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "caja_id inválido"})
			return
		}
		cajaID = &id
	}
	movs, err := h.svc.ListarMovimientos(c.Request.Context(), cajaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movs)
}

// RegistrarMovimiento godoc
// @Summary Registrar movimiento manual de caja
// @Tags caja
// @Security BearerAuth
// @Param body body dto.MovimientoCajaRequest true "Movimiento"
// @Success 201 {object} model.MovimientoCaja
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	mov, err := h.svc.RegistrarMovimientoManual(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}
