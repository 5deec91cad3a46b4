package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehiculosHandler struct{ svc service.VehiculoService }

func NewVehiculosHandler(svc service.VehiculoService) *VehiculosHandler {
	return &VehiculosHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar vehículo
// @Tags vehiculos
// @Security BearerAuth
// @Param body body dto.CrearVehiculoRequest true "Vehículo"
// @Success 201 {object} model.Vehiculo
// @Failure 409 {object} apierror.APIError
// @Router /v1/vehiculos [post]
func (h *VehiculosHandler) Crear(c *gin.Context) {
	var req dto.CrearVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vehiculo, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehiculo)
}

func (h *VehiculosHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vehiculo, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculo)
}

func (h *VehiculosHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	vehiculo, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculo)
}

func (h *VehiculosHandler) Listar(c *gin.Context) {
	var clienteID *uuid.UUID
	if raw := c.Query("cliente_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cliente_id inválido"})
			return
		}
		clienteID = &id
	}
	vehiculos, err := h.svc.Listar(c.Request.Context(), clienteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculos)
}

// ActualizarKm godoc
// @Summary Actualizar kilometraje (solo hacia adelante)
// @Tags vehiculos
// @Security BearerAuth
// @Param id path string true "ID de vehículo"
// @Param body body dto.ActualizarKmRequest true "Kilometraje"
// @Success 200 {object} model.Vehiculo
// @Failure 422 {object} apierror.APIError
// @Router /v1/vehiculos/{id}/km [patch]
func (h *VehiculosHandler) ActualizarKm(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarKmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vehiculo, err := h.svc.ActualizarKm(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculo)
}
