package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
)

type MecanicosHandler struct{ svc service.MecanicoService }

func NewMecanicosHandler(svc service.MecanicoService) *MecanicosHandler {
	return &MecanicosHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar mecánico
// @Tags mecanicos
// @Security BearerAuth
// @Param body body dto.CrearMecanicoRequest true "Mecánico"
// @Success 201 {object} model.Mecanico
// @Router /v1/mecanicos [post]
func (h *MecanicosHandler) Crear(c *gin.Context) {
	var req dto.CrearMecanicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mecanico, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mecanico)
}

func (h *MecanicosHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarMecanicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mecanico, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mecanico)
}

func (h *MecanicosHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	mecanico, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mecanico)
}

func (h *MecanicosHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("activos") == "true"
	mecanicos, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mecanicos)
}
