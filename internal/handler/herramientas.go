package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HerramientasHandler struct{ svc service.HerramientaService }

func NewHerramientasHandler(svc service.HerramientaService) *HerramientasHandler {
	return &HerramientasHandler{svc: svc}
}

func (h *HerramientasHandler) Crear(c *gin.Context) {
	var req dto.CrearHerramientaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	herramienta, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, herramienta)
}

func (h *HerramientasHandler) Listar(c *gin.Context) {
	herramientas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, herramientas)
}

// Prestar godoc
// @Summary Prestar herramienta a un mecánico
// @Tags herramientas
// @Security BearerAuth
// @Param id path string true "ID de herramienta"
// @Param body body dto.PrestarHerramientaRequest true "Préstamo"
// @Success 201 {object} model.PrestamoHerramienta
// @Failure 400 {object} apierror.APIError
// @Router /v1/herramientas/{id}/prestar [post]
func (h *HerramientasHandler) Prestar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.PrestarHerramientaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	prestamo, err := h.svc.Prestar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prestamo)
}

// Devolver godoc
// @Summary Registrar devolución de herramienta
// @Tags herramientas
// @Security BearerAuth
// @Param id path string true "ID de herramienta"
// @Success 200 {object} model.PrestamoHerramienta
// @Failure 400 {object} apierror.APIError
// @Router /v1/herramientas/{id}/devolver [post]
func (h *HerramientasHandler) Devolver(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	prestamo, err := h.svc.Devolver(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prestamo)
}

// Prestamos lists loans, optionally filtered by ?herramienta_id=.
func (h *HerramientasHandler) Prestamos(c *gin.Context) {
	var herramientaID *uuid.UUID
	if raw := c.Query("herramienta_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "herramienta_id inválido"})
			return
		}
		herramientaID = &id
	}
	prestamos, err := h.svc.Prestamos(c.Request.Context(), herramientaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prestamos)
}
