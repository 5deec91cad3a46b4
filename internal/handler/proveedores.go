package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
)

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	proveedor, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proveedor)
}

func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	proveedor, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proveedor)
}

func (h *ProveedoresHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	proveedor, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proveedor)
}

func (h *ProveedoresHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("activos") == "true"
	proveedores, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proveedores)
}

// Saldo godoc
// @Summary Saldo adeudado al proveedor
// @Tags proveedores
// @Security BearerAuth
// @Param id path string true "ID de proveedor"
// @Success 200 {object} map[string]interface{}
// @Router /v1/proveedores/{id}/saldo [get]
func (h *ProveedoresHandler) Saldo(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	saldo, err := h.svc.Saldo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proveedor_id": id, "saldo": saldo})
}

func (h *ProveedoresHandler) Movimientos(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	movs, err := h.svc.Movimientos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movs)
}
