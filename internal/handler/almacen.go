package handler

import (
	"net/http"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/middleware"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AlmacenHandler struct{ svc service.AlmacenService }

func NewAlmacenHandler(svc service.AlmacenService) *AlmacenHandler {
	return &AlmacenHandler{svc: svc}
}

// CrearItem godoc
// @Summary Crear ítem de almacén
// @Tags almacen
// @Security BearerAuth
// @Param body body dto.CrearItemAlmacenRequest true "Ítem"
// @Success 201 {object} model.AlmacenItem
// @Router /v1/almacen/items [post]
func (h *AlmacenHandler) CrearItem(c *gin.Context) {
	var req dto.CrearItemAlmacenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.CrearItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *AlmacenHandler) ActualizarItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarItemAlmacenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.ActualizarItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AlmacenHandler) ObtenerItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	item, err := h.svc.ObtenerItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AlmacenHandler) ListarItems(c *gin.Context) {
	soloActivos := c.Query("activos") == "true"
	items, err := h.svc.ListarItems(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// StockBajo godoc
// @Summary Ítems con stock en o por debajo del mínimo
// @Tags almacen
// @Security BearerAuth
// @Success 200 {array} model.AlmacenItem
// @Router /v1/almacen/stock-bajo [get]
func (h *AlmacenHandler) StockBajo(c *gin.Context) {
	items, err := h.svc.StockBajo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// RegistrarEntrada godoc
// @Summary Registrar entrada de stock
// @Tags almacen
// @Security BearerAuth
// @Param id path string true "ID de ítem"
// @Param body body dto.EntradaAlmacenRequest true "Entrada"
// @Success 200 {object} model.AlmacenItem
// @Router /v1/almacen/items/{id}/entrada [post]
func (h *AlmacenHandler) RegistrarEntrada(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.EntradaAlmacenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	item, err := h.svc.RegistrarEntrada(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AlmacenHandler) Movimientos(c *gin.Context) {
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
