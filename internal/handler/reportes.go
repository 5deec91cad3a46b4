package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/infra"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportesHandler struct {
	cajas   service.CajaService
	ordenes service.OrdenService
}

func NewReportesHandler(cajas service.CajaService, ordenes service.OrdenService) *ReportesHandler {
	return &ReportesHandler{cajas: cajas, ordenes: ordenes}
}

// MovimientosXLSX godoc
// @Summary Exportar movimientos de caja a Excel
// @Tags reportes
// @Security BearerAuth
// @Param caja_id query string false "Filtrar por caja"
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /v1/reportes/movimientos.xlsx [get]
func (h *ReportesHandler) MovimientosXLSX(c *gin.Context) {
	var cajaID *uuid.UUID
	if raw := c.Query("caja_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "caja_id inválido"})
			return
		}
		cajaID = &id
	}
	movs, err := h.cajas.ListarMovimientos(c.Request.Context(), cajaID)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("movimientos_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := infra.WriteMovimientosXLSX(c.Writer, movs); err != nil {
		respondError(c, err)
		return
	}
}

// OrdenesXLSX godoc
// @Summary Exportar ordenes de trabajo a Excel
// @Tags reportes
// @Security BearerAuth
// @Param estado query string false "Filtrar por estado"
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /v1/reportes/ordenes.xlsx [get]
func (h *ReportesHandler) OrdenesXLSX(c *gin.Context) {
	filter := repository.OrdenFilter{Estado: c.Query("estado")}
	ordenes, err := h.ordenes.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("ordenes_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := infra.WriteOrdenesXLSX(c.Writer, ordenes); err != nil {
		respondError(c, err)
		return
	}
}
