package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOrdenRequest struct {
	ClienteID   string  `json:"cliente_id"  validate:"required,uuid"`
	VehiculoID  string  `json:"vehiculo_id" validate:"required,uuid"`
	Descripcion string  `json:"descripcion" validate:"required,min=3"`
	KmActual    *int    `json:"km_actual"   validate:"omitempty,min=0"`
	FormaPago   *string `json:"forma_pago"`
}

type ActualizarOrdenRequest struct {
	Descripcion *string `json:"descripcion" validate:"omitempty,min=3"`
	FormaPago   *string `json:"forma_pago"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=abierta en_proceso cerrada cancelada"`
}

type ReabrirOrdenRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type AgregarServicioRequest struct {
	ServicioID string           `json:"servicio_id" validate:"required,uuid"`
	Cantidad   int              `json:"cantidad"    validate:"required,min=1"`
	Precio     *decimal.Decimal `json:"precio"      validate:"omitempty"`
}

type ActualizarLineaServicioRequest struct {
	Cantidad int              `json:"cantidad" validate:"required,min=1"`
	Precio   *decimal.Decimal `json:"precio"   validate:"omitempty"`
}

type AgregarInsumoRequest struct {
	ItemID   string          `json:"item_id"  validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad" validate:"required"`
}

type AsignarMecanicoRequest struct {
	MecanicoID    string           `json:"mecanico_id" validate:"required,uuid"`
	Porcentaje    *decimal.Decimal `json:"porcentaje"  validate:"omitempty"`
	Observaciones *string          `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ResumenFinancieroOrden struct {
	Total             decimal.Decimal `json:"total"`
	SubtotalServicios decimal.Decimal `json:"subtotal_servicios"`
	SubtotalInsumos   decimal.Decimal `json:"subtotal_insumos"`
	SubtotalProveedor decimal.Decimal `json:"subtotal_proveedor"`
	Utilidad          decimal.Decimal `json:"utilidad"`
}
