package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	SaldoInicial  decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type CerrarCajaRequest struct {
	Observaciones *string `json:"observaciones"`
}

type MovimientoCajaRequest struct {
	Tipo        string          `json:"tipo"         validate:"required,oneof=ingreso egreso"`
	Concepto    string          `json:"concepto"     validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"        validate:"required"`
	Motivo      *string         `json:"motivo"`
	ProveedorID *string         `json:"proveedor_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ResumenCajaResponse struct {
	CajaID        string          `json:"caja_id"`
	Estado        string          `json:"estado"`
	SaldoInicial  decimal.Decimal `json:"saldo_inicial"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	TotalEgresos  decimal.Decimal `json:"total_egresos"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`
	FechaApertura string          `json:"fecha_apertura"`
	FechaCierre   *string         `json:"fecha_cierre"`
}
