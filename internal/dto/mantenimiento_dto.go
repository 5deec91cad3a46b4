package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearReglaRequest struct {
	Nombre         string  `json:"nombre"          validate:"required,min=3"`
	Descripcion    *string `json:"descripcion"`
	IntervaloKm    *int    `json:"intervalo_km"    validate:"omitempty,min=1"`
	IntervaloDias  *int    `json:"intervalo_dias"  validate:"omitempty,min=1"`
	ToleranciaKm   *int    `json:"tolerancia_km"   validate:"omitempty,min=0"`
	ToleranciaDias *int    `json:"tolerancia_dias" validate:"omitempty,min=0"`
}

type ActualizarReglaRequest struct {
	Nombre         *string `json:"nombre"          validate:"omitempty,min=3"`
	Descripcion    *string `json:"descripcion"`
	IntervaloKm    *int    `json:"intervalo_km"    validate:"omitempty,min=1"`
	IntervaloDias  *int    `json:"intervalo_dias"  validate:"omitempty,min=1"`
	ToleranciaKm   *int    `json:"tolerancia_km"   validate:"omitempty,min=0"`
	ToleranciaDias *int    `json:"tolerancia_dias" validate:"omitempty,min=0"`
	Activo         *bool   `json:"activo"`
}

type ResetBaseRequest struct {
	ReglaID string `json:"regla_id" validate:"required,uuid"`
	Km      *int   `json:"km"       validate:"omitempty,min=0"`
	Fecha   *string `json:"fecha"   validate:"omitempty,datetime=2006-01-02"`
}

type ActualizarKmRequest struct {
	KmActual int `json:"km_actual" validate:"required,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// EstadoReglaResponse is one rule's evaluation against one vehicle.
type EstadoReglaResponse struct {
	ReglaID       string  `json:"regla_id"`
	Nombre        string  `json:"nombre"`
	Estado        string  `json:"estado"` // ok | proximo | vencido
	Progreso      int     `json:"progreso"`
	KmRecorridos  *int    `json:"km_recorridos,omitempty"`
	KmRestantes   *int    `json:"km_restantes,omitempty"`
	DiasRecorridos *int   `json:"dias_recorridos,omitempty"`
	DiasRestantes *int    `json:"dias_restantes,omitempty"`
	KmBase        *int    `json:"km_base,omitempty"`
	FechaBase     *string `json:"fecha_base,omitempty"`
}

type AlertasVehiculoResponse struct {
	VehiculoID string                `json:"vehiculo_id"`
	Placa      string                `json:"placa"`
	KmActual   *int                  `json:"km_actual"`
	Vencidos   []EstadoReglaResponse `json:"vencidos"`
	Proximos   []EstadoReglaResponse `json:"proximos"`
}
