package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodoPago(t *testing.T) {
	cases := []struct {
		name   string
		fecha  time.Time
		inicio string
		fin    string
	}{
		{"primer dia", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "2026-03-01", "2026-03-15"},
		{"dia quince", time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), "2026-03-01", "2026-03-15"},
		{"dia dieciseis", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), "2026-03-16", "2026-03-31"},
		{"fin de mes corto", time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), "2026-02-16", "2026-02-28"},
		{"febrero bisiesto", time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC), "2028-02-16", "2028-02-29"},
		{"diciembre cruza el anio", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "2026-12-16", "2026-12-31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inicio, fin, frecuencia := service.PeriodoPago(tc.fecha)
			assert.Equal(t, tc.inicio, inicio.Format("2006-01-02"))
			assert.Equal(t, tc.fin, fin.Format("2006-01-02"))
			assert.Equal(t, "quincenal", frecuencia)
		})
	}
}

func TestMarcarPagada(t *testing.T) {
	env := newTallerEnv(t)
	ctx := context.Background()
	caja := env.abrirCaja(t, 500000)
	orden := env.crearOrdenCompleta(t)

	_, err := env.ordenes.CambiarEstado(ctx, orden.ID, "admin", dto.CambiarEstadoRequest{Estado: model.OrdenCerrada})
	require.NoError(t, err)

	var liqID uuid.UUID
	for _, liq := range env.liquidacionRepo.liquidaciones {
		liqID = liq.ID
	}
	require.NotEqual(t, uuid.Nil, liqID)

	pagada, err := env.liquidacion.MarcarPagada(ctx, liqID, "admin", dto.MarcarPagadaRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.LiquidacionPagada, pagada.Estado)
	require.NotNil(t, pagada.Usuario)
	assert.Equal(t, "admin", *pagada.Usuario)

	egreso := env.movimientoPorConcepto(t, "Pago nomina tecnico Pedro Rojas")
	assert.Equal(t, model.MovCajaEgreso, egreso.Tipo)
	assert.True(t, egreso.Monto.Equal(dec(40000)))
	// 500000 + 260000 - 40000 - 40000 - 40000
	assert.True(t, caja.SaldoFinal.Equal(dec(640000)), "saldo = %s", caja.SaldoFinal)
}

func TestMarcarPagadaDosVeces(t *testing.T) {
	env := newTallerEnv(t)
	ctx := context.Background()
	env.abrirCaja(t, 500000)
	orden := env.crearOrdenCompleta(t)

	_, err := env.ordenes.CambiarEstado(ctx, orden.ID, "admin", dto.CambiarEstadoRequest{Estado: model.OrdenCerrada})
	require.NoError(t, err)

	for _, liq := range env.liquidacionRepo.liquidaciones {
		_, err := env.liquidacion.MarcarPagada(ctx, liq.ID, "admin", dto.MarcarPagadaRequest{})
		require.NoError(t, err)

		_, err = env.liquidacion.MarcarPagada(ctx, liq.ID, "admin", dto.MarcarPagadaRequest{})
		require.Error(t, err)
		assert.True(t, apierror.IsKind(err, apierror.KindPrecondition))
		assert.Contains(t, err.Error(), "ya fue pagada")
	}
}

func TestReabrirConLiquidacionPagada(t *testing.T) {
	env := newTallerEnv(t)
	ctx := context.Background()
	caja := env.abrirCaja(t, 500000)
	orden := env.crearOrdenCompleta(t)

	_, err := env.ordenes.CambiarEstado(ctx, orden.ID, "admin", dto.CambiarEstadoRequest{Estado: model.OrdenCerrada})
	require.NoError(t, err)

	var liqID uuid.UUID
	for _, liq := range env.liquidacionRepo.liquidaciones {
		liqID = liq.ID
	}
	_, err = env.liquidacion.MarcarPagada(ctx, liqID, "admin", dto.MarcarPagadaRequest{})
	require.NoError(t, err)

	// La reapertura revierte la caja de la orden, pero el pago de nomina ya
	// salio: la liquidacion pagada y su detalle quedan intactos.
	_, err = env.ordenes.Reabrir(ctx, orden.ID, "admin", dto.ReabrirOrdenRequest{Motivo: "reclamo del cliente"})
	require.NoError(t, err)

	var reversas int
	for _, m := range env.cajaRepo.movimientos {
		if m.ReversaDeID != nil {
			reversas++
		}
	}
	assert.Equal(t, 3, reversas)

	pagada, err := env.liquidacion.Obtener(ctx, liqID)
	require.NoError(t, err)
	assert.Equal(t, model.LiquidacionPagada, pagada.Estado)
	assert.True(t, pagada.TotalPagado.Equal(dec(40000)), "pagado = %s", pagada.TotalPagado)
	require.Len(t, env.liquidacionRepo.detalles, 1)
	assert.Equal(t, liqID, env.liquidacionRepo.detalles[0].LiquidacionID)

	require.Len(t, env.ordenRepo.asignaciones, 1)
	assert.True(t, env.ordenRepo.asignaciones[0].Monto.IsZero())

	// 500000 + 260000 - 40000 - 40000 - 40000 - 260000 + 40000 + 40000
	assert.True(t, caja.SaldoFinal.Equal(dec(460000)), "saldo = %s", caja.SaldoFinal)
}

func TestMarcarPagadaSinCajaAbierta(t *testing.T) {
	env := newTallerEnv(t)
	ctx := context.Background()
	env.abrirCaja(t, 500000)
	orden := env.crearOrdenCompleta(t)

	_, err := env.ordenes.CambiarEstado(ctx, orden.ID, "admin", dto.CambiarEstadoRequest{Estado: model.OrdenCerrada})
	require.NoError(t, err)
	_, err = env.caja.Cerrar(ctx, "admin", dto.CerrarCajaRequest{})
	require.NoError(t, err)

	for _, liq := range env.liquidacionRepo.liquidaciones {
		_, err := env.liquidacion.MarcarPagada(ctx, liq.ID, "admin", dto.MarcarPagadaRequest{})
		require.Error(t, err)
		assert.True(t, apierror.IsKind(err, apierror.KindPrecondition))
		assert.Equal(t, model.LiquidacionPendiente, liq.Estado)
	}
}
