package service_test

import (
	"context"
	"testing"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCajaEnv() (service.CajaService, *stubCajaRepo, *stubProveedorRepo) {
	cajaRepo := newStubCajaRepo()
	proveedorRepo := newStubProveedorRepo()
	return service.NewCajaService(cajaRepo, proveedorRepo), cajaRepo, proveedorRepo
}

func TestAbrirCaja(t *testing.T) {
	svc, _, _ := newCajaEnv()
	ctx := context.Background()

	caja, err := svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(50000)})
	require.NoError(t, err)
	assert.Equal(t, "abierta", caja.Estado)
	assert.True(t, caja.SaldoFinal.Equal(dec(50000)))
	require.NotNil(t, caja.UsuarioApertura)
	assert.Equal(t, "admin", *caja.UsuarioApertura)
}

func TestAbrirCajaDuplicada(t *testing.T) {
	svc, _, _ := newCajaEnv()
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(50000)})
	require.NoError(t, err)

	_, err = svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(10000)})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
	assert.Contains(t, err.Error(), "ya existe una caja abierta")
}

func TestAbrirCajaSaldoNegativo(t *testing.T) {
	svc, _, _ := newCajaEnv()

	_, err := svc.Abrir(context.Background(), "admin", dto.AbrirCajaRequest{SaldoInicial: dec(-1)})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCerrarCajaSinAbierta(t *testing.T) {
	svc, _, _ := newCajaEnv()

	_, err := svc.Cerrar(context.Background(), "admin", dto.CerrarCajaRequest{})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPrecondition))
}

func TestCerrarCajaRecalculaSaldo(t *testing.T) {
	svc, _, _ := newCajaEnv()
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(100000)})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo: model.MovCajaIngreso, Concepto: "Venta mostrador", Monto: dec(30000),
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo: model.MovCajaEgreso, Concepto: "Compra papeleria", Monto: dec(12000),
	})
	require.NoError(t, err)

	caja, err := svc.Cerrar(ctx, "admin", dto.CerrarCajaRequest{})
	require.NoError(t, err)
	assert.Equal(t, "cerrada", caja.Estado)
	require.NotNil(t, caja.FechaCierre)
	assert.True(t, caja.SaldoFinal.Equal(dec(118000)), "saldo = %s", caja.SaldoFinal)
}

func TestMovimientoManualMontoInvalido(t *testing.T) {
	svc, _, _ := newCajaEnv()
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(0)})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo: model.MovCajaIngreso, Concepto: "Monto cero", Monto: dec(0),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestPagoProveedorSaldaDeuda(t *testing.T) {
	svc, _, proveedorRepo := newCajaEnv()
	ctx := context.Background()

	proveedor := &model.Proveedor{Nombre: "Filtros del Norte", Activo: true}
	require.NoError(t, proveedorRepo.Create(ctx, proveedor))
	require.NoError(t, proveedorRepo.CreateMovimiento(ctx, &model.MovimientoProveedor{
		ProveedorID: proveedor.ID,
		Tipo:        model.MovProveedorCargo,
		Subtotal:    dec(80000),
	}))

	_, err := svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(100000)})
	require.NoError(t, err)

	pid := proveedor.ID.String()
	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo:        model.MovCajaEgreso,
		Concepto:    "Abono a proveedor",
		Monto:       dec(50000),
		ProveedorID: &pid,
	})
	require.NoError(t, err)

	// The payment lands on both ledgers.
	var pagos int
	for _, m := range proveedorRepo.movimientos {
		if m.Tipo == model.MovProveedorPago {
			pagos++
			assert.True(t, m.Subtotal.Equal(dec(50000)))
		}
	}
	assert.Equal(t, 1, pagos)

	// Remaining debt is 30000; paying more than that is rejected.
	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo:        model.MovCajaEgreso,
		Concepto:    "Abono excesivo",
		Monto:       dec(40000),
		ProveedorID: &pid,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
	assert.Contains(t, err.Error(), "supera la deuda del proveedor")
}

func TestResumenCaja(t *testing.T) {
	svc, _, _ := newCajaEnv()
	ctx := context.Background()

	caja, err := svc.Abrir(ctx, "admin", dto.AbrirCajaRequest{SaldoInicial: dec(20000)})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo: model.MovCajaIngreso, Concepto: "Venta repuesto", Monto: dec(15000),
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimientoManual(ctx, "admin", dto.MovimientoCajaRequest{
		Tipo: model.MovCajaEgreso, Concepto: "Domicilio", Monto: dec(5000),
	})
	require.NoError(t, err)

	resumen, err := svc.Resumen(ctx, caja.ID)
	require.NoError(t, err)
	assert.Equal(t, "abierta", resumen.Estado)
	assert.True(t, resumen.TotalIngresos.Equal(dec(15000)))
	assert.True(t, resumen.TotalEgresos.Equal(dec(5000)))
	assert.True(t, resumen.SaldoFinal.Equal(dec(30000)))
}
