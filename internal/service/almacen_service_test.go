package service_test

import (
	"context"
	"testing"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlmacenEnv() (service.AlmacenService, *stubAlmacenRepo, *stubProveedorRepo) {
	almacenRepo := newStubAlmacenRepo()
	proveedorRepo := newStubProveedorRepo()
	return service.NewAlmacenService(almacenRepo, proveedorRepo), almacenRepo, proveedorRepo
}

func TestCrearItemValorTallerMenorQueProveedor(t *testing.T) {
	svc, _, _ := newAlmacenEnv()

	_, err := svc.CrearItem(context.Background(), dto.CrearItemAlmacenRequest{
		Nombre:         "Filtro de aire",
		ValorProveedor: dec(25000),
		ValorTaller:    dec(18000),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
	assert.Contains(t, err.Error(), "valor taller")
}

func TestRegistrarEntradaActualizaStockYCosto(t *testing.T) {
	svc, almacenRepo, _ := newAlmacenEnv()
	ctx := context.Background()

	item, err := svc.CrearItem(ctx, dto.CrearItemAlmacenRequest{
		Nombre:         "Aceite 20W50 galon",
		ValorProveedor: dec(20000),
		ValorTaller:    dec(30000),
	})
	require.NoError(t, err)

	nuevoCosto := dec(22000)
	actualizado, err := svc.RegistrarEntrada(ctx, item.ID, "admin", dto.EntradaAlmacenRequest{
		Cantidad:      dec(12),
		ValorUnitario: &nuevoCosto,
	})
	require.NoError(t, err)
	assert.True(t, actualizado.StockActual.Equal(dec(12)))
	assert.True(t, actualizado.ValorProveedor.Equal(dec(22000)))

	require.Len(t, almacenRepo.movimientos, 1)
	assert.Equal(t, "entrada", almacenRepo.movimientos[0].Tipo)
	assert.True(t, almacenRepo.movimientos[0].Cantidad.Equal(dec(12)))
}

func TestRegistrarEntradaCantidadInvalida(t *testing.T) {
	svc, _, _ := newAlmacenEnv()
	ctx := context.Background()

	item, err := svc.CrearItem(ctx, dto.CrearItemAlmacenRequest{
		Nombre:         "Liquido de frenos",
		ValorProveedor: dec(8000),
		ValorTaller:    dec(12000),
	})
	require.NoError(t, err)

	_, err = svc.RegistrarEntrada(ctx, item.ID, "admin", dto.EntradaAlmacenRequest{Cantidad: dec(0)})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestStockBajo(t *testing.T) {
	svc, almacenRepo, _ := newAlmacenEnv()
	ctx := context.Background()

	bajo := &model.AlmacenItem{
		Nombre:         "Refrigerante",
		StockActual:    dec(2),
		StockMinimo:    dec(5),
		ValorProveedor: dec(10000),
		ValorTaller:    dec(15000),
		Activo:         true,
	}
	require.NoError(t, almacenRepo.Create(ctx, bajo))
	sobrado := &model.AlmacenItem{
		Nombre:         "Grasa multiproposito",
		StockActual:    decimal.NewFromInt(40),
		StockMinimo:    dec(5),
		ValorProveedor: dec(6000),
		ValorTaller:    dec(9000),
		Activo:         true,
	}
	require.NoError(t, almacenRepo.Create(ctx, sobrado))
	inactivo := &model.AlmacenItem{
		Nombre:         "Aditivo descontinuado",
		StockActual:    dec(0),
		StockMinimo:    dec(5),
		ValorProveedor: dec(5000),
		ValorTaller:    dec(7000),
		Activo:         false,
	}
	require.NoError(t, almacenRepo.Create(ctx, inactivo))

	bajos, err := svc.StockBajo(ctx)
	require.NoError(t, err)
	require.Len(t, bajos, 1)
	assert.Equal(t, "Refrigerante", bajos[0].Nombre)
}
