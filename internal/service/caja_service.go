package service

import (
	"context"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, usuario string, req dto.AbrirCajaRequest) (*model.Caja, error)
	Cerrar(ctx context.Context, usuario string, req dto.CerrarCajaRequest) (*model.Caja, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// ObtenerAbierta returns nil without error when no register is open.
	ObtenerAbierta(ctx context.Context) (*model.Caja, error)
	Listar(ctx context.Context) ([]model.Caja, error)
	ListarMovimientos(ctx context.Context, cajaID *uuid.UUID) ([]model.MovimientoCaja, error)
	Resumen(ctx context.Context, id uuid.UUID) (*dto.ResumenCajaResponse, error)
	// RegistrarMovimientoManual posts an operator-entered movement. An egreso
	// linked to a supplier also settles part of that supplier's debt.
	RegistrarMovimientoManual(ctx context.Context, usuario string, req dto.MovimientoCajaRequest) (*model.MovimientoCaja, error)

	// Tx helpers for settlement flows running inside a caller's transaction.
	AbiertaTx(tx *gorm.DB) (*model.Caja, error)
	RegistrarMovimientoTx(tx *gorm.DB, caja *model.Caja, m *model.MovimientoCaja) error
	RegistrarEgresoTx(tx *gorm.DB, concepto string, monto decimal.Decimal, usuario *string, ordenID, proveedorID *uuid.UUID) error
	RecalcularSaldoTx(tx *gorm.DB, caja *model.Caja) error
}

type cajaService struct {
	repo        repository.CajaRepository
	proveedores repository.ProveedorRepository
}

func NewCajaService(repo repository.CajaRepository, proveedores repository.ProveedorRepository) CajaService {
	return &cajaService{repo: repo, proveedores: proveedores}
}

func (s *cajaService) Abrir(ctx context.Context, usuario string, req dto.AbrirCajaRequest) (*model.Caja, error) {
	if req.SaldoInicial.IsNegative() {
		return nil, apierror.Validation("el saldo inicial no puede ser negativo")
	}
	abierta, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, err
	}
	if abierta != nil {
		return nil, apierror.Conflict("ya existe una caja abierta")
	}
	caja := &model.Caja{
		Estado:          "abierta",
		SaldoInicial:    req.SaldoInicial,
		SaldoFinal:      req.SaldoInicial,
		Observaciones:   req.Observaciones,
		UsuarioApertura: &usuario,
		FechaApertura:   time.Now(),
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, err
	}
	log.Info().Str("caja_id", caja.ID.String()).Str("usuario", usuario).Msg("caja abierta")
	return caja, nil
}

func (s *cajaService) Cerrar(ctx context.Context, usuario string, req dto.CerrarCajaRequest) (*model.Caja, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, apierror.Precondition("no hay caja abierta")
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.RecalcularSaldoTx(tx, caja); err != nil {
			return err
		}
		now := time.Now()
		caja.Estado = "cerrada"
		caja.FechaCierre = &now
		caja.UsuarioCierre = &usuario
		if req.Observaciones != nil {
			caja.Observaciones = req.Observaciones
		}
		return s.repo.SaveTx(tx, caja)
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("caja_id", caja.ID.String()).
		Str("saldo_final", caja.SaldoFinal.String()).
		Msg("caja cerrada")
	return caja, nil
}

func (s *cajaService) Obtener(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	caja, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("caja %s no encontrada", id)
	}
	return caja, nil
}

func (s *cajaService) ObtenerAbierta(ctx context.Context) (*model.Caja, error) {
	return s.repo.FindAbierta(ctx)
}

func (s *cajaService) Listar(ctx context.Context) ([]model.Caja, error) {
	return s.repo.List(ctx)
}

func (s *cajaService) ListarMovimientos(ctx context.Context, cajaID *uuid.UUID) ([]model.MovimientoCaja, error) {
	return s.repo.ListMovimientos(ctx, cajaID)
}

func (s *cajaService) Resumen(ctx context.Context, id uuid.UUID) (*dto.ResumenCajaResponse, error) {
	caja, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	ingresos, err := s.repo.SumMovimientosTx(nil, caja.ID, model.MovCajaIngreso)
	if err != nil {
		return nil, err
	}
	egresos, err := s.repo.SumMovimientosTx(nil, caja.ID, model.MovCajaEgreso)
	if err != nil {
		return nil, err
	}
	resp := &dto.ResumenCajaResponse{
		CajaID:        caja.ID.String(),
		Estado:        caja.Estado,
		SaldoInicial:  caja.SaldoInicial,
		TotalIngresos: ingresos,
		TotalEgresos:  egresos,
		SaldoFinal:    caja.SaldoInicial.Add(ingresos).Sub(egresos),
		FechaApertura: caja.FechaApertura.Format(time.RFC3339),
	}
	if caja.FechaCierre != nil {
		f := caja.FechaCierre.Format(time.RFC3339)
		resp.FechaCierre = &f
	}
	return resp, nil
}

func (s *cajaService) RegistrarMovimientoManual(ctx context.Context, usuario string, req dto.MovimientoCajaRequest) (*model.MovimientoCaja, error) {
	if !req.Monto.IsPositive() {
		return nil, apierror.Validation("el monto debe ser mayor que cero")
	}

	var proveedorID *uuid.UUID
	var proveedor *model.Proveedor
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.Validation("proveedor_id inválido")
		}
		p, err := s.proveedores.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("proveedor %s no encontrado", pid)
		}
		proveedorID = &pid
		proveedor = p
	}

	// A supplier payment cannot exceed the outstanding balance.
	if proveedor != nil && req.Tipo == model.MovCajaEgreso {
		deuda, err := s.saldoProveedor(ctx, proveedor.ID)
		if err != nil {
			return nil, err
		}
		if req.Monto.GreaterThan(deuda) {
			return nil, apierror.Validation("el pago (%s) supera la deuda del proveedor (%s)", req.Monto, deuda)
		}
	}

	var mov *model.MovimientoCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		caja, err := s.AbiertaTx(tx)
		if err != nil {
			return err
		}
		mov = &model.MovimientoCaja{
			CajaID:      caja.ID,
			Tipo:        req.Tipo,
			Concepto:    req.Concepto,
			Monto:       req.Monto,
			Motivo:      req.Motivo,
			Usuario:     &usuario,
			ProveedorID: proveedorID,
		}
		if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
			return err
		}
		if proveedor != nil && req.Tipo == model.MovCajaEgreso {
			pago := &model.MovimientoProveedor{
				ProveedorID: proveedor.ID,
				Tipo:        model.MovProveedorPago,
				Subtotal:    req.Monto,
				Motivo:      req.Motivo,
				Usuario:     &usuario,
			}
			if err := s.proveedores.CreateMovimientoTx(tx, pago); err != nil {
				return err
			}
		}
		return s.RecalcularSaldoTx(tx, caja)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *cajaService) saldoProveedor(ctx context.Context, proveedorID uuid.UUID) (decimal.Decimal, error) {
	cargos, err := s.proveedores.SumMovimientos(ctx, proveedorID, []string{model.MovProveedorCargo, model.MovProveedorNotaDebito})
	if err != nil {
		return decimal.Zero, err
	}
	abonos, err := s.proveedores.SumMovimientos(ctx, proveedorID, []string{model.MovProveedorPago, model.MovProveedorNotaCredito})
	if err != nil {
		return decimal.Zero, err
	}
	return cargos.Sub(abonos), nil
}

// ── Tx helpers ───────────────────────────────────────────────────────────────

func (s *cajaService) AbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	caja, err := s.repo.FindAbiertaTx(tx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, apierror.Precondition("no hay caja abierta")
	}
	return caja, nil
}

func (s *cajaService) RegistrarMovimientoTx(tx *gorm.DB, caja *model.Caja, m *model.MovimientoCaja) error {
	m.CajaID = caja.ID
	return s.repo.CreateMovimientoTx(tx, m)
}

func (s *cajaService) RegistrarEgresoTx(tx *gorm.DB, concepto string, monto decimal.Decimal, usuario *string, ordenID, proveedorID *uuid.UUID) error {
	caja, err := s.AbiertaTx(tx)
	if err != nil {
		return err
	}
	mov := &model.MovimientoCaja{
		CajaID:      caja.ID,
		Tipo:        model.MovCajaEgreso,
		Concepto:    concepto,
		Monto:       monto,
		Usuario:     usuario,
		OrdenID:     ordenID,
		ProveedorID: proveedorID,
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return err
	}
	return s.RecalcularSaldoTx(tx, caja)
}

// RecalcularSaldoTx rederives the running balance from the ledger. The saldo
// is never adjusted incrementally.
func (s *cajaService) RecalcularSaldoTx(tx *gorm.DB, caja *model.Caja) error {
	ingresos, err := s.repo.SumMovimientosTx(tx, caja.ID, model.MovCajaIngreso)
	if err != nil {
		return err
	}
	egresos, err := s.repo.SumMovimientosTx(tx, caja.ID, model.MovCajaEgreso)
	if err != nil {
		return err
	}
	caja.SaldoFinal = caja.SaldoInicial.Add(ingresos).Sub(egresos)
	return s.repo.SaveTx(tx, caja)
}
