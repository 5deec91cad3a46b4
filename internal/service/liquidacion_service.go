package service

import (
	"context"
	"fmt"
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

// PeriodoPago returns the quincenal pay period containing fecha:
// the 1st through the 15th, or the 16th through the end of the month.
func PeriodoPago(fecha time.Time) (inicio, fin time.Time, frecuencia string) {
	year, month, day := fecha.Date()
	loc := fecha.Location()
	if day <= 15 {
		inicio = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		fin = time.Date(year, month, 15, 0, 0, 0, 0, loc)
	} else {
		inicio = time.Date(year, month, 16, 0, 0, 0, 0, loc)
		fin = time.Date(year, month+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	}
	return inicio, fin, "quincenal"
}

type LiquidacionService interface {
	Listar(ctx context.Context, mecanicoID *uuid.UUID) ([]model.Liquidacion, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Liquidacion, error)
	// MarcarPagada pays out a pending settlement through the open register.
	// One-way: a paid settlement never returns to pending.
	MarcarPagada(ctx context.Context, id uuid.UUID, usuario string, req dto.MarcarPagadaRequest) (*model.Liquidacion, error)

	// Tx helpers used by the work-order settlement inside its transaction.
	ObtenerOCrearPendienteTx(tx *gorm.DB, mecanicoID uuid.UUID, fecha time.Time) (*model.Liquidacion, error)
	RegistrarDetalleTx(tx *gorm.DB, liq *model.Liquidacion, ordenID uuid.UUID, porcentaje, base, monto decimal.Decimal) error
	RecalcularTotalesTx(tx *gorm.DB, liquidacionID uuid.UUID) error
	// QuitarOrdenTx removes the order's rows from every PENDING settlement and
	// recomputes their totals. Rows on paid settlements are left untouched.
	QuitarOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error
}

type liquidacionService struct {
	repo     repository.LiquidacionRepository
	mecanicos repository.MecanicoRepository
	caja     CajaService
}

func NewLiquidacionService(repo repository.LiquidacionRepository, mecanicos repository.MecanicoRepository, caja CajaService) LiquidacionService {
	return &liquidacionService{repo: repo, mecanicos: mecanicos, caja: caja}
}

func (s *liquidacionService) Listar(ctx context.Context, mecanicoID *uuid.UUID) ([]model.Liquidacion, error) {
	return s.repo.List(ctx, mecanicoID)
}

func (s *liquidacionService) Obtener(ctx context.Context, id uuid.UUID) (*model.Liquidacion, error) {
	liq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("liquidación %s no encontrada", id)
	}
	return liq, nil
}

func (s *liquidacionService) MarcarPagada(ctx context.Context, id uuid.UUID, usuario string, req dto.MarcarPagadaRequest) (*model.Liquidacion, error) {
	liq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("liquidación %s no encontrada", id)
	}
	if liq.Estado != model.LiquidacionPendiente {
		return nil, apierror.Precondition("la liquidación ya fue pagada")
	}
	mecanico, err := s.mecanicos.FindByID(ctx, liq.MecanicoID)
	if err != nil {
		return nil, apierror.NotFound("mecánico %s no encontrado", liq.MecanicoID)
	}

	concepto := fmt.Sprintf("Pago nomina tecnico %s", mecanico.NombreCompleto())
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.caja.RegistrarEgresoTx(tx, concepto, liq.TotalPagado, &usuario, nil, nil); err != nil {
			return err
		}
		liq.Estado = model.LiquidacionPagada
		liq.Usuario = &usuario
		if req.Observaciones != nil {
			liq.Observaciones = req.Observaciones
		}
		return s.repo.SaveTx(tx, liq)
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("liquidacion_id", liq.ID.String()).
		Str("mecanico", mecanico.NombreCompleto()).
		Str("monto", liq.TotalPagado.String()).
		Msg("liquidación pagada")
	liq.Mecanico = mecanico
	return liq, nil
}

func (s *liquidacionService) ObtenerOCrearPendienteTx(tx *gorm.DB, mecanicoID uuid.UUID, fecha time.Time) (*model.Liquidacion, error) {
	inicio, fin, frecuencia := PeriodoPago(fecha)
	liq, err := s.repo.FindPendienteTx(tx, mecanicoID, inicio, fin)
	if err != nil {
		return nil, err
	}
	if liq != nil {
		return liq, nil
	}
	liq = &model.Liquidacion{
		MecanicoID:  mecanicoID,
		FechaInicio: inicio,
		FechaFin:    fin,
		Frecuencia:  frecuencia,
		Estado:      model.LiquidacionPendiente,
	}
	if err := s.repo.CreateTx(tx, liq); err != nil {
		return nil, err
	}
	return liq, nil
}

// RegistrarDetalleTx upserts the (liquidacion, orden) row so re-closing an
// order after a reopen replaces the old commission instead of duplicating it.
func (s *liquidacionService) RegistrarDetalleTx(tx *gorm.DB, liq *model.Liquidacion, ordenID uuid.UUID, porcentaje, base, monto decimal.Decimal) error {
	detalle, err := s.repo.FindDetalleTx(tx, liq.ID, ordenID)
	if err != nil {
		return err
	}
	if detalle == nil {
		detalle = &model.LiquidacionDetalle{LiquidacionID: liq.ID, OrdenID: ordenID}
	}
	detalle.Porcentaje = porcentaje
	detalle.BaseCalculo = base
	detalle.Monto = monto
	if detalle.CreatedAt.IsZero() {
		return s.repo.CreateDetalleTx(tx, detalle)
	}
	return s.repo.SaveDetalleTx(tx, detalle)
}

func (s *liquidacionService) RecalcularTotalesTx(tx *gorm.DB, liquidacionID uuid.UUID) error {
	base, monto, err := s.repo.SumDetallesTx(tx, liquidacionID)
	if err != nil {
		return err
	}
	liq, err := s.repo.FindByIDTx(tx, liquidacionID)
	if err != nil {
		return err
	}
	liq.TotalBase = base
	liq.TotalPagado = monto
	return s.repo.SaveTx(tx, liq)
}

func (s *liquidacionService) QuitarOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error {
	detalles, err := s.repo.DetallesPorOrdenTx(tx, ordenID)
	if err != nil {
		return err
	}
	pendientes := make([]uuid.UUID, 0, len(detalles))
	seen := map[uuid.UUID]bool{}
	for _, d := range detalles {
		if seen[d.LiquidacionID] {
			continue
		}
		seen[d.LiquidacionID] = true
		liq, err := s.repo.FindByIDTx(tx, d.LiquidacionID)
		if err != nil {
			return err
		}
		if liq.Estado == model.LiquidacionPendiente {
			pendientes = append(pendientes, liq.ID)
		} else {
			log.Warn().
				Str("liquidacion_id", liq.ID.String()).
				Str("orden_id", ordenID.String()).
				Msg("reapertura con liquidación ya pagada, el pago no se revierte")
		}
	}
	if len(pendientes) == 0 {
		return nil
	}
	if err := s.repo.DeleteDetallesTx(tx, ordenID, pendientes); err != nil {
		return err
	}
	for _, id := range pendientes {
		if err := s.RecalcularTotalesTx(tx, id); err != nil {
			return err
		}
	}
	return nil
}
