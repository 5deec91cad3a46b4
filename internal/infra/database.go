package infra

import (
	"fmt"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Vehiculo{},
		&model.Mecanico{},
		&model.CategoriaServicio{},
		&model.Servicio{},
		&model.Proveedor{},
		&model.MovimientoProveedor{},
		&model.AlmacenItem{},
		&model.MovimientoAlmacen{},
		&model.OrdenTrabajo{},
		&model.DetalleOrden{},
		&model.DetalleAlmacen{},
		&model.OrdenMecanico{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.Liquidacion{},
		&model.LiquidacionDetalle{},
		&model.ReglaMantenimiento{},
		&model.VehiculoReglaBase{},
		&model.Herramienta{},
		&model.PrestamoHerramienta{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches applies DDL that AutoMigrate cannot express. Every
// statement is guarded or uses IF NOT EXISTS, so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one open register, enforced at the database level so two
		// concurrent openings cannot both succeed.
		{"partial unique index: single open caja",
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_cajas_abierta
			   ON cajas ((true)) WHERE estado = 'abierta'`},

		// At most one pending settlement per mechanic and pay period. Backs
		// the find-or-create during order settlement.
		{"partial unique index: single pending liquidacion per period",
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_liquidaciones_pendiente
			   ON liquidaciones_mecanicos (mecanico_id, fecha_inicio, fecha_fin)
			   WHERE estado = 'pendiente'`},

		// One settlement detail per (liquidacion, orden): closing after a
		// reopen must replace, never duplicate.
		{"unique index: liquidacion detalle per orden",
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_liquidacion_detalle_orden
			   ON liquidaciones_mecanicos_detalle (liquidacion_id, orden_id)`},

		// A ledger posting can be reversed at most once.
		{"unique index: single reversal per posting",
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_movimientos_caja_reversa
			   ON movimientos_caja (reversa_de_id) WHERE reversa_de_id IS NOT NULL`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
