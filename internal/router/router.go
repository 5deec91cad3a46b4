package router

import (
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/handler"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/middleware"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	mecanicoRepo := repository.NewMecanicoRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	almacenRepo := repository.NewAlmacenRepository(db)
	herramientaRepo := repository.NewHerramientaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	liquidacionRepo := repository.NewLiquidacionRepository(db)
	reglaRepo := repository.NewReglaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, vehiculoRepo)
	vehiculoSvc := service.NewVehiculoService(vehiculoRepo, clienteRepo)
	mecanicoSvc := service.NewMecanicoService(mecanicoRepo)
	servicioSvc := service.NewServicioService(servicioRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	almacenSvc := service.NewAlmacenService(almacenRepo, proveedorRepo)
	herramientaSvc := service.NewHerramientaService(herramientaRepo, mecanicoRepo)
	cajaSvc := service.NewCajaService(cajaRepo, proveedorRepo)
	liquidacionSvc := service.NewLiquidacionService(liquidacionRepo, mecanicoRepo, cajaSvc)
	ordenSvc := service.NewOrdenService(ordenRepo, clienteRepo, vehiculoRepo, servicioRepo, almacenRepo, mecanicoRepo, proveedorRepo, cajaSvc, liquidacionSvc, cajaRepo)
	mantenimientoSvc := service.NewMantenimientoService(reglaRepo, vehiculoRepo)

	// Worker dispatcher — injected into handlers that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	vehiculosH := handler.NewVehiculosHandler(vehiculoSvc)
	mecanicosH := handler.NewMecanicosHandler(mecanicoSvc)
	serviciosH := handler.NewServiciosHandler(servicioSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	almacenH := handler.NewAlmacenHandler(almacenSvc)
	herramientasH := handler.NewHerramientasHandler(herramientaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc, dispatcher, cfg)
	liquidacionesH := handler.NewLiquidacionesHandler(liquidacionSvc, dispatcher, cfg)
	mantenimientoH := handler.NewMantenimientoHandler(mantenimientoSvc, vehiculoSvc, dispatcher, cfg)
	reportesH := handler.NewReportesHandler(cajaSvc, ordenSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public, rate limited)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, mecanico — declared per-endpoint
		todos := middleware.RequireRole("admin", "mecanico")
		soloAdmin := middleware.RequireRole("admin")

		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", todos, clientesH.Listar)
			clientes.GET("/:id", todos, clientesH.Obtener)
			clientes.GET("/:id/vehiculos", todos, clientesH.Vehiculos)
			clientes.POST("", soloAdmin, clientesH.Crear)
			clientes.PUT("/:id", soloAdmin, clientesH.Actualizar)
		}

		vehiculos := v1.Group("/vehiculos")
		{
			vehiculos.GET("", todos, vehiculosH.Listar)
			vehiculos.GET("/:id", todos, vehiculosH.Obtener)
			vehiculos.POST("", soloAdmin, vehiculosH.Crear)
			vehiculos.PUT("/:id", soloAdmin, vehiculosH.Actualizar)
			vehiculos.PATCH("/:id/km", todos, vehiculosH.ActualizarKm)
			vehiculos.GET("/:id/mantenimiento", todos, mantenimientoH.EvaluarVehiculo)
			vehiculos.POST("/:id/mantenimiento/reset", todos, mantenimientoH.ResetBase)
		}

		mantenimiento := v1.Group("/mantenimiento")
		{
			mantenimiento.GET("/reglas", todos, mantenimientoH.ListarReglas)
			mantenimiento.POST("/reglas", soloAdmin, mantenimientoH.CrearRegla)
			mantenimiento.PUT("/reglas/:id", soloAdmin, mantenimientoH.ActualizarRegla)
			mantenimiento.DELETE("/reglas/:id", soloAdmin, mantenimientoH.EliminarRegla)
			mantenimiento.GET("/alertas", todos, mantenimientoH.Alertas)
			mantenimiento.POST("/recordatorios", soloAdmin, mantenimientoH.EnviarRecordatorios)
		}

		ordenes := v1.Group("/ordenes")
		{
			ordenes.POST("", todos, ordenesH.Crear)
			ordenes.GET("", todos, ordenesH.Listar)
			ordenes.GET("/:id", todos, ordenesH.Obtener)
			ordenes.PUT("/:id", todos, ordenesH.Actualizar)
			ordenes.DELETE("/:id", soloAdmin, ordenesH.Eliminar)
			ordenes.GET("/:id/resumen", todos, ordenesH.ResumenFinanciero)
			ordenes.GET("/:id/pdf", todos, ordenesH.DescargarPDF)
			ordenes.POST("/:id/enviar-pdf", todos, ordenesH.EnviarPDF)

			ordenes.POST("/:id/servicios", todos, ordenesH.AgregarServicio)
			ordenes.PUT("/:id/servicios/:detalleId", todos, ordenesH.ActualizarLineaServicio)
			ordenes.DELETE("/:id/servicios/:detalleId", todos, ordenesH.EliminarLineaServicio)

			ordenes.POST("/:id/insumos", todos, ordenesH.AgregarInsumo)
			ordenes.DELETE("/:id/insumos/:detalleId", todos, ordenesH.EliminarInsumo)

			ordenes.POST("/:id/mecanicos", soloAdmin, ordenesH.AsignarMecanico)
			ordenes.DELETE("/:id/mecanicos/:mecanicoId", soloAdmin, ordenesH.QuitarMecanico)

			// Closing and reopening move money; admin only.
			ordenes.PATCH("/:id/estado", soloAdmin, ordenesH.CambiarEstado)
			ordenes.POST("/:id/reabrir", soloAdmin, ordenesH.Reabrir)
		}

		caja := v1.Group("/caja", soloAdmin)
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/actual", cajaH.Actual)
			caja.GET("/historial", cajaH.Listar)
			caja.GET("/movimientos", cajaH.Movimientos)
			caja.POST("/movimientos", cajaH.RegistrarMovimiento)
			caja.GET("/:id", cajaH.Obtener)
			caja.GET("/:id/resumen", cajaH.Resumen)
		}

		liquidaciones := v1.Group("/liquidaciones", soloAdmin)
		{
			liquidaciones.GET("", liquidacionesH.Listar)
			liquidaciones.GET("/:id", liquidacionesH.Obtener)
			liquidaciones.POST("/:id/pagar", liquidacionesH.MarcarPagada)
			liquidaciones.GET("/:id/nomina", liquidacionesH.DescargarNomina)
		}

		mecanicos := v1.Group("/mecanicos")
		{
			mecanicos.GET("", todos, mecanicosH.Listar)
			mecanicos.GET("/:id", todos, mecanicosH.Obtener)
			mecanicos.POST("", soloAdmin, mecanicosH.Crear)
			mecanicos.PUT("/:id", soloAdmin, mecanicosH.Actualizar)
		}

		servicios := v1.Group("/servicios")
		{
			servicios.GET("", todos, serviciosH.Listar)
			servicios.GET("/:id", todos, serviciosH.Obtener)
			servicios.POST("", soloAdmin, serviciosH.Crear)
			servicios.PUT("/:id", soloAdmin, serviciosH.Actualizar)
		}
		v1.GET("/categorias", todos, serviciosH.ListarCategorias)
		v1.POST("/categorias", soloAdmin, serviciosH.CrearCategoria)

		proveedores := v1.Group("/proveedores", soloAdmin)
		{
			proveedores.POST("", proveedoresH.Crear)
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/:id", proveedoresH.Obtener)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.GET("/:id/saldo", proveedoresH.Saldo)
			proveedores.GET("/:id/movimientos", proveedoresH.Movimientos)
		}

		almacen := v1.Group("/almacen")
		{
			almacen.GET("/items", todos, almacenH.ListarItems)
			almacen.GET("/items/:id", todos, almacenH.ObtenerItem)
			almacen.GET("/items/:id/movimientos", todos, almacenH.Movimientos)
			almacen.GET("/stock-bajo", todos, almacenH.StockBajo)
			almacen.POST("/items", soloAdmin, almacenH.CrearItem)
			almacen.PUT("/items/:id", soloAdmin, almacenH.ActualizarItem)
			almacen.POST("/items/:id/entrada", soloAdmin, almacenH.RegistrarEntrada)
		}

		herramientas := v1.Group("/herramientas")
		{
			herramientas.GET("", todos, herramientasH.Listar)
			herramientas.GET("/prestamos", todos, herramientasH.Prestamos)
			herramientas.POST("", soloAdmin, herramientasH.Crear)
			herramientas.POST("/:id/prestar", todos, herramientasH.Prestar)
			herramientas.POST("/:id/devolver", todos, herramientasH.Devolver)
		}

		reportes := v1.Group("/reportes", soloAdmin)
		{
			reportes.GET("/movimientos.xlsx", reportesH.MovimientosXLSX)
			reportes.GET("/ordenes.xlsx", reportesH.OrdenesXLSX)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
