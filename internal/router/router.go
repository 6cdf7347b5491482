package router

import (
	"ballesteros/docs"
	"ballesteros/internal/config"
	"ballesteros/internal/handler"
	"ballesteros/internal/middleware"
	"ballesteros/internal/repository"
	"ballesteros/internal/service"
	"ballesteros/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiLimiter, err := middleware.NewLimiter(cfg.RateLimitAPI, rdb, "rl:api")
	if err != nil {
		return nil, err
	}
	loginLimiter, err := middleware.NewLimiter(cfg.RateLimitLogin, rdb, "rl:login")
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(apiLimiter, "Demasiadas solicitudes. Intente más tarde."))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)
	corteRepo := repository.NewCorteRepository(db)
	adeudoRepo := repository.NewAdeudoRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	empresaSvc := service.NewEmpresaService(empresaRepo)
	empleadoSvc := service.NewEmpleadoService(empleadoRepo, empresaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	cuentaSvc := service.NewCuentaService(cuentaRepo, empresaRepo, categoriaRepo)
	adeudoSvc := service.NewAdeudoService(adeudoRepo)
	corteSvc := service.NewCorteService(corteRepo, adeudoRepo, empresaRepo, empleadoRepo, cuentaRepo, dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	empresasH := handler.NewEmpresasHandler(empresaSvc)
	empleadosH := handler.NewEmpleadosHandler(empleadoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	cuentasH := handler.NewCuentasHandler(cuentaSvc)
	cortesH := handler.NewCortesHandler(corteSvc)
	adeudosH := handler.NewAdeudosHandler(adeudoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter, "Demasiados intentos de login. Intente en un minuto."), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	todos := middleware.RequireRole(middleware.RolCajero, middleware.RolSupervisor, middleware.RolAdministrador)
	gestion := middleware.RequireRole(middleware.RolSupervisor, middleware.RolAdministrador)
	admin := middleware.RequireRole(middleware.RolAdministrador)

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		cortes := v1.Group("/cortes", todos)
		{
			cortes.POST("", cortesH.Abrir)
			cortes.GET("", cortesH.Listar)
			cortes.POST("/calcular", cortesH.CalcularLibre)
			cortes.GET("/exportar", gestion, cortesH.Exportar)
			cortes.GET("/:id", cortesH.ObtenerPorID)
			cortes.PUT("/:id", cortesH.Actualizar)
			cortes.GET("/:id/calculo", cortesH.Calcular)
			cortes.POST("/:id/cerrar", cortesH.Cerrar)
			cortes.POST("/:id/anular", gestion, cortesH.Anular)
			cortes.GET("/:id/pdf", cortesH.PDF)
		}

		adeudos := v1.Group("/adeudos", gestion)
		{
			adeudos.GET("", adeudosH.Listar)
			adeudos.GET("/:id", adeudosH.ObtenerPorID)
			adeudos.POST("/:id/liquidar", adeudosH.Liquidar)
		}

		cuentas := v1.Group("/cuentas", gestion)
		{
			cuentas.POST("", admin, cuentasH.Crear)
			cuentas.GET("", cuentasH.Listar)
			cuentas.POST("/traspasos", cuentasH.Traspaso)
			cuentas.GET("/:id", cuentasH.ObtenerPorID)
			cuentas.PUT("/:id", admin, cuentasH.Actualizar)
			cuentas.DELETE("/:id", admin, cuentasH.Desactivar)
			cuentas.POST("/:id/movimientos", cuentasH.RegistrarMovimiento)
			cuentas.GET("/:id/movimientos", cuentasH.ListarMovimientos)
		}

		// Empresas: everyone reads, administrador writes
		v1.GET("/empresas", todos, empresasH.Listar)
		v1.GET("/empresas/:id", todos, empresasH.ObtenerPorID)
		empresas := v1.Group("/empresas", admin)
		{
			empresas.POST("", empresasH.Crear)
			empresas.PUT("/:id", empresasH.Actualizar)
			empresas.DELETE("/:id", empresasH.Desactivar)
			empresas.PATCH("/:id/reactivar", empresasH.Reactivar)
		}

		v1.GET("/empleados", todos, empleadosH.Listar)
		v1.GET("/empleados/:id", todos, empleadosH.ObtenerPorID)
		empleados := v1.Group("/empleados", gestion)
		{
			empleados.POST("", empleadosH.Crear)
			empleados.PUT("/:id", empleadosH.Actualizar)
			empleados.DELETE("/:id", empleadosH.Desactivar)
		}

		clientes := v1.Group("/clientes", gestion)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Desactivar)
		}

		prov := v1.Group("/proveedores", gestion)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", admin, proveedoresH.Eliminar)
		}

		// Categorías: administrador can write, all authenticated can read
		v1.GET("/categorias", todos, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		docs.SwaggerInfo.BasePath = "/"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
