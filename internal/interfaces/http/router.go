package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/metalrec/chatarreria-api/internal/application/auth"
	"github.com/metalrec/chatarreria-api/internal/application/caja"
	"github.com/metalrec/chatarreria-api/internal/application/consecutivos"
	"github.com/metalrec/chatarreria-api/internal/application/equipo"
	"github.com/metalrec/chatarreria-api/internal/application/inventario"
	"github.com/metalrec/chatarreria-api/internal/application/operaciones"
	"github.com/metalrec/chatarreria-api/internal/application/usecase"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ArticuloUC    *usecase.ArticuloUseCase
	InventarioUC  *inventario.UseCase
	CajaUC        *caja.UseCase
	OperacionesUC *operaciones.UseCase
	Asignador     *consecutivos.Asignador
	Consumidor    *consecutivos.Consumidor
	EquipoProv    *equipo.Proveedor
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Alta de usuarios (solo admin)
	protected.Post("/auth/register", RequireRole(entity.RolAdmin), authHandler.Register)

	// Equipo (identidad del terminal)
	equipoGroup := protected.Group("/equipo")
	equipoHandler := NewEquipoHandler(deps.EquipoProv)
	equipoGroup.Get("/", equipoHandler.Identidad)
	equipoGroup.Put("/alias", equipoHandler.EstablecerAlias)

	// Consecutivos (bloques por serie)
	consGroup := protected.Group("/consecutivos")
	consHandler := NewConsecutivosHandler(deps.Asignador, deps.Consumidor)
	consGroup.Post("/bloques", consHandler.ReservarBloque)
	consGroup.Get("/bloques/:modulo", consHandler.BloqueVigente)
	consGroup.Post("/:modulo/siguiente", consHandler.SiguienteNumero)

	// Caja
	cajaGroup := protected.Group("/caja")
	cajaHandler := NewCajaHandler(deps.CajaUC)
	cajaGroup.Get("/", cajaHandler.Saldo)
	cajaGroup.Get("/movimientos", cajaHandler.Movimientos)
	cajaGroup.Post("/creditos", cajaHandler.Acreditar)
	cajaGroup.Post("/debitos", cajaHandler.Debitar)
	cajaGroup.Put("/base", RequireRole(entity.RolAdmin), cajaHandler.EstablecerBase)

	// Artículos (catálogo de materiales)
	articulos := protected.Group("/articulos")
	articuloHandler := NewArticuloHandler(deps.ArticuloUC, deps.InventarioUC)
	articulos.Post("/", articuloHandler.Create)
	articulos.Get("/", articuloHandler.List)
	articulos.Get("/:id", articuloHandler.GetByID)
	articulos.Put("/:id", articuloHandler.Update)
	articulos.Post("/:id/stock", RequireRole(entity.RolAdmin), articuloHandler.AjustarStock)

	// Documentos (compras, ventas, gastos, remisiones)
	documentoHandler := NewDocumentoHandler(deps.OperacionesUC)
	protected.Post("/compras", documentoHandler.RegistrarCompra)
	protected.Post("/ventas", documentoHandler.RegistrarVenta)
	protected.Post("/ventas-menores", documentoHandler.RegistrarVentaMenor)
	protected.Post("/gastos", documentoHandler.RegistrarGasto)
	protected.Post("/remisiones", documentoHandler.CrearRemision)
	protected.Get("/remisiones/:id/pdf", documentoHandler.RemisionPDF)
	protected.Get("/documentos/serie/:modulo", documentoHandler.ListarDocumentos)
	protected.Get("/documentos/:id", documentoHandler.GetDocumento)
}
