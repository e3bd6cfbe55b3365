package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/metalrec/chatarreria-api/internal/application/auth"
	appcaja "github.com/metalrec/chatarreria-api/internal/application/caja"
	"github.com/metalrec/chatarreria-api/internal/application/consecutivos"
	"github.com/metalrec/chatarreria-api/internal/application/equipo"
	"github.com/metalrec/chatarreria-api/internal/application/inventario"
	"github.com/metalrec/chatarreria-api/internal/application/operaciones"
	"github.com/metalrec/chatarreria-api/internal/application/usecase"
	"github.com/metalrec/chatarreria-api/internal/infrastructure/local"
	infrapdf "github.com/metalrec/chatarreria-api/internal/infrastructure/pdf"
	"github.com/metalrec/chatarreria-api/internal/infrastructure/postgres"
	httpRouter "github.com/metalrec/chatarreria-api/internal/interfaces/http"
	"github.com/metalrec/chatarreria-api/pkg/config"
	"github.com/metalrec/chatarreria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando terminal")

	ctx := context.Background()

	// Migraciones contra la base compartida. Idempotentes: cualquier
	// terminal puede arrancar primero.
	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Identidad local del terminal (archivo bbolt junto al binario).
	equipoStore, err := local.NewEquipoStore(cfg.Equipo.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén local del equipo")
	}
	defer equipoStore.Close()

	equipoProv := equipo.NewProveedor(equipoStore)
	equipoID, err := equipoProv.ObtenerOCrearEquipoID(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("identidad del equipo")
	}
	if cfg.Equipo.Alias != "" {
		if _, err := equipoProv.EstablecerAlias(ctx, cfg.Equipo.Alias, equipoID); err != nil {
			log.Fatal().Err(err).Msg("alias del equipo")
		}
	}
	alias, err := equipoProv.Alias(ctx, equipoID)
	if err != nil {
		log.Fatal().Err(err).Msg("alias del equipo")
	}
	log.Info().Str("equipo_id", equipoID).Str("alias", alias).Msg("identidad del terminal")

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	articuloRepo := postgres.NewArticuloRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	bloqueRepo := postgres.NewBloqueRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	asignador := consecutivos.NewAsignador(txRunner)
	consumidor := consecutivos.NewConsumidor(asignador, bloqueRepo, equipoID, alias, cfg.Equipo.TamanoBloque)
	cajaUC := appcaja.NewUseCase(txRunner, equipoID)
	inventarioUC := inventario.NewUseCase(txRunner)
	articuloUC := usecase.NewArticuloUseCase(articuloRepo)
	operacionesUC := operaciones.NewUseCase(
		txRunner, consumidor, cajaUC, inventarioUC,
		documentoRepo, articuloRepo,
		infrapdf.NewMarotoPDFGenerator(),
		operaciones.DatosNegocio{
			Nombre:    cfg.Negocio.Nombre,
			NIT:       cfg.Negocio.NIT,
			Direccion: cfg.Negocio.Direccion,
			Telefono:  cfg.Negocio.Telefono,
		},
	)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Chatarrería POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "equipo_id": equipoID})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ArticuloUC:    articuloUC,
		InventarioUC:  inventarioUC,
		CajaUC:        cajaUC,
		OperacionesUC: operacionesUC,
		Asignador:     asignador,
		Consumidor:    consumidor,
		EquipoProv:    equipoProv,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("terminal detenido")
}
