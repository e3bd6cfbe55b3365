// seed prepara una instalación nueva: corre las migraciones, crea el
// usuario administrador inicial y un catálogo básico de materiales.
//
// Uso: go run ./cmd/seed
// El email y password del admin salen de SEED_ADMIN_EMAIL y
// SEED_ADMIN_PASSWORD (por defecto admin@chatarreria.local / cambiar123).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/metalrec/chatarreria-api/internal/domain"
	"github.com/metalrec/chatarreria-api/internal/domain/entity"
	"github.com/metalrec/chatarreria-api/internal/infrastructure/postgres"
	"github.com/metalrec/chatarreria-api/pkg/config"
)

var articulosIniciales = []struct {
	nombre string
	unidad string
	compra string
	venta  string
}{
	{"Chatarra", "kg", "800", "1100"},
	{"Cobre", "kg", "28000", "34000"},
	{"Aluminio", "kg", "7000", "9500"},
	{"Bronce", "kg", "18000", "22000"},
	{"Acero inoxidable", "kg", "4500", "6000"},
	{"Cartón", "kg", "300", "500"},
	{"Archivo", "kg", "400", "650"},
	{"PET", "kg", "900", "1400"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("cargar configuración: %v", err)
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		fatal("migraciones: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fatal("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := seedAdmin(ctx, postgres.NewUsuarioRepository(pool)); err != nil {
		fatal("crear admin: %v", err)
	}
	if err := seedArticulos(ctx, postgres.NewArticuloRepository(pool)); err != nil {
		fatal("crear catálogo: %v", err)
	}

	fmt.Println("seed completado")
}

func seedAdmin(ctx context.Context, repo *postgres.UsuarioRepo) error {
	email := envOr("SEED_ADMIN_EMAIL", "admin@chatarreria.local")
	password := envOr("SEED_ADMIN_PASSWORD", "cambiar123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = repo.Create(ctx, &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        email,
		Nombre:       "Administrador",
		PasswordHash: string(hash),
		Rol:          entity.RolAdmin,
		Estado:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	if errors.Is(err, domain.ErrEmailYaRegistrado) {
		fmt.Printf("admin %s ya existe, sin cambios\n", email)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("admin creado: %s\n", email)
	return nil
}

func seedArticulos(ctx context.Context, repo *postgres.ArticuloRepo) error {
	for _, a := range articulosIniciales {
		err := repo.Create(ctx, &entity.Articulo{
			ID:           uuid.New().String(),
			Nombre:       a.nombre,
			Unidad:       a.unidad,
			PrecioCompra: decimal.RequireFromString(a.compra),
			PrecioVenta:  decimal.RequireFromString(a.venta),
			Stock:        decimal.Zero,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
		if errors.Is(err, domain.ErrEntradaInvalida) {
			continue // ya existe
		}
		if err != nil {
			return err
		}
		fmt.Printf("artículo creado: %s\n", a.nombre)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
