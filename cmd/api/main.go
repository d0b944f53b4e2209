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

	"github.com/puntoventa/pos-api/internal/application/analytics"
	"github.com/puntoventa/pos-api/internal/application/auth"
	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/application/cart"
	"github.com/puntoventa/pos-api/internal/application/catalog"
	"github.com/puntoventa/pos-api/internal/application/shop"
	"github.com/puntoventa/pos-api/internal/domain/repository"
	"github.com/puntoventa/pos-api/internal/infrastructure/memory"
	"github.com/puntoventa/pos-api/internal/infrastructure/pdf"
	"github.com/puntoventa/pos-api/internal/infrastructure/postgres"
	httprouter "github.com/puntoventa/pos-api/internal/interfaces/http"
	"github.com/puntoventa/pos-api/pkg/config"
	"github.com/puntoventa/pos-api/pkg/logger"
)

// @title POS API
// @version 1.0
// @description API de punto de venta: catálogo, carritos, facturación y recibos.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("error cargando configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		if cfg.App.Env != "development" {
			log.Fatal().Msg("JWT_SECRET es obligatorio fuera de development")
		}
		jwtSecret = "dev-secret-no-usar-en-produccion"
		log.Warn().Msg("JWT_SECRET vacío, usando secret de desarrollo")
	}

	ctx := context.Background()

	// Persistencia: memoria para demos y desarrollo, PostgreSQL en producción.
	var (
		productRepo  repository.ProductRepository
		invoiceRepo  repository.InvoiceRepository
		settingsRepo repository.SettingsRepository
		userRepo     repository.UserRepository
		txRunner     billing.TxRunner
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("error conectando a PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		invoiceRepo = postgres.NewInvoiceRepository(pool)
		settingsRepo = postgres.NewSettingsRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		log.Info().Msg("conectado a PostgreSQL")
	default:
		store := memory.NewStore()
		productRepo = store.Products()
		invoiceRepo = store.Invoices()
		settingsRepo = store.Settings()
		userRepo = store.Users()
		txRunner = store
		log.Warn().Msg("usando almacén en memoria: los datos se pierden al reiniciar")
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     jwtSecret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if admin, err := authUC.EnsureDefaultAdmin(); err != nil {
		log.Fatal().Err(err).Msg("error sembrando administrador por defecto")
	} else if admin != nil {
		log.Info().Str("user_id", admin.ID).Msg("administrador por defecto creado (PIN 1234, cámbielo)")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())

	// Swagger UI solo si el spec generado está presente.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	httprouter.Router(app, httprouter.RouterDeps{
		CatalogUC:   catalog.NewUseCase(productRepo),
		Sessions:    cart.NewSessions(),
		SettleUC:    billing.NewSettleUseCase(txRunner),
		HistoryUC:   billing.NewHistoryUseCase(invoiceRepo, settingsRepo, pdf.NewReceiptGenerator()),
		DashboardUC: analytics.NewDashboardUseCase(invoiceRepo, productRepo),
		SettingsUC:  shop.NewUseCase(settingsRepo),
		AuthUC:      authUC,
		UserRepo:    userRepo,
		JWTSecret:   jwtSecret,
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("error en el servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error durante el apagado")
	}
	log.Info().Msg("aplicación detenida")
}
