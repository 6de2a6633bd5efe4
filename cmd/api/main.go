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
	_ "github.com/jhoicas/Impuestos-api/docs"
	"github.com/jhoicas/Impuestos-api/internal/application/taxcalc"
	"github.com/jhoicas/Impuestos-api/internal/domain/repository"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/csvloader"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/rulefile"
	httpRouter "github.com/jhoicas/Impuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Impuestos-api/pkg/config"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
)

// @title                       Impuestos API
// @version                     1.0
// @description                 Cálculo bitemporal de impuestos sobre pedidos (ISS, PIS, COFINS, CSLL, PCC).
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el formato "Bearer <token>".
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("taxpayer_source", cfg.Taxpayer.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Clasificaciones: se cargan una vez y quedan en memoria (instantánea inmutable).
	var source repository.TaxpayerSource
	switch cfg.Taxpayer.Source {
	case config.TaxpayerSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		source = postgres.NewTaxpayerSource(pool)
	default:
		source = csvloader.NewTaxpayerLoader(cfg.Taxpayer.CSVPath, cfg.Taxpayer.CSVEncoding, log.Sub("csvloader"))
	}
	taxpayers, err := memory.LoadTaxpayerStore(ctx, source)
	if err != nil {
		log.Fatal().Err(err).Msg("carga de clasificaciones fiscales")
	}

	// Reglas: catálogo incorporado más versiones opcionales desde YAML.
	rules, err := tax.BuiltinRules()
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de reglas")
	}
	if cfg.Rules.File != "" {
		extra, err := rulefile.Load(cfg.Rules.File)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Rules.File).Msg("archivo de reglas")
		}
		rules = append(rules, extra...)
	}
	registry, err := tax.NewRegistry(rules...)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de reglas")
	}
	log.Info().
		Int("classifications", taxpayers.Len()).
		Int("taxpayers", taxpayers.Taxpayers()).
		Int("rule_versions", registry.Len()).
		Msg("datos cargados")

	calculateUC := taxcalc.NewCalculateOrderTaxesUseCase(taxpayers, registry, log.Sub("taxcalc"))
	lookupUC := taxcalc.NewLookupUseCase(taxpayers, registry)

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
		Title:    "Impuestos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CalculateTaxes: calculateUC,
		Lookup:         lookupUC,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
		Logger:         log.Sub("http"),
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

	log.Info().Msg("aplicación detenida")
}
