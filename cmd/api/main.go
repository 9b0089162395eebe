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
	"github.com/jhoicas/fincas-api/internal/application/billing"
	"github.com/jhoicas/fincas-api/internal/application/fiscal"
	"github.com/jhoicas/fincas-api/internal/application/reporting"
	"github.com/jhoicas/fincas-api/internal/infrastructure/catastro"
	"github.com/jhoicas/fincas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fincas-api/internal/interfaces/http"
	"github.com/jhoicas/fincas-api/pkg/config"
	"github.com/jhoicas/fincas-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Sin base de datos la API sigue sirviendo validación y cálculo; los informes responden 503.
	var vatBookUC *reporting.VATBookUseCase
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		vatBookUC = reporting.NewVATBookUseCase(postgres.NewVATBookRepository(pool), log)
	} else {
		log.Warn().Msg("base de datos no configurada: informes deshabilitados")
	}

	catastroClient := catastro.NewClient(cfg.Catastro.BaseURL, cfg.Catastro.Timeout())
	documentUC := fiscal.NewDocumentUseCase(catastroClient, cfg.Catastro.Timeout())
	calculationUC := billing.NewCalculationUseCase()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fincas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "reports": vatBookUC != nil})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DocumentUC:    documentUC,
		CalculationUC: calculationUC,
		VATBookUC:     vatBookUC,
		Logger:        log,
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

	log.Info().Msg("aplicación detenida")
}
