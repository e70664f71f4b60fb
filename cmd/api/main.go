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

	"github.com/jhoicas/cmi-stock/internal/application/auth"
	"github.com/jhoicas/cmi-stock/internal/application/movement"
	"github.com/jhoicas/cmi-stock/internal/application/quotation"
	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain/analytics"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	infrapdf "github.com/jhoicas/cmi-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/cmi-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/cmi-stock/internal/infrastructure/sheets"
	"github.com/jhoicas/cmi-stock/internal/infrastructure/users"
	"github.com/jhoicas/cmi-stock/internal/infrastructure/webhook"
	httpRouter "github.com/jhoicas/cmi-stock/internal/interfaces/http"
	"github.com/jhoicas/cmi-stock/internal/interfaces/ws"
	"github.com/jhoicas/cmi-stock/pkg/config"
	"github.com/jhoicas/cmi-stock/pkg/logger"
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
		Str("source", cfg.Source.Kind).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	schemas, err := fields.LoadSchemas(cfg.Source.FieldAliasesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Source.FieldAliasesFile).Msg("alias de campos")
	}

	staticUsers, err := users.Parse(cfg.Auth.Users)
	if err != nil {
		log.Fatal().Err(err).Msg("AUTH_USERS")
	}
	var userRepo repository.UserRepository = staticUsers

	// ── Fuente de la instantánea y camino de escritura ───────────────────────
	var source repository.SnapshotRepository
	var writer repository.RecordWriter
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		snapRepo := postgres.NewSnapshotRepository(pool)
		if err := snapRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema sheet_rows")
		}
		if totals, err := snapRepo.QuantityTotals(ctx); err != nil {
			log.Warn().Err(err).Msg("totales sheet_rows")
		} else {
			log.Info().
				Str("stock_in", totals[fields.StreamStockIn].String()).
				Str("stock_out", totals[fields.StreamStockOut].String()).
				Msg("sheet_rows listo")
		}
		source = snapRepo
		writer = postgres.NewRecordWriter(pool)
		userRepo = postgres.NewUserRepository(pool, staticUsers)
	default:
		source = sheets.NewSnapshotRepository(sheets.Config{
			BaseURL:        cfg.Source.SheetsBaseURL,
			GIDProducts:    cfg.Source.GIDProducts,
			GIDStockIn:     cfg.Source.GIDStockIn,
			GIDStockOut:    cfg.Source.GIDStockOut,
			GIDSalesOrders: cfg.Source.GIDSalesOrders,
			GIDQuotations:  cfg.Source.GIDQuotations,
			Timeout:        time.Duration(cfg.Source.TimeoutSeconds) * time.Second,
		}, log)
	}
	// Un endpoint remoto explícito tiene prioridad sobre la escritura en Postgres.
	if cfg.Writer.EndpointURL != "" {
		writer = webhook.NewRecordWriter(cfg.Writer.EndpointURL, time.Duration(cfg.Writer.TimeoutSeconds)*time.Second)
	}
	if writer == nil {
		log.Warn().Msg("WRITE_ENDPOINT_URL vacío: POST /api/movements responderá WRITE_REJECTED")
	}

	// ── Casos de uso ──────────────────────────────────────────────────────────
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	reconcileUC := reconcile.NewUseCase(
		source,
		reconcile.NewMapper(schemas),
		analytics.Options{},
		time.Duration(cfg.Source.CacheSeconds)*time.Second,
		log,
	)
	quotationUC := quotation.NewUseCase(reconcileUC, infrapdf.NewMarotoPDFGenerator(cfg.PDF.CompanyName, cfg.PDF.FontPath))
	movementUC := movement.NewUseCase(writer, reconcileUC, hub, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CMI Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.Clients()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Results:     reconcileUC,
		QuotationUC: quotationUC,
		MovementUC:  movementUC,
		WS:          hub.Handler(),
		WSUpgrade:   ws.Upgrade,
		JWTSecret:   cfg.JWT.Secret,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
