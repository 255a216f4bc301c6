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

	"github.com/digipos/sellthru-api/internal/application/auth"
	"github.com/digipos/sellthru-api/internal/application/upload"
	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/infrastructure/export"
	"github.com/digipos/sellthru-api/internal/infrastructure/postgres"
	httpRouter "github.com/digipos/sellthru-api/internal/interfaces/http"
	"github.com/digipos/sellthru-api/pkg/config"
	"github.com/digipos/sellthru-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	trxRepo := postgres.NewTransactionRepository(pool)
	distRepo := postgres.NewDistributionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	uploadPolicy := upload.Policy{
		BatchSize:   cfg.Upload.BatchSize,
		MaxAttempts: cfg.Upload.MaxAttempts,
		RetryDelay:  cfg.Upload.RetryDelay,
		BatchDelay:  cfg.Upload.BatchDelay,
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	ingestUC := usecase.NewIngestUseCase(itemRepo, trxRepo, distRepo, uploadPolicy, log)
	templateUC := usecase.NewTemplateUseCase()
	itemUC := usecase.NewItemUseCase(itemRepo)
	transactionUC := usecase.NewTransactionUseCase(trxRepo)
	reportUC := usecase.NewReportUseCase(itemRepo, trxRepo, distRepo)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Large uploads arrive as one multipart body.
		BodyLimit:    50 * 1024 * 1024,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sellthru API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		IngestUC:      ingestUC,
		TemplateUC:    templateUC,
		ItemUC:        itemUC,
		TransactionUC: transactionUC,
		ReportUC:      reportUC,
		ExcelExporter: export.NewExcelExporter(),
		PDFExporter:   export.NewPDFExporter(),
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
