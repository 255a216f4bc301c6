package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/digipos/sellthru-api/internal/application/auth"
	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/pkg/logger"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	IngestUC      *usecase.IngestUseCase
	TemplateUC    *usecase.TemplateUseCase
	ItemUC        *usecase.ItemUseCase
	TransactionUC *usecase.TransactionUseCase
	ReportUC      *usecase.ReportUseCase
	ExcelExporter ReconciliationExporter
	PDFExporter   ReconciliationPDFExporter
	JWTSecret     string
	Log           *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Uploads. Ingestion writes data, so the salesforce role stays out.
	uploads := protected.Group("/uploads", RequireRole(entity.RoleAdmin, entity.RoleSupervisor))
	uploadHandler := NewUploadHandler(deps.IngestUC, deps.TemplateUC, deps.Log)
	uploads.Get("/templates/:kind", uploadHandler.Template)
	uploads.Post("/:kind", uploadHandler.Upload)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/sellthru", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), itemHandler.Sellthru)
	items.Patch("/:id/status", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), itemHandler.UpdateStatus)

	// Transactions
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Get("/topup", transactionHandler.ListTopup)
	transactions.Get("/bucket", transactionHandler.ListBucket)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExcelExporter, deps.PDFExporter)
	reports.Get("/reconciliation", reportHandler.Reconciliation)
	reports.Get("/reconciliation/export", reportHandler.Export)
}
