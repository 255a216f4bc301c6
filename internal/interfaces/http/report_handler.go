package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/application/usecase"
)

// ReconciliationExporter renders a report into a downloadable format.
type ReconciliationExporter interface {
	ReconciliationXLSX(report *dto.ReconciliationReport) ([]byte, error)
}

// ReconciliationPDFExporter renders a report as PDF.
type ReconciliationPDFExporter interface {
	ReconciliationPDF(report *dto.ReconciliationReport) ([]byte, error)
}

// ReportHandler handles the reconciliation report and its exports.
type ReportHandler struct {
	uc    *usecase.ReportUseCase
	excel ReconciliationExporter
	pdf   ReconciliationPDFExporter
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *usecase.ReportUseCase, excel ReconciliationExporter, pdf ReconciliationPDFExporter) *ReportHandler {
	return &ReportHandler{uc: uc, excel: excel, pdf: pdf}
}

// Reconciliation godoc
// @Summary      Reconciliation metrics over the caller's scope
// @Description  matched_sales and securing split the SuccessSold items by
//
//	whether their serial number appears in the distribution log;
//	outstanding_balance is topup total minus sold price total.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/reconciliation [get]
func (h *ReportHandler) Reconciliation(c *fiber.Ctx) error {
	report, err := h.uc.Reconciliation(c.Context(), GetScope(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// Export godoc
// @Summary      Download the reconciliation report
// @Tags         reports
// @Security     Bearer
// @Param        format  query  string  false  "xlsx (default) | pdf"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/reconciliation/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	report, err := h.uc.Reconciliation(c.Context(), GetScope(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	switch c.Query("format", "xlsx") {
	case "xlsx":
		data, err := h.excel.ReconciliationXLSX(report)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reconciliation.xlsx"`)
		return c.Send(data)
	case "pdf":
		data, err := h.pdf.ReconciliationPDF(report)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reconciliation.pdf"`)
		return c.Send(data)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "format must be xlsx or pdf"})
}
