package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/application/upload"
	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/ingest"
	"github.com/digipos/sellthru-api/pkg/logger"
)

// UploadHandler handles CSV uploads and template downloads.
type UploadHandler struct {
	ingestUC   *usecase.IngestUseCase
	templateUC *usecase.TemplateUseCase
	log        *logger.Logger
}

// NewUploadHandler builds the handler.
func NewUploadHandler(ingestUC *usecase.IngestUseCase, templateUC *usecase.TemplateUseCase, log *logger.Logger) *UploadHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &UploadHandler{ingestUC: ingestUC, templateUC: templateUC, log: log}
}

// Upload godoc
// @Summary      Upload a delimited file for one record kind
// @Description  Detects the delimiter and column mapping, normalizes rows and
//
//	persists them in batches. Batches stored before a failure stay
//	stored.
//
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind  path      string  true  "item | sellthru | topup | bucket | distribution"
// @Param        file  formData  file    true  "delimited file"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.UploadResponse
// @Router       /api/uploads/{kind} [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	kind, err := ingest.ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "unknown record kind"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file field required"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "cannot open file"})
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "cannot read file"})
	}

	progress := func(p upload.Progress) {
		h.log.Info().
			Str("kind", string(kind)).
			Int("processed", p.Processed).
			Int("total", p.Total).
			Int("percent", p.Percent).
			Msg("upload progress")
	}

	out, err := h.ingestUC.IngestAndStore(c.Context(), string(raw), kind, progress)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_INPUT", Message: err.Error()})
		case errors.Is(err, domain.ErrNoValidRows):
			// Detection diagnostics go back with the failure.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
		case errors.Is(err, domain.ErrBatchSendFailed):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BATCH_SEND_FAILED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Template godoc
// @Summary      Download the CSV template for one record kind
// @Tags         uploads
// @Security     Bearer
// @Produce      text/csv
// @Param        kind  path  string  true  "item | sellthru | topup | bucket | distribution"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/uploads/templates/{kind} [get]
func (h *UploadHandler) Template(c *fiber.Ctx) error {
	kind, err := ingest.ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "unknown record kind"})
	}
	filename, content, err := h.templateUC.Build(kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "unknown record kind"})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(content)
}
