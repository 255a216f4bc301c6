package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// TransactionHandler handles topup/bucket listings.
type TransactionHandler struct {
	uc *usecase.TransactionUseCase
}

// NewTransactionHandler builds the handler.
func NewTransactionHandler(uc *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// ListTopup godoc
// @Summary      List topup transactions in scope
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/topup [get]
func (h *TransactionHandler) ListTopup(c *fiber.Ctx) error {
	return h.list(c, entity.DestTopup)
}

// ListBucket godoc
// @Summary      List bucket transactions in scope
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/bucket [get]
func (h *TransactionHandler) ListBucket(c *fiber.Ctx) error {
	return h.list(c, entity.DestBucket)
}

func (h *TransactionHandler) list(c *fiber.Ctx, dest string) error {
	var in dto.ListTransactionsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	trxs, err := h.uc.List(c.Context(), dest, GetScope(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(trxs), "transactions": trxs})
}
