package usecase

import (
	"context"
	"time"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

// TransactionUseCase topup/bucket listings.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase builds the use case.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// List returns transactions of one destination in scope, filtered.
func (uc *TransactionUseCase) List(ctx context.Context, dest string, scope repository.Scope, in dto.ListTransactionsRequest) ([]dto.TransactionResponse, error) {
	in.DefaultPage()
	f := repository.TransactionFilter{
		Scope:  scope,
		Type:   in.Type,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", in.DateFrom); err == nil {
			f.DateFrom = t
		}
	}
	if in.DateTo != "" {
		if t, err := time.Parse("2006-01-02", in.DateTo); err == nil {
			f.DateTo = t
		}
	}
	trxs, err := uc.repo.List(ctx, dest, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(trxs))
	for i := range trxs {
		out = append(out, dto.ToTransactionResponse(&trxs[i]))
	}
	return out, nil
}
