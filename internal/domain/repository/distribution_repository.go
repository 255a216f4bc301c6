package repository

import (
	"context"

	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// DistributionRepository persists the append-only Adisti ingestion log.
type DistributionRepository interface {
	SaveBatch(ctx context.Context, recs []entity.DistributionRecord) error
	ListAll(ctx context.Context, s Scope) ([]entity.DistributionRecord, error)
	// ListSerialNumbers returns the distinct serial numbers in scope,
	// the reconciliation intersection set.
	ListSerialNumbers(ctx context.Context, s Scope) ([]string, error)
}
