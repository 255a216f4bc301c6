package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/application/upload"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/ingest"
	"github.com/digipos/sellthru-api/internal/domain/repository"
	"github.com/digipos/sellthru-api/pkg/logger"
)

// IngestUseCase runs the full upload path: parse the raw file text, then
// persist the records through the chunked uploader. Batches already stored
// when a later batch fails stay stored.
type IngestUseCase struct {
	items  repository.ItemRepository
	trxs   repository.TransactionRepository
	dists  repository.DistributionRepository
	policy upload.Policy
	log    *logger.Logger
}

// NewIngestUseCase builds the use case.
func NewIngestUseCase(
	items repository.ItemRepository,
	trxs repository.TransactionRepository,
	dists repository.DistributionRepository,
	policy upload.Policy,
	log *logger.Logger,
) *IngestUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &IngestUseCase{items: items, trxs: trxs, dists: dists, policy: policy, log: log}
}

// IngestAndStore parses text for the given kind and persists the result in
// batches. Progress may be nil. The returned response carries the ingested
// count, the delimiter used and the detection warnings.
func (uc *IngestUseCase) IngestAndStore(ctx context.Context, text string, kind ingest.Kind, progress upload.ProgressFunc) (*dto.UploadResponse, error) {
	res, err := ingest.Ingest(text, kind)
	if err != nil {
		// Surface the warning log with the failure for diagnosis.
		return &dto.UploadResponse{Kind: string(kind), Warnings: res.Warnings}, err
	}
	for _, w := range res.Warnings {
		uc.log.Debug().Str("kind", string(kind)).Msg(w)
	}

	now := time.Now()
	switch kind {
	case ingest.KindItem:
		stampItems(res.Items, now)
		err = runUpload(ctx, uc.policy, uc.log, res.Items, uc.items.SaveBatch, progress)
	case ingest.KindSellthru:
		itemUC := NewItemUseCase(uc.items)
		send := func(ctx context.Context, batch []entity.SellthruUpdate) error {
			_, err := itemUC.ApplySellthruBatch(ctx, batch)
			return err
		}
		err = runUpload(ctx, uc.policy, uc.log, res.Sellthru, send, progress)
	case ingest.KindTopup, ingest.KindBucket:
		dest := entity.DestTopup
		if kind == ingest.KindBucket {
			dest = entity.DestBucket
		}
		stampTransactions(res.Transactions, now)
		send := func(ctx context.Context, batch []entity.Transaction) error {
			return uc.trxs.SaveBatch(ctx, dest, batch)
		}
		err = runUpload(ctx, uc.policy, uc.log, res.Transactions, send, progress)
	case ingest.KindDistribution:
		stampDistributions(res.Distributions, now)
		err = runUpload(ctx, uc.policy, uc.log, res.Distributions, uc.dists.SaveBatch, progress)
	}
	if err != nil {
		return &dto.UploadResponse{Kind: string(kind), Warnings: res.Warnings}, err
	}

	return &dto.UploadResponse{
		Kind:      string(kind),
		Ingested:  res.Count(),
		Batches:   batchCount(res.Count(), uc.policy.BatchSize),
		Delimiter: string(res.Delimiter),
		Warnings:  res.Warnings,
	}, nil
}

func runUpload[T any](ctx context.Context, p upload.Policy, log *logger.Logger, records []T, send func(context.Context, []T) error, progress upload.ProgressFunc) error {
	return upload.New[T](p, log).Run(ctx, records, send, progress)
}

func batchCount(total, size int) int {
	if total == 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Surrogate ids and creation timestamps are persistence concerns; the parser
// leaves them zero so re-ingesting the same file yields equal record sets.
func stampItems(items []entity.InventoryItem, now time.Time) {
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
}

func stampTransactions(trxs []entity.Transaction, now time.Time) {
	for i := range trxs {
		trxs[i].ID = uuid.New().String()
		trxs[i].CreatedAt = now
	}
}

func stampDistributions(recs []entity.DistributionRecord, now time.Time) {
	for i := range recs {
		recs[i].ID = uuid.New().String()
		recs[i].CreatedAt = now
	}
}
