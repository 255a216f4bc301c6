package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

// ReportUseCase reconciliation metrics over role-scoped working sets.
type ReportUseCase struct {
	items repository.ItemRepository
	trxs  repository.TransactionRepository
	dists repository.DistributionRepository
}

// NewReportUseCase builds the use case.
func NewReportUseCase(
	items repository.ItemRepository,
	trxs repository.TransactionRepository,
	dists repository.DistributionRepository,
) *ReportUseCase {
	return &ReportUseCase{items: items, trxs: trxs, dists: dists}
}

// Reconciliation loads the scoped working set and reduces it.
func (uc *ReportUseCase) Reconciliation(ctx context.Context, scope repository.Scope) (*dto.ReconciliationReport, error) {
	sold, err := uc.items.ListSold(ctx, scope)
	if err != nil {
		return nil, err
	}
	topups, err := uc.trxs.ListAll(ctx, entity.DestTopup, scope)
	if err != nil {
		return nil, err
	}
	distSNs, err := uc.dists.ListSerialNumbers(ctx, scope)
	if err != nil {
		return nil, err
	}
	report := Reconcile(sold, topups, distSNs)
	return &report, nil
}

// Reconcile is the pure reduction: no pagination, no side effects, bounded
// by the caller-supplied working set.
//
// An item counts as matched when its serial number appears in the
// distribution log; SuccessSold items without a match are "securing". The
// outstanding balance is the topup total minus the sold price total.
func Reconcile(sold []entity.InventoryItem, topups []entity.Transaction, distributionSNs []string) dto.ReconciliationReport {
	distSet := make(map[string]struct{}, len(distributionSNs))
	for _, sn := range distributionSNs {
		distSet[sn] = struct{}{}
	}

	matched := 0
	salesTotal := decimal.Zero
	for i := range sold {
		if sold[i].Status != entity.StatusSuccessSold {
			continue
		}
		if _, ok := distSet[sold[i].SNNumber]; ok {
			matched++
		}
		salesTotal = salesTotal.Add(sold[i].Price)
	}

	totalSold := 0
	for i := range sold {
		if sold[i].Status == entity.StatusSuccessSold {
			totalSold++
		}
	}

	topupTotal := decimal.Zero
	for i := range topups {
		topupTotal = topupTotal.Add(topups[i].Amount)
	}

	return dto.ReconciliationReport{
		MatchedSales:       matched,
		Securing:           totalSold - matched,
		TotalSold:          totalSold,
		TopupTotal:         topupTotal,
		SalesTotal:         salesTotal,
		OutstandingBalance: topupTotal.Sub(salesTotal),
		GeneratedAt:        time.Now(),
	}
}
