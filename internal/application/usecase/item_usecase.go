package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

// ItemUseCase listing and lifecycle actions on inventory items.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase builds the use case.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// List returns items in scope, filtered.
func (uc *ItemUseCase) List(ctx context.Context, scope repository.Scope, in dto.ListItemsRequest) ([]dto.ItemResponse, error) {
	in.DefaultPage()
	// The role scope always wins; the query filters only narrow further.
	if scope.Salesforce == "" {
		scope.Salesforce = in.Salesforce
	}
	if scope.Tap == "" {
		scope.Tap = in.Tap
	}
	items, err := uc.repo.List(ctx, repository.ItemFilter{
		Scope:     scope,
		Status:    in.Status,
		Warehouse: in.Warehouse,
		Search:    in.Search,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.ToItemResponse(&items[i]))
	}
	return out, nil
}

// UpdateStatus applies a manual lifecycle action. Only Ready items can move,
// and only to SuccessSold or FailedSold.
func (uc *ItemUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !item.CanTransition(status) {
		return nil, domain.ErrInvalidTransition
	}
	item.Status = status
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := dto.ToItemResponse(item)
	return &resp, nil
}

// ApplySellthru patches one item by serial number: SuccessSold plus the sale
// data from the update. Idempotent: the write is last-write-wins, so applying
// the same update again leaves the item in the same state. An item already
// SuccessSold is patched again rather than rejected; a FailedSold item is
// terminal and the update is rejected.
func (uc *ItemUseCase) ApplySellthru(ctx context.Context, in dto.SellthruRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetBySN(ctx, in.SNNumber)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Status == entity.StatusFailedSold {
		return nil, domain.ErrInvalidTransition
	}

	saleDate := time.Now()
	if in.SaleDate != "" {
		if t, err := time.Parse("2006-01-02", in.SaleDate); err == nil {
			saleDate = t
		}
	}
	item.ApplySellthru(entity.SellthruUpdate{
		SNNumber:      in.SNNumber,
		SaleDate:      saleDate,
		OutletID:      in.OutletID,
		OutletName:    in.OutletName,
		Price:         decimal.NewFromInt(in.Price),
		TransactionID: in.TransactionID,
	}, time.Now())

	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := dto.ToItemResponse(item)
	return &resp, nil
}

// ApplySellthruBatch applies ingested sellthru updates one by one. Updates
// whose serial number matches no item, or whose item is terminally
// FailedSold, are skipped; the count of applied updates is returned.
func (uc *ItemUseCase) ApplySellthruBatch(ctx context.Context, updates []entity.SellthruUpdate) (int, error) {
	applied := 0
	now := time.Now()
	for _, u := range updates {
		item, err := uc.repo.GetBySN(ctx, u.SNNumber)
		if err != nil {
			return applied, err
		}
		if item == nil || item.Status == entity.StatusFailedSold {
			continue
		}
		item.ApplySellthru(u, now)
		if err := uc.repo.Update(ctx, item); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
