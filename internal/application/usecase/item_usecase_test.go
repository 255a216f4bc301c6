package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digipos/sellthru-api/internal/application/dto"
	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

// fakeItemRepo keeps items in memory, keyed by id and serial number.
type fakeItemRepo struct {
	byID map[string]*entity.InventoryItem
	bySN map[string]*entity.InventoryItem
}

func newFakeItemRepo(items ...entity.InventoryItem) *fakeItemRepo {
	r := &fakeItemRepo{
		byID: make(map[string]*entity.InventoryItem),
		bySN: make(map[string]*entity.InventoryItem),
	}
	for i := range items {
		it := items[i]
		r.byID[it.ID] = &it
		r.bySN[it.SNNumber] = &it
	}
	return r
}

func (r *fakeItemRepo) SaveBatch(_ context.Context, items []entity.InventoryItem) error {
	for i := range items {
		it := items[i]
		r.byID[it.ID] = &it
		r.bySN[it.SNNumber] = &it
	}
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]entity.InventoryItem, error) {
	out := make([]entity.InventoryItem, 0, len(r.byID))
	for _, it := range r.byID {
		out = append(out, *it)
	}
	return out, nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	if it, ok := r.byID[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetBySN(_ context.Context, sn string) (*entity.InventoryItem, error) {
	if it, ok := r.bySN[sn]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.byID[item.ID] = &cp
	r.bySN[item.SNNumber] = &cp
	return nil
}

func (r *fakeItemRepo) ListSold(_ context.Context, _ repository.Scope) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, it := range r.bySN {
		if it.Status == entity.StatusSuccessSold {
			out = append(out, *it)
		}
	}
	return out, nil
}

func readyItem(id, sn string) entity.InventoryItem {
	return entity.InventoryItem{ID: id, SNNumber: sn, Status: entity.StatusReady}
}

func TestUpdateStatus_ReadyToSuccessSold(t *testing.T) {
	repo := newFakeItemRepo(readyItem("id-1", "SN-001"))
	uc := usecase.NewItemUseCase(repo)

	resp, err := uc.UpdateStatus(context.Background(), "id-1", entity.StatusSuccessSold)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuccessSold, resp.Status)

	stored, _ := repo.GetByID(context.Background(), "id-1")
	assert.Equal(t, entity.StatusSuccessSold, stored.Status)
}

func TestUpdateStatus_RejectsSecondTransition(t *testing.T) {
	repo := newFakeItemRepo(readyItem("id-1", "SN-001"))
	uc := usecase.NewItemUseCase(repo)

	_, err := uc.UpdateStatus(context.Background(), "id-1", entity.StatusFailedSold)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), "id-1", entity.StatusSuccessSold)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "the lifecycle never reverses")
}

func TestUpdateStatus_RejectsReadyAsTarget(t *testing.T) {
	repo := newFakeItemRepo(readyItem("id-1", "SN-001"))
	uc := usecase.NewItemUseCase(repo)

	_, err := uc.UpdateStatus(context.Background(), "id-1", entity.StatusReady)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_UnknownItem(t *testing.T) {
	uc := usecase.NewItemUseCase(newFakeItemRepo())

	_, err := uc.UpdateStatus(context.Background(), "missing", entity.StatusSuccessSold)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplySellthru_PatchesMatchedItem(t *testing.T) {
	repo := newFakeItemRepo(readyItem("id-1", "SN-001"))
	uc := usecase.NewItemUseCase(repo)

	req := dto.SellthruRequest{
		SNNumber:      "SN-001",
		SaleDate:      "2024-05-01",
		OutletID:      "OUT1",
		OutletName:    "Toko Jaya",
		Price:         150000,
		TransactionID: "TRX1",
	}
	resp, err := uc.ApplySellthru(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSuccessSold, resp.Status)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(150000)))
	require.NotNil(t, resp.SaleDate)
	assert.Equal(t, "2024-05-01", resp.SaleDate.Format("2006-01-02"))
	assert.Equal(t, "Toko Jaya", resp.OutletName)
}

func TestApplySellthru_Idempotent(t *testing.T) {
	repo := newFakeItemRepo(readyItem("id-1", "SN-001"))
	uc := usecase.NewItemUseCase(repo)

	req := dto.SellthruRequest{SNNumber: "SN-001", SaleDate: "2024-05-01", Price: 150000}

	first, err := uc.ApplySellthru(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.ApplySellthru(context.Background(), req)
	require.NoError(t, err, "an already sold item is patched again, not rejected")

	assert.Equal(t, first.Status, second.Status)
	assert.True(t, first.Price.Equal(second.Price))
	assert.Equal(t, first.SaleDate.Unix(), second.SaleDate.Unix())
}

func TestApplySellthru_RejectsFailedSoldItem(t *testing.T) {
	repo := newFakeItemRepo(entity.InventoryItem{ID: "id-1", SNNumber: "SN-001", Status: entity.StatusFailedSold})
	uc := usecase.NewItemUseCase(repo)

	_, err := uc.ApplySellthru(context.Background(), dto.SellthruRequest{SNNumber: "SN-001", Price: 150000})
	require.ErrorIs(t, err, domain.ErrInvalidTransition, "FailedSold is terminal")

	stored, _ := repo.GetBySN(context.Background(), "SN-001")
	assert.Equal(t, entity.StatusFailedSold, stored.Status)
}

func TestApplySellthru_UnknownSerial(t *testing.T) {
	uc := usecase.NewItemUseCase(newFakeItemRepo())

	_, err := uc.ApplySellthru(context.Background(), dto.SellthruRequest{SNNumber: "SN-404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplySellthruBatch_SkipsUnmatched(t *testing.T) {
	repo := newFakeItemRepo(readyItem("id-1", "SN-001"), readyItem("id-2", "SN-002"))
	uc := usecase.NewItemUseCase(repo)

	updates := []entity.SellthruUpdate{
		{SNNumber: "SN-001", Price: decimal.NewFromInt(100000)},
		{SNNumber: "SN-404", Price: decimal.NewFromInt(50000)},
		{SNNumber: "SN-002", Price: decimal.NewFromInt(75000)},
	}

	applied, err := uc.ApplySellthruBatch(context.Background(), updates)
	require.NoError(t, err)
	assert.Equal(t, 2, applied, "unmatched serial numbers are skipped silently")

	stored, _ := repo.GetBySN(context.Background(), "SN-002")
	assert.Equal(t, entity.StatusSuccessSold, stored.Status)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(75000)))
}

func TestApplySellthruBatch_SkipsFailedSoldItems(t *testing.T) {
	repo := newFakeItemRepo(
		readyItem("id-1", "SN-001"),
		entity.InventoryItem{ID: "id-2", SNNumber: "SN-002", Status: entity.StatusFailedSold},
	)
	uc := usecase.NewItemUseCase(repo)

	updates := []entity.SellthruUpdate{
		{SNNumber: "SN-001", Price: decimal.NewFromInt(100000)},
		{SNNumber: "SN-002", Price: decimal.NewFromInt(50000)},
	}

	applied, err := uc.ApplySellthruBatch(context.Background(), updates)
	require.NoError(t, err)
	assert.Equal(t, 1, applied, "FailedSold items never flip back to sold")

	stored, _ := repo.GetBySN(context.Background(), "SN-002")
	assert.Equal(t, entity.StatusFailedSold, stored.Status)
	assert.True(t, stored.Price.IsZero())
}
