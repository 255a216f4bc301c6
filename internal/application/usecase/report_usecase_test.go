package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/domain/entity"
)

func soldItem(sn string, price int64) entity.InventoryItem {
	return entity.InventoryItem{
		SNNumber: sn,
		Status:   entity.StatusSuccessSold,
		Price:    decimal.NewFromInt(price),
	}
}

func topup(amount int64) entity.Transaction {
	return entity.Transaction{Amount: decimal.NewFromInt(amount)}
}

func TestReconcile_MatchedAndSecuring(t *testing.T) {
	sold := []entity.InventoryItem{
		soldItem("SN-001", 100000),
		soldItem("SN-002", 150000),
		soldItem("SN-003", 50000),
	}
	distSNs := []string{"SN-001", "SN-003", "SN-999"}

	report := usecase.Reconcile(sold, nil, distSNs)

	assert.Equal(t, 2, report.MatchedSales)
	assert.Equal(t, 1, report.Securing, "sold without a distribution trace")
	assert.Equal(t, 3, report.TotalSold)
	assert.True(t, report.SalesTotal.Equal(decimal.NewFromInt(300000)))
}

func TestReconcile_OutstandingBalance(t *testing.T) {
	sold := []entity.InventoryItem{soldItem("SN-001", 120000)}
	topups := []entity.Transaction{topup(100000), topup(50000)}

	report := usecase.Reconcile(sold, topups, nil)

	assert.True(t, report.TopupTotal.Equal(decimal.NewFromInt(150000)))
	assert.True(t, report.SalesTotal.Equal(decimal.NewFromInt(120000)))
	assert.True(t, report.OutstandingBalance.Equal(decimal.NewFromInt(30000)))
}

func TestReconcile_NegativeOutstandingAllowed(t *testing.T) {
	sold := []entity.InventoryItem{soldItem("SN-001", 200000)}
	topups := []entity.Transaction{topup(50000)}

	report := usecase.Reconcile(sold, topups, nil)

	assert.True(t, report.OutstandingBalance.Equal(decimal.NewFromInt(-150000)),
		"sales above topups go negative instead of clamping")
}

func TestReconcile_IgnoresUnsoldItems(t *testing.T) {
	sold := []entity.InventoryItem{
		soldItem("SN-001", 100000),
		{SNNumber: "SN-002", Status: entity.StatusReady, Price: decimal.NewFromInt(999999)},
		{SNNumber: "SN-003", Status: entity.StatusFailedSold, Price: decimal.NewFromInt(888888)},
	}

	report := usecase.Reconcile(sold, nil, []string{"SN-002", "SN-003"})

	assert.Equal(t, 1, report.TotalSold)
	assert.Equal(t, 0, report.MatchedSales)
	assert.True(t, report.SalesTotal.Equal(decimal.NewFromInt(100000)),
		"only SuccessSold prices count toward the sales total")
}

func TestReconcile_EmptyWorkingSet(t *testing.T) {
	report := usecase.Reconcile(nil, nil, nil)

	assert.Zero(t, report.MatchedSales)
	assert.Zero(t, report.Securing)
	assert.Zero(t, report.TotalSold)
	assert.True(t, report.TopupTotal.IsZero())
	assert.True(t, report.OutstandingBalance.IsZero())
	assert.False(t, report.GeneratedAt.IsZero())
}
