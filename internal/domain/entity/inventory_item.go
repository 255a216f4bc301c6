package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory item lifecycle states. Items enter as Ready and end as
// SuccessSold (confirmed sellthru or manual action) or FailedSold; the
// transition never reverses and never skips Ready.
const (
	StatusReady       = "Ready"
	StatusSuccessSold = "SuccessSold"
	StatusFailedSold  = "FailedSold"
)

// InventoryItem is one serial-numbered unit of stock. Denormalized on purpose:
// rows come in flat from CSV uploads and are reconciled by serial number only.
type InventoryItem struct {
	ID             string
	SNNumber       string // unique per upload, primary reconciliation key
	Flag           string
	ProductName    string
	SubCategory    string
	Warehouse      string
	SalesforceName string
	TapArea        string
	ReferenceNo    string
	Status         string
	Price          decimal.Decimal // set by the sellthru update that sold the item
	SaleDate       *time.Time
	OutletID       string
	OutletName     string
	TransactionID  string
	ExpiryDate     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanTransition reports whether the lifecycle allows moving to target.
func (i *InventoryItem) CanTransition(target string) bool {
	if i.Status != StatusReady {
		return false
	}
	return target == StatusSuccessSold || target == StatusFailedSold
}

// ApplySellthru marks the item sold with the update's sale data. Last write
// wins, so re-applying the same update is idempotent.
func (i *InventoryItem) ApplySellthru(u SellthruUpdate, now time.Time) {
	i.Status = StatusSuccessSold
	i.Price = u.Price
	saleDate := u.SaleDate
	i.SaleDate = &saleDate
	i.OutletID = u.OutletID
	i.OutletName = u.OutletName
	i.TransactionID = u.TransactionID
	i.UpdatedAt = now
}
