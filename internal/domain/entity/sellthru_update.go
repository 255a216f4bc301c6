package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellthruUpdate is a transient patch against an existing InventoryItem,
// matched by serial number. It is never persisted on its own.
type SellthruUpdate struct {
	SNNumber      string
	SaleDate      time.Time
	OutletID      string
	OutletName    string
	Price         decimal.Decimal
	TransactionID string
}
