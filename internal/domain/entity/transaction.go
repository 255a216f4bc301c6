package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction destinations. Topup and bucket rows share one shape and differ
// only in which collection they land in.
const (
	DestTopup  = "topup"
	DestBucket = "bucket"
)

// Transaction is an append-only topup or bucket movement.
type Transaction struct {
	ID         string
	Date       time.Time
	Sender     string
	Receiver   string
	Type       string
	Amount     decimal.Decimal
	Currency   string
	Remarks    string
	Salesforce string
	Tap        string
	OutletID   string
	OutletName string
	CreatedAt  time.Time
}
